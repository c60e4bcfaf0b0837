// backend/internal/adapters/in/http/store/handler/admin_handler.go
package storeHandler

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	usecase "tienda/internal/application/usecase"
	orderdom "tienda/internal/domain/order"
	productdom "tienda/internal/domain/product"
)

// maxImageBytes caps admin image uploads.
const maxImageBytes = 10 << 20 // 10MB

// AdminHandler serves back-office product and order mutations.
// Routed behind AdminAuthMiddleware; this handler assumes the caller is verified.
//
// Routes:
// - POST   /store/admin/products
// - PATCH  /store/admin/products/{id}
// - DELETE /store/admin/products/{id}
// - POST   /store/admin/products/{id}/image   (raw bytes, Content-Type honored)
// - PATCH  /store/admin/orders/{id}/status    {"status": "..."}
type AdminHandler struct {
	products *usecase.ProductUsecase
	orders   *usecase.OrderUsecase
}

func NewAdminHandler(products *usecase.ProductUsecase, orders *usecase.OrderUsecase) http.Handler {
	return &AdminHandler{products: products, orders: orders}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	log.Printf("[store_admin_handler] enter method=%s path=%q configured=%t\n",
		r.Method, path, h != nil && h.products != nil && h.orders != nil)

	if h == nil || h.products == nil || h.orders == nil {
		internalError(w, "admin handler is not configured")
		return
	}

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/admin/products"):
		h.handleCreateProduct(w, r, start)
		return

	case r.Method == http.MethodPatch:
		if id, ok := pathSegmentAfter(path, "/admin/products/"); ok {
			h.handleUpdateProduct(w, r, start, id)
			return
		}
		if id, ok := orderIDFromStatusPath(path); ok {
			h.handleAdvanceOrderStatus(w, r, start, id)
			return
		}

	case r.Method == http.MethodDelete:
		if id, ok := pathSegmentAfter(path, "/admin/products/"); ok {
			h.handleDeleteProduct(w, r, start, id)
			return
		}

	case r.Method == http.MethodPost:
		if id, ok := productIDFromImagePath(path); ok {
			h.handleUploadProductImage(w, r, start, id)
			return
		}
	}

	log.Printf("[store_admin_handler] exit status=404 method=%s path=%q elapsed=%s\n", r.Method, path, time.Since(start))
	notFound(w)
}

// orderIDFromStatusPath extracts {id} from .../admin/orders/{id}/status.
func orderIDFromStatusPath(path string) (string, bool) {
	if !strings.HasSuffix(path, "/status") {
		return "", false
	}
	return pathSegmentAfter(strings.TrimSuffix(path, "/status"), "/admin/orders/")
}

// productIDFromImagePath extracts {id} from .../admin/products/{id}/image.
func productIDFromImagePath(path string) (string, bool) {
	if !strings.HasSuffix(path, "/image") {
		return "", false
	}
	return pathSegmentAfter(strings.TrimSuffix(path, "/image"), "/admin/products/")
}

// -------------------------
// products
// -------------------------

func (h *AdminHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request, start time.Time) {
	var in usecase.CreateProductInput
	if err := readJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		log.Printf("[store_admin_handler] exit err op=createProduct err=%v elapsed=%s\n", err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_admin_handler] exit status=201 op=createProduct productId=%q elapsed=%s\n", p.ID, time.Since(start))
	writeJSON(w, http.StatusCreated, p)
}

type productPatchRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
}

func (h *AdminHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request, start time.Time, id string) {
	var req productPatchRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	patch := productdom.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	p, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		log.Printf("[store_admin_handler] exit err op=updateProduct productId=%q err=%v elapsed=%s\n", id, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_admin_handler] exit status=200 op=updateProduct productId=%q elapsed=%s\n", id, time.Since(start))
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request, start time.Time, id string) {
	if err := h.products.Delete(r.Context(), id); err != nil {
		log.Printf("[store_admin_handler] exit err op=deleteProduct productId=%q err=%v elapsed=%s\n", id, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_admin_handler] exit status=204 op=deleteProduct productId=%q elapsed=%s\n", id, time.Since(start))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleUploadProductImage(w http.ResponseWriter, r *http.Request, start time.Time, id string) {
	contentType := strings.TrimSpace(r.Header.Get("Content-Type"))

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "failed to read image body")
		return
	}
	if len(data) == 0 {
		writeErr(w, http.StatusBadRequest, "image body is empty")
		return
	}

	p, err := h.products.AttachImage(r.Context(), id, contentType, data)
	if err != nil {
		log.Printf("[store_admin_handler] exit err op=uploadImage productId=%q err=%v elapsed=%s\n", id, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_admin_handler] exit status=200 op=uploadImage productId=%q imageUrl=%q elapsed=%s\n", id, p.ImageURL, time.Since(start))
	writeJSON(w, http.StatusOK, p)
}

// -------------------------
// orders
// -------------------------

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) handleAdvanceOrderStatus(w http.ResponseWriter, r *http.Request, start time.Time, id string) {
	var req orderStatusRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	next, ok := orderdom.ParseStatus(req.Status)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown status: "+strings.TrimSpace(req.Status))
		return
	}

	o, err := h.orders.AdvanceStatus(r.Context(), id, next)
	if err != nil {
		log.Printf("[store_admin_handler] exit err op=advanceStatus orderId=%q next=%q err=%v elapsed=%s\n", id, next, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_admin_handler] exit status=200 op=advanceStatus orderId=%q status=%q elapsed=%s\n", id, o.Status, time.Since(start))
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
