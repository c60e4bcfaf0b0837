// backend/internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	usecase "tienda/internal/application/usecase"
)

// CartHandler serves session cart endpoints.
//
// Routes:
// - GET    /store/cart                (whole cart state)
// - DELETE /store/cart                (clear)
// - POST   /store/cart/items          {"productId": "..."}
// - PUT    /store/cart/items          {"productId": "...", "quantity": n}
// - DELETE /store/cart/items          {"productId": "..."} (or ?productId=)
//
// Session resolution: X-Session-Id header > sessionId query > body.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	log.Printf("[store_cart_handler] enter method=%s path=%q query=%q sessionId=%q configured=%t\n",
		r.Method, path, r.URL.RawQuery, readSessionID(r, ""), h != nil && h.uc != nil)

	if h == nil || h.uc == nil {
		log.Printf("[store_cart_handler] exit status=500 reason=uc is nil elapsed=%s\n", time.Since(start))
		internalError(w, "cart handler is not configured")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items")
	isCart := !isItems && strings.HasSuffix(path, "/cart")

	switch {
	case r.Method == http.MethodGet && isCart:
		h.handleGet(w, r, start)
	case r.Method == http.MethodDelete && isCart:
		h.handleClear(w, r, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetItemQty(w, r, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, start)
	default:
		log.Printf("[store_cart_handler] exit status=404 method=%s path=%q elapsed=%s\n", r.Method, path, time.Since(start))
		notFound(w)
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		log.Printf("[store_cart_handler] exit status=400 reason=missing sessionId elapsed=%s\n", time.Since(start))
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	s, err := h.uc.Get(r.Context(), sid)
	if err != nil {
		log.Printf("[store_cart_handler] exit err op=get err=%v elapsed=%s\n", err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] exit status=200 op=get totalItems=%d elapsed=%s\n", s.TotalItems, time.Since(start))
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	sid := readSessionID(r, "")
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	s, err := h.uc.Clear(r.Context(), sid)
	if err != nil {
		log.Printf("[store_cart_handler] exit err op=clear err=%v elapsed=%s\n", err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] exit status=200 op=clear elapsed=%s\n", time.Since(start))
	writeJSON(w, http.StatusOK, s)
}

type cartItemRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity,omitempty"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	pid := strings.TrimSpace(req.ProductID)
	if sid == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and productId are required")
		return
	}

	s, err := h.uc.AddItem(r.Context(), sid, pid)
	if err != nil {
		log.Printf("[store_cart_handler] exit err op=add productId=%q err=%v elapsed=%s\n", pid, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] exit status=200 op=add productId=%q totalItems=%d elapsed=%s\n", pid, s.TotalItems, time.Since(start))
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) handleSetItemQty(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	pid := strings.TrimSpace(req.ProductID)
	if sid == "" || pid == "" || req.Quantity == nil {
		writeErr(w, http.StatusBadRequest, "sessionId, productId and quantity are required")
		return
	}

	s, err := h.uc.SetItemQuantity(r.Context(), sid, pid, *req.Quantity)
	if err != nil {
		log.Printf("[store_cart_handler] exit err op=setQty productId=%q qty=%d err=%v elapsed=%s\n", pid, *req.Quantity, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] exit status=200 op=setQty productId=%q qty=%d elapsed=%s\n", pid, *req.Quantity, time.Since(start))
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	// DELETE bodies are legal but some clients drop them; accept query too.
	pid := strings.TrimSpace(r.URL.Query().Get("productId"))
	var req cartItemRequest
	if pid == "" {
		if err := readJSON(r, &req); err == nil {
			pid = strings.TrimSpace(req.ProductID)
		}
	}

	sid := readSessionID(r, req.SessionID)
	if sid == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and productId are required")
		return
	}

	s, err := h.uc.RemoveItem(r.Context(), sid, pid)
	if err != nil {
		log.Printf("[store_cart_handler] exit err op=remove productId=%q err=%v elapsed=%s\n", pid, err, time.Since(start))
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_cart_handler] exit status=200 op=remove productId=%q totalItems=%d elapsed=%s\n", pid, s.TotalItems, time.Since(start))
	writeJSON(w, http.StatusOK, s)
}
