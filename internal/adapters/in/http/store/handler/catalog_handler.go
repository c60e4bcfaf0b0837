// backend/internal/adapters/in/http/store/handler/catalog_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	usecase "tienda/internal/application/usecase"
)

// CatalogHandler serves buyer-facing product endpoints.
//
// Routes:
// - GET /store/products           (optional ?category=)
// - GET /store/products/{id}
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	log.Printf("[store_catalog_handler] enter method=%s path=%q query=%q configured=%t\n",
		r.Method, path, r.URL.RawQuery, h != nil && h.uc != nil)

	if h == nil || h.uc == nil {
		internalError(w, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	// index: .../products
	if strings.HasSuffix(path, "/products") {
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		products, err := h.uc.List(r.Context(), category)
		if err != nil {
			log.Printf("[store_catalog_handler] exit err category=%q err=%v elapsed=%s\n", category, err, time.Since(start))
			writeDomainErr(w, err)
			return
		}
		log.Printf("[store_catalog_handler] exit status=200 count=%d elapsed=%s\n", len(products), time.Since(start))
		writeJSON(w, http.StatusOK, products)
		return
	}

	// detail: .../products/{id}
	if id, ok := pathSegmentAfter(path, "/products/"); ok {
		p, err := h.uc.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("[store_catalog_handler] exit err productId=%q err=%v elapsed=%s\n", id, err, time.Since(start))
			writeDomainErr(w, err)
			return
		}
		log.Printf("[store_catalog_handler] exit status=200 productId=%q elapsed=%s\n", id, time.Since(start))
		writeJSON(w, http.StatusOK, p)
		return
	}

	log.Printf("[store_catalog_handler] exit status=404 path=%q elapsed=%s\n", path, time.Since(start))
	notFound(w)
}
