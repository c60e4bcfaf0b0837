// backend/internal/platform/di/store/register.go
package store

import (
	"encoding/json"
	"log"
	"net/http"

	"tienda/internal/adapters/in/http/middleware"
	storehttp "tienda/internal/adapters/in/http/store"
	storehandler "tienda/internal/adapters/in/http/store/handler"
)

// requireAdminAuth wraps handler with AdminAuthMiddleware (fail-closed).
// If middleware is not initialized, it returns 503 so the bug is obvious.
func requireAdminAuth(mw *middleware.AdminAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[store.register] ERROR: AdminAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "admin_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// Register registers storefront routes onto mux.
// Pure DI: construct handlers and pass into store router.Register.
// - No method/path branching here
// - deps must be non-nil for all handlers
// - AdminAuthMiddleware guards every /store/admin/* endpoint
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	var adminAuthMW *middleware.AdminAuthMiddleware
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		adminAuthMW = &middleware.AdminAuthMiddleware{FirebaseAuth: cont.Infra.FirebaseAuth}
	} else {
		// fail-closed in requireAdminAuth
		log.Printf("[store.register] WARN: cont.Infra or cont.Infra.FirebaseAuth is nil (admin endpoints will return 503)")
		adminAuthMW = &middleware.AdminAuthMiddleware{FirebaseAuth: nil}
	}

	deps := storehttp.Deps{
		Catalog:  storehandler.NewCatalogHandler(cont.CatalogUC),
		Cart:     storehandler.NewCartHandler(cont.CartUC),
		Checkout: storehandler.NewCheckoutHandler(cont.CheckoutUC),
		Order:    storehandler.NewOrderHandler(cont.OrderUC),
		Admin: requireAdminAuth(
			adminAuthMW,
			storehandler.NewAdminHandler(cont.ProductUC, cont.OrderUC),
			"Admin",
		),
	}

	storehttp.Register(mux, deps)
	log.Printf("[store.register] storefront routes registered")
}
