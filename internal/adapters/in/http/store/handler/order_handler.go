// backend/internal/adapters/in/http/store/handler/order_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	usecase "tienda/internal/application/usecase"
	orderdom "tienda/internal/domain/order"
)

// OrderHandler serves buyer-facing order reads.
//
// Routes:
// - GET /store/orders            (optional ?email= narrows to one customer)
// - GET /store/orders/{id}
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

// orderResponse decorates an order with its presentation metadata so the
// storefront renders the status badge without owning the state machine.
type orderResponse struct {
	orderdom.Order
	StatusDisplay orderdom.Display `json:"statusDisplay"`
}

func toOrderResponse(o orderdom.Order) orderResponse {
	return orderResponse{Order: o, StatusDisplay: orderdom.DisplayFor(o.Status)}
}

func toOrderResponses(orders []orderdom.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	log.Printf("[store_order_handler] enter method=%s path=%q query=%q configured=%t\n",
		r.Method, path, r.URL.RawQuery, h != nil && h.uc != nil)

	if h == nil || h.uc == nil {
		internalError(w, "order handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	// index: .../orders
	if strings.HasSuffix(path, "/orders") {
		email := strings.TrimSpace(r.URL.Query().Get("email"))

		var (
			orders []orderdom.Order
			err    error
		)
		if email != "" {
			orders, err = h.uc.ListByEmail(r.Context(), email)
		} else {
			orders, err = h.uc.List(r.Context())
		}
		if err != nil {
			log.Printf("[store_order_handler] exit err op=list err=%v elapsed=%s\n", err, time.Since(start))
			writeDomainErr(w, err)
			return
		}

		log.Printf("[store_order_handler] exit status=200 op=list count=%d elapsed=%s\n", len(orders), time.Since(start))
		writeJSON(w, http.StatusOK, toOrderResponses(orders))
		return
	}

	// detail: .../orders/{id}
	if id, ok := pathSegmentAfter(path, "/orders/"); ok {
		o, err := h.uc.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("[store_order_handler] exit err op=get orderId=%q err=%v elapsed=%s\n", id, err, time.Since(start))
			writeDomainErr(w, err)
			return
		}

		log.Printf("[store_order_handler] exit status=200 op=get orderId=%q status=%q elapsed=%s\n", id, o.Status, time.Since(start))
		writeJSON(w, http.StatusOK, toOrderResponse(o))
		return
	}

	log.Printf("[store_order_handler] exit status=404 path=%q elapsed=%s\n", path, time.Since(start))
	notFound(w)
}
