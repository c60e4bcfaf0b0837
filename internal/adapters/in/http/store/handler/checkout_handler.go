// backend/internal/adapters/in/http/store/handler/checkout_handler.go
package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "tienda/internal/application/usecase"
	orderdom "tienda/internal/domain/order"
)

// CheckoutHandler turns the session cart into a persisted order.
//
// Routes:
// - POST /store/checkout
//
// Body:
//
//	{
//	  "sessionId": "...",              // or X-Session-Id header
//	  "idempotencyKey": "...",         // generated when the checkout form opens
//	  "customerInfo": {"name": "...", "email": "...", "phone": "...", "address": "..."}
//	}
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	CustomerInfo   struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone,omitempty"`
		Address string `json:"address"`
	} `json:"customerInfo"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := trimPath(r)

	log.Printf("[store_checkout_handler] enter method=%s path=%q configured=%t\n",
		r.Method, path, h != nil && h.uc != nil)

	if h == nil || h.uc == nil {
		internalError(w, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req checkoutRequest
	if err := readJSON(r, &req); err != nil {
		log.Printf("[store_checkout_handler] exit status=400 reason=bad json err=%v elapsed=%s\n", err, time.Since(start))
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sid := readSessionID(r, req.SessionID)
	if sid == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	info := orderdom.CustomerInfo{
		Name:    strings.TrimSpace(req.CustomerInfo.Name),
		Email:   strings.TrimSpace(req.CustomerInfo.Email),
		Phone:   strings.TrimSpace(req.CustomerInfo.Phone),
		Address: strings.TrimSpace(req.CustomerInfo.Address),
	}

	res, err := h.uc.Checkout(r.Context(), sid, info, strings.TrimSpace(req.IdempotencyKey))
	if err != nil {
		log.Printf("[store_checkout_handler] exit err key=%q err=%v elapsed=%s\n", req.IdempotencyKey, err, time.Since(start))
		// cart total drift is a server-side inconsistency, not a client mistake
		if errors.Is(err, usecase.ErrCartTotalMismatch) {
			internalError(w, err.Error())
			return
		}
		writeDomainErr(w, err)
		return
	}

	log.Printf("[store_checkout_handler] exit status=201 orderId=%q replayed=%t elapsed=%s\n",
		res.OrderID, res.Replayed, time.Since(start))
	writeJSON(w, http.StatusCreated, res)
}
