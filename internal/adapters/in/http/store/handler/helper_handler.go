// backend/internal/adapters/in/http/store/handler/helper_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	usecase "tienda/internal/application/usecase"
	orderdom "tienda/internal/domain/order"
	productdom "tienda/internal/domain/product"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func internalError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": strings.TrimSpace(msg)})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	return dec.Decode(dst)
}

// readSessionID resolves the cart session id.
// Priority: X-Session-Id header > sessionId query > fallback (request body).
func readSessionID(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.Header.Get("X-Session-Id")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("sessionId")); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

// trimPath returns the path without a trailing slash ("" becomes "/").
func trimPath(r *http.Request) string {
	p := strings.TrimRight(r.URL.Path, "/")
	if p == "" {
		p = "/"
	}
	return p
}

// pathSegmentAfter returns the single segment following marker.
// e.g. pathSegmentAfter("/store/products/abc", "/products/") == "abc" (ok=true).
// ok=false when the marker is absent or the remainder is empty / nested.
func pathSegmentAfter(path, marker string) (string, bool) {
	idx := strings.Index(path, marker)
	if idx < 0 {
		return "", false
	}
	rest := path[idx+len(marker):]
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// ============================================================
// Shared error mapping
// ============================================================

// writeDomainErr maps domain/usecase errors to HTTP codes.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeErr(w, http.StatusInternalServerError, "unknown error")

	case errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	case errors.Is(err, orderdom.ErrIllegalTransition):
		writeErr(w, http.StatusConflict, err.Error())

	case errors.Is(err, usecase.ErrInsufficientStock):
		writeErr(w, http.StatusConflict, err.Error())

	case errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrCatalogInvalidArgument),
		errors.Is(err, usecase.ErrProductInvalidArgument),
		errors.Is(err, orderdom.ErrInvalidCustomerName),
		errors.Is(err, orderdom.ErrInvalidEmail),
		errors.Is(err, orderdom.ErrInvalidAddress),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, productdom.ErrInvalidName),
		errors.Is(err, productdom.ErrInvalidDescription),
		errors.Is(err, productdom.ErrInvalidPrice),
		errors.Is(err, productdom.ErrInvalidStock),
		errors.Is(err, productdom.ErrInvalidID):
		writeErr(w, http.StatusBadRequest, err.Error())

	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
