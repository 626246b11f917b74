package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/payment"
	"github.com/mkrause/storefront/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the service error taxonomy onto HTTP statuses. Every
// failure reaches the caller as a distinct status; nothing is retried here.
func respondError(w http.ResponseWriter, component string, err error) {
	var gatewayErr *payment.GatewayError
	var postChargeErr *service.PostChargeError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrEmailTaken):
		http.Error(w, "Email already in use", http.StatusConflict)
	case errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrResetTokenInvalid),
		errors.Is(err, service.ErrInvalidPermission),
		errors.Is(err, service.ErrCartEmpty):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &gatewayErr):
		log.Printf("ERROR [%s] %v", component, err)
		http.Error(w, "Payment failed", http.StatusPaymentRequired)
	case errors.As(err, &postChargeErr):
		// Captured payment with no order record. Needs manual reconciliation.
		log.Printf("FATAL [%s] post-charge failure, charge %s needs reconciliation: %v",
			component, postChargeErr.ChargeID, postChargeErr.Err)
		http.Error(w, "Order could not be recorded; support has been notified", http.StatusInternalServerError)
	default:
		log.Printf("ERROR [%s] %v", component, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
