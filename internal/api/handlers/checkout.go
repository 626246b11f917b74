package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/api/middleware"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type CheckoutRequest struct {
	Token string `json:"token"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CheckoutHandler.Checkout", domain.ErrUnauthenticated)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Token == "" {
		http.Error(w, "Payment token is required", http.StatusBadRequest)
		return
	}

	order, err := h.checkoutService.Checkout(r.Context(), user.ID, req.Token)
	if err != nil {
		respondError(w, "CheckoutHandler.Checkout", err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CheckoutHandler.GetOrder", domain.ErrUnauthenticated)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.checkoutService.GetOrder(r.Context(), user, orderID)
	if err != nil {
		respondError(w, "CheckoutHandler.GetOrder", err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CheckoutHandler.ListOrders", domain.ErrUnauthenticated)
		return
	}

	orders, err := h.checkoutService.ListOrders(r.Context(), user)
	if err != nil {
		respondError(w, "CheckoutHandler.ListOrders", err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
