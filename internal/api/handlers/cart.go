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

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type AddToCartRequest struct {
	ItemID string `json:"itemId"`
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CartHandler.Add", domain.ErrUnauthenticated)
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	cartItem, err := h.cartService.AddToCart(r.Context(), user.ID, itemID)
	if err != nil {
		respondError(w, "CartHandler.Add", err)
		return
	}

	respondJSON(w, http.StatusOK, cartItem)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CartHandler.Remove", domain.ErrUnauthenticated)
		return
	}

	cartItemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid cart item id", http.StatusBadRequest)
		return
	}

	if err := h.cartService.RemoveFromCart(r.Context(), user, cartItemID); err != nil {
		respondError(w, "CartHandler.Remove", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "CartHandler.Get", domain.ErrUnauthenticated)
		return
	}

	cartItems, err := h.cartService.GetCart(r.Context(), user.ID)
	if err != nil {
		respondError(w, "CartHandler.Get", err)
		return
	}

	respondJSON(w, http.StatusOK, cartItems)
}
