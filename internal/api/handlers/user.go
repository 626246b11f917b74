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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdatePermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "UserHandler.List", domain.ErrUnauthenticated)
		return
	}

	users, err := h.userService.List(r.Context(), user)
	if err != nil {
		respondError(w, "UserHandler.List", err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "UserHandler.UpdatePermissions", domain.ErrUnauthenticated)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	var req UpdatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.userService.UpdatePermissions(r.Context(), user, targetID, req.Permissions)
	if err != nil {
		respondError(w, "UserHandler.UpdatePermissions", err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
