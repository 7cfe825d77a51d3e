package handlers

import (
	"net/http"

	"dating-backend/internal/repository"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch repository.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "User updated successfully"})
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
