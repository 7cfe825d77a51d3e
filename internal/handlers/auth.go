package handlers

import (
	"errors"
	"net/http"

	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

// AuthHandler handles signup and login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			log.Debug().Err(err).Msg("Signup with taken email")
			respondError(w, "Email already registered", http.StatusConflict)
			return
		}
		writeServiceError(w, r, err, "User not found")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		UserID:  res.UserID,
		Token:   res.Token,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "User not found or incorrect credentials")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message: "User logged in successfully",
		UserID:  res.UserID,
		Token:   res.Token,
	})
}
