package handlers

import (
	"net/http"

	"dating-backend/internal/middleware"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// PresignUpload handles POST /users/{id}/photos/presign
func (h *PhotoHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "id")

	if caller := middleware.GetUserID(ctx); caller != userID {
		log.Warn().
			Str("user_id", caller).
			Str("target_user_id", userID).
			Msg("Photo upload for another user refused")
		respondError(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req services.UploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.photoService.Presign(ctx, userID, req)
	if err != nil {
		writeServiceError(w, r, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, res)
}
