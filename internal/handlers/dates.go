package handlers

import (
	"net/http"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

const dateNotFound = "Date not found"

// DatesResponse lists suggestions. Message is set when the list is empty.
type DatesResponse struct {
	Status  string                   `json:"status"`
	Dates   []*models.DateSuggestion `json:"dates"`
	Message string                   `json:"message,omitempty"`
}

// DateHandler handles suggestion routes
type DateHandler struct {
	dateService *services.DateService
}

// NewDateHandler creates a new date handler
func NewDateHandler(dateService *services.DateService) *DateHandler {
	return &DateHandler{
		dateService: dateService,
	}
}

// GetDate handles GET /dates/suggested/{id}
func (h *DateHandler) GetDate(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, dateNotFound)
		return
	}
	respondJSON(w, http.StatusOK, date)
}

// UpdateDate handles PUT /dates/suggested/{id}
func (h *DateHandler) UpdateDate(w http.ResponseWriter, r *http.Request) {
	var patch repository.DatePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.dateService.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeServiceError(w, r, err, dateNotFound)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Date updated successfully"})
}

// DeleteDate handles DELETE /dates/suggested/{id}
func (h *DateHandler) DeleteDate(w http.ResponseWriter, r *http.Request) {
	if err := h.dateService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, dateNotFound)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Date deleted successfully"})
}

// AcceptDate handles POST /dates/accept/{id}
func (h *DateHandler) AcceptDate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dateService.Accept(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStatusError(w, r, err, dateNotFound)
		return
	}
	respondStatus(w, http.StatusOK, "success", "Date accepted successfully")
}

// DeclineDate handles POST /dates/decline/{id}
func (h *DateHandler) DeclineDate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dateService.Decline(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStatusError(w, r, err, dateNotFound)
		return
	}
	respondStatus(w, http.StatusOK, "success", "Date declined successfully")
}

// ListByUserAndStatus handles GET /dates/user/{userId}/{status}
func (h *DateHandler) ListByUserAndStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	dates, err := h.dateService.ListByUserAndStatus(r.Context(), chi.URLParam(r, "userId"), status)
	if err != nil {
		writeStatusError(w, r, err, dateNotFound)
		return
	}
	respondDates(w, dates, "No "+status+" dates found")
}

// ListByUser handles GET /dates/{userId}
func (h *DateHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	dates, err := h.dateService.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeStatusError(w, r, err, dateNotFound)
		return
	}
	respondDates(w, dates, "No suggested dates found")
}

func respondDates(w http.ResponseWriter, dates []*models.DateSuggestion, emptyMessage string) {
	resp := DatesResponse{Status: "success", Dates: dates}
	if resp.Dates == nil {
		resp.Dates = []*models.DateSuggestion{}
	}
	if len(resp.Dates) == 0 {
		resp.Message = emptyMessage
	}
	respondJSON(w, http.StatusOK, resp)
}
