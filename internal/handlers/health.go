package handlers

import "net/http"

// Health handles GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	respondStatus(w, http.StatusOK, "success", "Server is up and running!")
}
