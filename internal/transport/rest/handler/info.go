package handler

import "net/http"

// InfoMessage is returned by GET /
const InfoMessage = "SafeSpace wellness check API is running"

// Info handles GET /
func Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": InfoMessage})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
