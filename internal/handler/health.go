package handler

import "net/http"

// Root handles GET / with a service banner
func Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Cloud Notes API is running"})
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Favicon handles GET /favicon.ico so browser requests don't 404
func Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
