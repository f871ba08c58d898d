package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// respondJSON writes a bare payload for endpoints whose response shape is
// part of the external contract and must not be wrapped in the envelope.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respondJSON", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
