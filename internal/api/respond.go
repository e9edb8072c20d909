package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rktiwari00/woocart/internal/woo"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleUpstreamError maps store API failures to HTTP statuses. A 404
// from the store stays a 404; anything else it reported becomes a bad
// gateway, and transport errors too.
func handleUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *woo.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			respondError(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		respondError(w, http.StatusBadGateway, "upstream_error", "store API request failed")
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unavailable", "store API unavailable")
}
