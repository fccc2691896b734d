package handlers

import (
	"encoding/json"
	"net/http"

	"avira-backend/internal/models"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message, details string, r *http.Request) models.ChatError {
	return models.ChatError{
		Error:     message,
		Details:   details,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

func errorRespWithCause(message, details string, cause error, r *http.Request) models.ChatError {
	resp := errorResp(message, details, r)
	if cause != nil {
		resp.TechnicalError = cause.Error()
	}
	return resp
}
