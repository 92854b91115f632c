package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body: one human-readable message, plus
// optional per-field details for validation failures.
type ErrorResponse struct {
	Msg    string            `json:"msg"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets Content-Type and no-store caching headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a single-message error body.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorResponse{Msg: msg})
}

// WriteFieldErrors writes a 400 with per-field validation messages.
func WriteFieldErrors(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Msg: "validation failed", Fields: fields})
}

// NoCache prevents caching of sensitive responses like tokens and balances.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
