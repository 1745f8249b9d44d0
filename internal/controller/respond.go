package controller

import (
    "encoding/json"
    "net/http"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
    Error  string            `json:"error"`
    Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
    writeJSON(w, status, ErrorResponse{Error: msg})
}
