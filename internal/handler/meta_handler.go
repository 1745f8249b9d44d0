// internal/handler/meta_handler.go
package handler

import (
    "encoding/json"
    "net/http"

    "github.com/unclebandit/editorial-content-service/internal/generator"
)

// MetaHandler serves the service description, liveness and the generator
// wiring check.
type MetaHandler struct {
    Name      string
    Version   string
    DocsURL   string
    Generator generator.Status
}

func (h *MetaHandler) Root(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{
        "message": h.Name,
        "version": h.Version,
        "docs":    h.DocsURL,
    })
}

func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GeneratorStatus reports whether a provider key is present. Only the key
// length is exposed.
func (h *MetaHandler) GeneratorStatus(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, h.Generator)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}
