package server

import (
    "encoding/json"
    "net/http"
    "sort"

    "github.com/go-chi/chi/v5"
)

// DocsPath serves the route index linked from GET /.
const DocsPath = "/docs"

type routeDoc struct {
    Method string `json:"method"`
    Path   string `json:"path"`
}

// routeIndex lists every mounted route, sorted by path then method.
func routeIndex(routes chi.Routes) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        docs := []routeDoc{}
        err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
            docs = append(docs, routeDoc{Method: method, Path: route})
            return nil
        })
        if err != nil {
            http.Error(w, "failed to list routes", http.StatusInternalServerError)
            return
        }
        sort.Slice(docs, func(i, j int) bool {
            if docs[i].Path != docs[j].Path {
                return docs[i].Path < docs[j].Path
            }
            return docs[i].Method < docs[j].Method
        })

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]any{"routes": docs})
    }
}
