package server

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/controller"
    "github.com/unclebandit/editorial-content-service/internal/generator"
    "github.com/unclebandit/editorial-content-service/internal/handler"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/queue"
    "github.com/unclebandit/editorial-content-service/internal/repository"
    "github.com/unclebandit/editorial-content-service/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
    t.Helper()
    log := logger.Nop()

    gen, err := generator.New(config.Generator{Provider: "mock", Model: "gpt-4o-mini", Timeout: time.Second}, log)
    require.NoError(t, err)

    svc := service.NewContentService(repository.NewMemoryContentRepository(log), gen, queue.NopPublisher{}, log)
    contents := &controller.ContentController{ContentService: svc, Log: log}
    meta := &handler.MetaHandler{Name: "Editorial Content Service", Version: "test", DocsURL: DocsPath}

    return NewRouter(config.HTTP{AllowedOrigins: []string{"*"}}, contents, meta, log)
}

func TestRoutesAreMounted(t *testing.T) {
    r := newTestRouter(t)

    for _, tc := range []struct {
        method, path string
        want         int
    }{
        {"GET", "/", http.StatusOK},
        {"GET", "/health", http.StatusOK},
        {"GET", "/debug/generator", http.StatusOK},
        {"GET", "/metrics", http.StatusOK},
        {"GET", "/docs", http.StatusOK},
        {"GET", "/api/v1/list-contents", http.StatusOK},
        {"GET", "/api/v1/unused-contents", http.StatusOK},
        {"GET", "/api/v1/export-excel", http.StatusNotFound},
        {"GET", "/api/v1/generate-content", http.StatusMethodNotAllowed},
        {"GET", "/campaigns", http.StatusNotFound},
    } {
        w := httptest.NewRecorder()
        r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
        assert.Equal(t, tc.want, w.Code, tc.path)
    }
}

func TestRootLinksToMountedDocs(t *testing.T) {
    r := newTestRouter(t)

    w := httptest.NewRecorder()
    r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
    require.Equal(t, http.StatusOK, w.Code)
    var root map[string]string
    require.NoError(t, json.NewDecoder(w.Body).Decode(&root))
    require.NotEmpty(t, root["docs"])

    w = httptest.NewRecorder()
    r.ServeHTTP(w, httptest.NewRequest("GET", root["docs"], nil))
    require.Equal(t, http.StatusOK, w.Code)

    var index struct {
        Routes []routeDoc `json:"routes"`
    }
    require.NoError(t, json.NewDecoder(w.Body).Decode(&index))
    assert.Contains(t, index.Routes, routeDoc{Method: "POST", Path: "/api/v1/generate-content"})
    assert.Contains(t, index.Routes, routeDoc{Method: "POST", Path: "/api/v1/contents/{id}/mark-used"})
    assert.Contains(t, index.Routes, routeDoc{Method: "GET", Path: "/metrics"})
}

func TestGenerateThroughRouterWithMockProvider(t *testing.T) {
    r := newTestRouter(t)

    body := strings.NewReader(`{"channel":"Facebook","prospectTier":"Peu qualifié","date":"2025-10-06"}`)
    w := httptest.NewRecorder()
    r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/generate-content", body))
    require.Equal(t, http.StatusOK, w.Code, w.Body.String())
    assert.Contains(t, w.Body.String(), "drafted locally")

    w = httptest.NewRecorder()
    r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
    assert.Contains(t, w.Body.String(), `editorial_generations_total{channel="Facebook",source="provider"}`)
}

func TestCORSPreflight(t *testing.T) {
    r := newTestRouter(t)

    req := httptest.NewRequest("OPTIONS", "/api/v1/generate-content", nil)
    req.Header.Set("Origin", "https://editor.example.com")
    req.Header.Set("Access-Control-Request-Method", "POST")
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)

    assert.Contains(t, []string{"*", "https://editor.example.com"}, w.Header().Get("Access-Control-Allow-Origin"))
    assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRunStopsOnCancel(t *testing.T) {
    srv := New(config.HTTP{ListenAddr: "127.0.0.1:0"}, http.NotFoundHandler())
    assert.Equal(t, 120*time.Second, srv.WriteTimeout)

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan error, 1)
    go func() { done <- Run(ctx, srv, time.Second, logger.Nop()) }()

    time.Sleep(50 * time.Millisecond)
    cancel()

    select {
    case err := <-done:
        assert.NoError(t, err)
    case <-time.After(3 * time.Second):
        t.Fatal("server did not stop")
    }
}
