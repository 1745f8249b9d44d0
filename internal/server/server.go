// internal/server/server.go
//
// Router assembly and the http.Server lifecycle.
//
// Timeouts
// --------
//   • ReadTimeout   – abort slow clients sending headers/body (15 s)
//   • WriteTimeout  – batch generation waits on five provider calls (120 s)
//   • IdleTimeout   – keep-alive connections (60 s)
package server

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/controller"
    "github.com/unclebandit/editorial-content-service/internal/handler"
)

const APIPrefix = "/api/v1"

// NewRouter mounts every route of the service.
func NewRouter(cfg config.HTTP, contents *controller.ContentController, meta *handler.MetaHandler, log *zap.SugaredLogger) http.Handler {
    r := chi.NewRouter()

    r.Use(middleware.RequestID)
    r.Use(middleware.RealIP)
    r.Use(RequestLogger(log))
    r.Use(middleware.Recoverer)
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins:   cfg.AllowedOrigins,
        AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
        AllowedHeaders:   []string{"*"},
        ExposedHeaders:   []string{"Content-Disposition"},
        AllowCredentials: true,
    }))

    r.Get("/", meta.Root)
    r.Get("/health", meta.Health)
    r.Get("/debug/generator", meta.GeneratorStatus)
    r.Method(http.MethodGet, "/metrics", promhttp.Handler())
    r.Get(DocsPath, routeIndex(r))

    r.Route(APIPrefix, func(r chi.Router) {
        r.Post("/generate-content", contents.GenerateContent)
        r.Post("/generate-content-batch", contents.GenerateBatch)
        r.Get("/list-contents", contents.ListContents)
        r.Get("/export-excel", contents.ExportExcel)
        r.Get("/unused-contents", contents.ListUnused)
        r.Post("/contents/{id}/mark-used", contents.MarkUsed)
    })

    return r
}

func New(cfg config.HTTP, h http.Handler) *http.Server {
    return &http.Server{
        Addr:         cfg.ListenAddr,
        Handler:      h,
        ReadTimeout:  15 * time.Second,
        WriteTimeout: 120 * time.Second,
        IdleTimeout:  60 * time.Second,
    }
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *zap.SugaredLogger) error {
    errCh := make(chan error, 1)
    go func() {
        log.Infow("starting HTTP server", "addr", srv.Addr)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- err
        }
        close(errCh)
    }()

    select {
    case <-ctx.Done():
        log.Infow("shutdown signal received")
    case err := <-errCh:
        if err != nil {
            return err
        }
    }

    shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        return err
    }
    log.Infow("HTTP server stopped")
    return nil
}
