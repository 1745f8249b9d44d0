package main

import (
    "github.com/spf13/cobra"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/controller"
    "github.com/unclebandit/editorial-content-service/internal/generator"
    "github.com/unclebandit/editorial-content-service/internal/handler"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/queue"
    "github.com/unclebandit/editorial-content-service/internal/repository"
    "github.com/unclebandit/editorial-content-service/internal/server"
    "github.com/unclebandit/editorial-content-service/internal/service"
)

var listenAddr string

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Start the HTTP API",
    Long: `Start the HTTP API.

Endpoints:
  POST /api/v1/generate-content          one record for a channel, tier and date
  POST /api/v1/generate-content-batch    one record per channel for ?date=
  GET  /api/v1/list-contents             filtered, paginated listing
  GET  /api/v1/export-excel              filtered listing as .xlsx
  GET  /api/v1/unused-contents           records not yet published
  POST /api/v1/contents/{id}/mark-used   flag a record as published
  GET  /health, /debug/generator, /metrics, /docs

Examples:
  editorial-content serve
  editorial-content serve --listen :9000
  CONTENTGEN_STORAGE__BACKEND=memory editorial-content serve`,
    RunE: runServe,
}

func init() {
    serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (overrides http.listen_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()

    cfg, err := config.Load(cfgFile)
    if err != nil {
        return err
    }
    if listenAddr != "" {
        cfg.HTTP.ListenAddr = listenAddr
    }

    log, err := logger.New(cfg.Log)
    if err != nil {
        return err
    }
    defer log.Sync()

    store, closeStore, err := repository.Open(ctx, cfg.Storage, cfg.Database, log)
    if err != nil {
        log.Errorw("failed to open storage", "backend", cfg.Storage.Backend, "err", err)
        return err
    }
    defer closeStore()

    gen, err := generator.New(cfg.Generator, log)
    if err != nil {
        return err
    }

    publisher, err := queue.NewPublisher(cfg.Events, log)
    if err != nil {
        log.Errorw("failed to set up events", "backend", cfg.Events.Backend, "err", err)
        return err
    }
    defer publisher.Close()

    contentService := service.NewContentService(store, gen, publisher, log)

    contentController := &controller.ContentController{
        ContentService: contentService,
        Log:            log,
    }
    metaHandler := &handler.MetaHandler{
        Name:      "Editorial Content Service",
        Version:   version,
        DocsURL:   server.DocsPath,
        Generator: generator.StatusOf(cfg.Generator),
    }

    router := server.NewRouter(cfg.HTTP, contentController, metaHandler, log)
    return server.Run(ctx, server.New(cfg.HTTP, router), cfg.HTTP.ShutdownTimeout, log)
}
