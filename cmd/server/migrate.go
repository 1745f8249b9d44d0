package main

import (
    "github.com/spf13/cobra"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/db"
    "github.com/unclebandit/editorial-content-service/internal/logger"
)

var migrateCmd = &cobra.Command{
    Use:   "migrate",
    Short: "Apply pending database migrations and exit",
    RunE: func(cmd *cobra.Command, args []string) error {
        ctx := cmd.Context()

        cfg, err := config.Load(cfgFile)
        if err != nil {
            return err
        }
        log, err := logger.New(cfg.Log)
        if err != nil {
            return err
        }
        defer log.Sync()

        conn, err := db.Open(ctx, cfg.Database, log)
        if err != nil {
            return err
        }
        defer conn.Close()

        return db.Migrate(ctx, conn, log)
    },
}
