package main

import (
    "github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
    Use:   "editorial-content",
    Short: "Generate, store and export marketing content per channel and prospect tier",
    Long: `Editorial content service.

Generates short marketing texts for LinkedIn, Facebook, Instagram, TikTok
and Mail through a language model, stores them, lists them with filters
and exports them as an Excel workbook.

Running the binary without a subcommand starts the HTTP server.`,
    Version:       version,
    SilenceUsage:  true,
    RunE:          runServe,
}

func init() {
    rootCmd.PersistentFlags().StringVar(
        &cfgFile, "config", "conf/config.yaml", "config file; a missing file falls back to defaults and environment",
    )

    rootCmd.AddCommand(serveCmd)
    rootCmd.AddCommand(migrateCmd)
    rootCmd.AddCommand(versionCmd)
}
