// cmd/seeder/main.go
package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/spf13/cobra"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/generator"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/model"
    "github.com/unclebandit/editorial-content-service/internal/queue"
    "github.com/unclebandit/editorial-content-service/internal/repository"
    "github.com/unclebandit/editorial-content-service/internal/service"
)

var (
    cfgFile string
    day     string
    weeks   int
)

var rootCmd = &cobra.Command{
    Use:   "seeder",
    Short: "Fill the content store with sample records",
    Long: `Seeder stores one locally drafted record for every channel and prospect
tier, on each of the given number of consecutive weeks. No provider is
called, so it works offline and without an API key.`,
    SilenceUsage: true,
    RunE:         seed,
}

func init() {
    rootCmd.Flags().StringVar(&cfgFile, "config", "conf/config.yaml", "config file")
    rootCmd.Flags().StringVar(&day, "date", time.Now().Format(model.DateLayout), "first generation date (YYYY-MM-DD)")
    rootCmd.Flags().IntVar(&weeks, "weeks", 1, "number of weekly rounds to seed")
}

func seed(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()

    start, err := model.ParseDate(day)
    if err != nil {
        return err
    }
    if weeks < 1 {
        return fmt.Errorf("--weeks must be at least 1, got %d", weeks)
    }

    cfg, err := config.Load(cfgFile)
    if err != nil {
        return err
    }
    if err := checkBackend(cfg.Storage.Backend); err != nil {
        return err
    }
    log, err := logger.New(cfg.Log)
    if err != nil {
        return err
    }
    defer log.Sync()

    store, closeStore, err := repository.Open(ctx, cfg.Storage, cfg.Database, log)
    if err != nil {
        return err
    }
    defer closeStore()

    gen := generator.NewContentGenerator(generator.MockLLM{}, cfg.Generator.Timeout, log)
    svc := service.NewContentService(store, gen, queue.NopPublisher{}, log)

    seeded := 0
    for w := 0; w < weeks; w++ {
        date := model.DateOf(start.AddDate(0, 0, 7*w))
        for _, ch := range model.Channels() {
            for _, tier := range model.ProspectTiers() {
                req := model.GenerationRequest{Channel: ch, ProspectTier: tier, Date: date}
                if _, err := svc.GenerateContent(ctx, req); err != nil {
                    return fmt.Errorf("seed %s/%s on %s: %w", ch, tier, date, err)
                }
                seeded++
            }
        }
    }

    fmt.Printf("Seeded %d records into %s storage\n", seeded, cfg.Storage.Backend)
    return nil
}

// checkBackend refuses stores that do not outlive the seeder process.
func checkBackend(backend string) error {
    if backend == "memory" {
        return fmt.Errorf("storage backend %q keeps records in this process only; seed postgres or file storage instead", backend)
    }
    return nil
}

func main() {
    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer cancel()

    if err := rootCmd.ExecuteContext(ctx); err != nil {
        os.Exit(1)
    }
}
