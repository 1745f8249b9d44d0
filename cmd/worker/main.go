// cmd/worker/main.go
package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/spf13/cobra"
    "go.uber.org/zap"

    "github.com/unclebandit/editorial-content-service/internal/config"
    "github.com/unclebandit/editorial-content-service/internal/logger"
    "github.com/unclebandit/editorial-content-service/internal/queue"
)

var cfgFile string

var rootCmd = &cobra.Command{
    Use:   "worker",
    Short: "Consume content.generated events from RabbitMQ",
    Long: `Worker drains the queue the API publishes to when events.backend is
"amqp" and logs every stored record as ready for review.`,
    SilenceUsage: true,
    RunE:         run,
}

func init() {
    rootCmd.Flags().StringVar(&cfgFile, "config", "conf/config.yaml", "config file")
}

func run(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()

    cfg, err := config.Load(cfgFile)
    if err != nil {
        return err
    }
    if cfg.Events.Backend != "amqp" {
        return fmt.Errorf("worker needs events.backend=amqp, got %q", cfg.Events.Backend)
    }

    log, err := logger.New(cfg.Log)
    if err != nil {
        return err
    }
    defer log.Sync()

    consumer, err := queue.DialConsumer(cfg.Events, log)
    if err != nil {
        log.Errorw("failed to connect to RabbitMQ", "err", err)
        return err
    }
    defer consumer.Close()

    return consumer.Run(ctx, reviewHandler(log))
}

func reviewHandler(log *zap.SugaredLogger) queue.EventHandler {
    return func(_ context.Context, event queue.ContentEvent) error {
        c := event.Content
        log.Infow("content ready for review",
            "event_id", event.ID,
            "content_id", c.ID,
            "channel", c.Channel,
            "tier", c.ProspectTier,
            "date", c.GenerationDate.String(),
            "weekly_theme", c.WeeklyTheme)
        return nil
    }
}

func main() {
    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer cancel()

    if err := rootCmd.ExecuteContext(ctx); err != nil {
        os.Exit(1)
    }
}
