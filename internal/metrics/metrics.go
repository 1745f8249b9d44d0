// Package metrics holds the Prometheus instruments of the content service.
// All collectors are registered with the default registry, so mounting
// promhttp.Handler() is enough to expose them.
package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
)

const (
    SourceProvider = "provider"
    SourceFallback = "fallback"
)

var (
    GenerationsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Name: "editorial_generations_total",
            Help: "Generated contents by channel and by where the text came from.",
        }, []string{"channel", "source"})

    GenerationFallbacksTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Name: "editorial_generation_fallbacks_total",
            Help: "Generations that used the templated fallback, by cause.",
        }, []string{"reason"})

    GenerationDuration = prometheus.NewHistogram(
        prometheus.HistogramOpts{
            Name:    "editorial_generation_duration_seconds",
            Help:    "Latency of the outbound generation call.",
            Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 60},
        })

    PersistFailuresTotal = prometheus.NewCounter(
        prometheus.CounterOpts{
            Name: "editorial_persist_failures_total",
            Help: "Content records that could not be saved.",
        })

    ExportsTotal = prometheus.NewCounter(
        prometheus.CounterOpts{
            Name: "editorial_exports_total",
            Help: "Spreadsheet exports served.",
        })

    EventsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Name: "editorial_events_total",
            Help: "Content events by outcome (published, failed, delivered).",
        }, []string{"outcome"})
)

func init() {
    prometheus.MustRegister(
        GenerationsTotal,
        GenerationFallbacksTotal,
        GenerationDuration,
        PersistFailuresTotal,
        ExportsTotal,
        EventsTotal,
    )
}
