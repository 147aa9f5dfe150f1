package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes recorded by GenerationMetrics.
const (
	OutcomeCreated        = "created"
	OutcomeDeclined       = "declined"
	OutcomeParseError     = "parse_error"
	OutcomeInvalid        = "invalid"
	OutcomeGeneratorError = "generator_error"
	OutcomeStoreError     = "store_error"
)

// GenerationMetrics provides Prometheus metrics for the generation pipeline
type GenerationMetrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewGenerationMetrics registers the generation metrics with reg
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	factory := promauto.With(reg)
	return &GenerationMetrics{
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_generations_total",
				Help: "Recipe generation attempts by outcome",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_generation_duration_seconds",
				Help:    "Time spent waiting for the generator",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
			},
		),
	}
}

func (m *GenerationMetrics) observe(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}
