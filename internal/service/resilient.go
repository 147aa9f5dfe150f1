package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ResilientConfig tunes ResilientGenerator. Zero values take the defaults:
// 60s timeout, one retry, 30 requests per minute, 5 failures open the
// circuit for 30s. A negative Retries disables retrying.
type ResilientConfig struct {
	Timeout           time.Duration
	Retries           int
	RequestsPerMinute int
	FailureThreshold  int
	OpenFor           time.Duration
}

// ResilientGenerator wraps a Generator with a shared rate limit, a per-call
// timeout, a retry and a circuit breaker. All failures come back wrapping
// ErrGenerationFailed.
type ResilientGenerator struct {
	next    Generator
	limiter *rate.Limiter
	breaker *CircuitBreaker
	timeout time.Duration
	retries int
	log     *zap.Logger
}

func NewResilientGenerator(next Generator, cfg ResilientConfig, log *zap.Logger) *ResilientGenerator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	switch {
	case cfg.Retries == 0:
		cfg.Retries = 1
	case cfg.Retries < 0:
		cfg.Retries = 0
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}

	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	return &ResilientGenerator{
		next:    next,
		limiter: rate.NewLimiter(perSecond, cfg.RequestsPerMinute),
		breaker: NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenFor),
		timeout: cfg.Timeout,
		retries: cfg.Retries,
		log:     log,
	}
}

// Breaker exposes the circuit breaker; /health reports its state.
func (g *ResilientGenerator) Breaker() *CircuitBreaker {
	return g.breaker
}

func (g *ResilientGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if !g.breaker.Allow() {
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, ErrCircuitOpen)
		}
		if err := g.limiter.Wait(ctx); err != nil {
			g.breaker.Release()
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		text, err := g.call(ctx, prompt)
		if err != nil && ctx.Err() != nil {
			// The caller gave up; the generator is not to blame.
			g.breaker.Release()
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		g.breaker.Record(err == nil)
		if err == nil {
			return text, nil
		}
		lastErr = err

		g.log.Warn("generator call failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

func (g *ResilientGenerator) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Generate(ctx, prompt)
}
