package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pageza/pikasmart/backend/config"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment:          config.Test,
		DBDriver:             "sqlite",
		DBPath:               filepath.Join(t.TempDir(), "app.db"),
		JWTSecret:            "app-test-secret",
		ClientURL:            "http://localhost:5173",
		LLMProvider:          "gemini",
		GeminiModel:          "gemini-2.5-flash",
		GeminiAPIURL:         "http://127.0.0.1:1",
		LLMTimeout:           time.Second,
		LLMRequestsPerMinute: 30,
		GenerateLimitPerHour: 20,
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.Nil(t, a.Redis)
	deps := a.Dependencies()
	assert.Nil(t, deps.GenerateLimiter, "no redis means no limiter")
	assert.False(t, deps.SecureCookies)
	assert.NotNil(t, deps.Gatherer)
	assert.Same(t, a.Generator.Breaker(), deps.GeneratorBreaker)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewGenerator(t *testing.T) {
	cfg := testConfig(t)

	gen, err := NewGenerator(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, service.StateClosed, gen.Breaker().State())

	cfg.LLMProvider = "deepseek"
	_, err = NewGenerator(cfg, zap.NewNop())
	assert.NoError(t, err)

	cfg.LLMProvider = "mystery"
	_, err = NewGenerator(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewTranscriptStoreWithoutBucket(t *testing.T) {
	store, err := NewTranscriptStore(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, service.NopTranscriptStore{}, store)
}
