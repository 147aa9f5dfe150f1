package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/api"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/mocks"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/pageza/pikasmart/backend/internal/testhelpers"
	"github.com/pageza/pikasmart/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	tokens    *service.TokenService
	generator *mocks.MockGenerator
	email     *mocks.MockEmailService
	registry  *prometheus.Registry
	breaker   *service.CircuitBreaker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	log := zap.NewNop()
	tokens := service.NewTokenService("api-test-secret")
	email := new(mocks.MockEmailService)
	generator := new(mocks.MockGenerator)
	registry := prometheus.NewRegistry()
	breaker := service.NewCircuitBreaker(1, time.Minute)

	authService := service.NewAuthService(db, tokens, email, "http://client.test", log)
	recipeService := service.NewRecipeService(db, service.NewEmbeddingService(), log)
	generationService := service.NewGenerationService(generator, recipeService, service.NopTranscriptStore{}, service.NewGenerationMetrics(registry), log)

	router := gin.New()
	router.Use(middleware.Recovery(log))
	api.RegisterRoutes(router, api.Dependencies{
		DB:                db,
		AuthService:       authService,
		RecipeService:     recipeService,
		CollectionService: service.NewCollectionService(db, log),
		GenerationService: generationService,
		GeneratorBreaker:  breaker,
		Gatherer:          registry,
		Log:               log,
	})

	return &testServer{
		router:    router,
		db:        db,
		tokens:    tokens,
		generator: generator,
		email:     email,
		registry:  registry,
		breaker:   breaker,
	}
}

// sessionFor returns a session cookie for user.
func (s *testServer) sessionFor(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := s.tokens.Issue(types.ScopeSession, user.Email)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}
