package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/catalog"
	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/internal/forum"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/onboarding"
	"github.com/curalink/curalink/backend/api/internal/tokens"
	"github.com/curalink/curalink/backend/api/internal/users"
)

// testEnv wires a full router against memory repositories.
type testEnv struct {
	cfg      *config.Config
	router   *gin.Engine
	usersSvc *users.Service
	favsSvc  *favourites.Service
	trials   catalog.TrialRepository
	experts  catalog.ExpertRepository
	pubs     catalog.PublicationRepository
	forum    forum.Repository
	profiles onboarding.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Algorithm = "HS256"
	cfg.JWT.AccessTokenTTL = time.Hour

	usersSvc := users.NewService(users.NewMemoryRepository())
	favsSvc := favourites.NewService(favourites.NewMemoryRepository())
	trials := catalog.NewMemoryTrialRepository()
	experts := catalog.NewMemoryExpertRepository()
	pubs := catalog.NewMemoryPublicationRepository()
	forumRepo := forum.NewMemoryRepository()
	profiles := onboarding.NewMemoryRepository()

	ident := NewIdentity(cfg, usersSvc.Repository())

	r := gin.New()
	api := r.Group("/api/v1")
	NewAuthHandler(cfg, usersSvc).Register(api)
	NewTrialsHandler(trials, favsSvc, ident).Register(api)
	NewExpertsHandler(experts, favsSvc, ident).Register(api)
	NewPublicationsHandler(pubs, favsSvc, ident, nil).Register(api)
	NewFavouritesHandler(favsSvc, ident).Register(api)
	NewForumHandler(forumRepo).Register(api)
	NewOnboardingHandler(cfg, usersSvc, profiles).Register(api)

	return &testEnv{
		cfg:      cfg,
		router:   r,
		usersSvc: usersSvc,
		favsSvc:  favsSvc,
		trials:   trials,
		experts:  experts,
		pubs:     pubs,
		forum:    forumRepo,
		profiles: profiles,
	}
}

// do performs a JSON request and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// newUser registers an account and returns it with a freshly issued token.
func (e *testEnv) newUser(t *testing.T, email string, role int) (*models.User, string) {
	t.Helper()
	u, err := e.usersSvc.Register(context.Background(), email, "pass1234", "Test User", role)
	require.NoError(t, err)
	token, err := tokens.Issue(e.cfg, u.ID, u.Email, u.Role, 0)
	require.NoError(t, err)
	return u, token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
