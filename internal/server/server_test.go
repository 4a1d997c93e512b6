package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"infograph-be/internal/bootstrap"
	"infograph-be/internal/config"
	"infograph-be/internal/entity"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/repository/unitofwork"
	"infograph-be/internal/service"
	"infograph-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *config.Config, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.Environment = "development"
	cfg.App.LogFilePath = filepath.Join(dir, "test.log")
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"
	cfg.App.TestMode = true
	cfg.Database.Path = dir
	cfg.Auth.JWTSecret = "integration-secret"
	cfg.Auth.GoogleClientID = "client-id"
	cfg.Search.MaxResults = 5
	cfg.Render.OutputDir = filepath.Join(dir, "infographics")

	db, err := database.NewGormDB(cfg.Database.Path, cfg.App.TestMode)
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	srv := New(cfg, container)

	// Seed a user and mint a token the way the login flow would.
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	now := time.Now()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     "it@example.com",
		Name:      "Integration Tester",
		GoogleId:  uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, uowFactory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))

	sysLogger := logger.NewZapLogger(filepath.Join(dir, "auth.log"), false)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.GoogleClientID, sysLogger)
	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	return srv, cfg, token
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestSessionEndpointsRequireAuth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/sessions", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestResearchFlowOverHTTP(t *testing.T) {
	srv, _, token := newTestServer(t)
	app := srv.GetApp()

	// Create a session; the fixture search provider feeds the pipeline.
	payload, _ := json.Marshal(map[string]string{"prompt": "ocean acidification"})
	req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			SessionId uuid.UUID `json:"session_id"`
			Status    string    `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.True(t, created.Success)
	assert.Equal(t, "completed", created.Data.Status)

	// Sources from the fixture page.
	req = httptest.NewRequest("GET", "/api/sessions/"+created.Data.SessionId.String()+"/sources", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Infographic metadata.
	req = httptest.NewRequest("GET", "/api/sessions/"+created.Data.SessionId.String()+"/infographic", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The artifact itself.
	req = httptest.NewRequest("GET", "/api/sessions/"+created.Data.SessionId.String()+"/infographic/image", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestUnknownSessionReturns404(t *testing.T) {
	srv, _, token := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/sessions/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
