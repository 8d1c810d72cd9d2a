package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abfall50/freelance-dashboard/internal/database"
	"github.com/abfall50/freelance-dashboard/internal/http/handler"
	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/http/router"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/security"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtMgr := security.NewJWTManager(
		"iss",
		"aud",
		"abcdefghijklmnopqrstuvwxyz123456",
		"abcdefghijklmnopqrstuvwxyz654321",
	)

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	clients := repository.NewClientRepository(db)
	missions := repository.NewMissionRepository(db)

	authSvc := service.NewAuthService(users, sessions, jwtMgr, log, "integration-test-pepper", 15*time.Minute, 168*time.Hour, 7*24*time.Hour)
	userSvc := service.NewUserService(users)
	clientSvc := service.NewClientService(clients)
	missionSvc := service.NewMissionService(missions, clients)

	h := router.New(router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authSvc),
		UserHandler:      handler.NewUserHandler(userSvc),
		ClientHandler:    handler.NewClientHandler(clientSvc),
		MissionHandler:   handler.NewMissionHandler(missionSvc),
		HealthHandler:    handler.NewHealthHandler(db),
		JWTManager:       jwtMgr,
		Limiter:          middleware.NewLocalFixedWindowLimiter(),
		AuthRateLimitRPM: 1000,
		APIRateLimitRPM:  1000,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp, envelope
}

func dataField(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	return data
}

func tokensFrom(t *testing.T, envelope map[string]any) tokenPair {
	t.Helper()
	data := dataField(t, envelope)
	access, _ := data["accessToken"].(string)
	refresh, _ := data["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("expected token pair, got %v", data)
	}
	return tokenPair{AccessToken: access, RefreshToken: refresh}
}

func signup(t *testing.T, srv *httptest.Server, email, password string) tokenPair {
	t.Helper()
	resp, envelope := doJSON(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": password})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d (%v)", email, resp.StatusCode, envelope)
	}
	return tokensFrom(t, envelope)
}

func login(t *testing.T, srv *httptest.Server, email, password string) tokenPair {
	t.Helper()
	resp, envelope := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%v)", email, resp.StatusCode, envelope)
	}
	return tokensFrom(t, envelope)
}
