package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/security"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

const (
	testUserID  = "b3b8f9d2-1d30-41c1-9f11-000000000001"
	testOtherID = "b3b8f9d2-1d30-41c1-9f11-000000000002"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, email, password string, meta service.RequestMeta) (*service.TokenPair, error)
	loginFn   func(ctx context.Context, email, password string, meta service.RequestMeta) (*service.TokenPair, error)
	refreshFn func(ctx context.Context, userID, raw string, meta service.RequestMeta) (*service.TokenPair, error)
	logoutFn  func(ctx context.Context, userID string) error
}

func (s *stubAuthService) Signup(ctx context.Context, email, password string, meta service.RequestMeta) (*service.TokenPair, error) {
	return s.signupFn(ctx, email, password, meta)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, meta service.RequestMeta) (*service.TokenPair, error) {
	return s.loginFn(ctx, email, password, meta)
}

func (s *stubAuthService) Refresh(ctx context.Context, userID, raw string, meta service.RequestMeta) (*service.TokenPair, error) {
	return s.refreshFn(ctx, userID, raw, meta)
}

func (s *stubAuthService) Logout(ctx context.Context, userID string) error {
	return s.logoutFn(ctx, userID)
}

type stubUserService struct {
	getFn    func(ctx context.Context, userID string) (*domain.User, error)
	updateFn func(ctx context.Context, userID string, input service.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, userID string) error
}

func (s *stubUserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) Update(ctx context.Context, userID string, input service.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, input)
}

func (s *stubUserService) Delete(ctx context.Context, userID string) error {
	return s.deleteFn(ctx, userID)
}

type stubClientService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Client, error)
	getFn    func(ctx context.Context, userID, clientID string) (*domain.Client, error)
	createFn func(ctx context.Context, userID string, input service.CreateClientInput) (*domain.Client, error)
	updateFn func(ctx context.Context, userID, clientID string, input service.UpdateClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, userID, clientID string) error
}

func (s *stubClientService) List(ctx context.Context, userID string) ([]domain.Client, error) {
	return s.listFn(ctx, userID)
}

func (s *stubClientService) Get(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	return s.getFn(ctx, userID, clientID)
}

func (s *stubClientService) Create(ctx context.Context, userID string, input service.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubClientService) Update(ctx context.Context, userID, clientID string, input service.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, userID, clientID, input)
}

func (s *stubClientService) Delete(ctx context.Context, userID, clientID string) error {
	return s.deleteFn(ctx, userID, clientID)
}

type stubMissionService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Mission, error)
	getFn    func(ctx context.Context, userID, missionID string) (*domain.Mission, error)
	createFn func(ctx context.Context, userID string, input service.CreateMissionInput) (*domain.Mission, error)
	updateFn func(ctx context.Context, userID, missionID string, input service.UpdateMissionInput) (*domain.Mission, error)
	deleteFn func(ctx context.Context, userID, missionID string) error
}

func (s *stubMissionService) List(ctx context.Context, userID string) ([]domain.Mission, error) {
	return s.listFn(ctx, userID)
}

func (s *stubMissionService) Get(ctx context.Context, userID, missionID string) (*domain.Mission, error) {
	return s.getFn(ctx, userID, missionID)
}

func (s *stubMissionService) Create(ctx context.Context, userID string, input service.CreateMissionInput) (*domain.Mission, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubMissionService) Update(ctx context.Context, userID, missionID string, input service.UpdateMissionInput) (*domain.Mission, error) {
	return s.updateFn(ctx, userID, missionID, input)
}

func (s *stubMissionService) Delete(ctx context.Context, userID, missionID string) error {
	return s.deleteFn(ctx, userID, missionID)
}

// withAccessClaims simulates the RequireAccessToken middleware having
// run for the given subject.
func withAccessClaims(r *http.Request, userID string) *http.Request {
	claims := &security.Claims{
		Email:     "user@example.com",
		TokenType: security.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
	return r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeEnvelope(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in body: %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}
