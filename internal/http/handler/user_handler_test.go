package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

func TestMeReturnsCallerProfile(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != testUserID {
				t.Fatalf("unexpected user id: %q", userID)
			}
			return &domain.User{ID: userID, Email: "me@example.com"}, nil
		},
	})

	req := withAccessClaims(httptest.NewRequest(http.MethodGet, "/users/me", nil), testUserID)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["email"] != "me@example.com" {
		t.Fatalf("unexpected profile: %v", data)
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Fatal("password hash must not appear in responses")
	}
}

func TestMeWithoutClaims(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUpdateMePartialFields(t *testing.T) {
	var gotInput service.UpdateUserInput
	h := NewUserHandler(&stubUserService{
		updateFn: func(_ context.Context, userID string, input service.UpdateUserInput) (*domain.User, error) {
			gotInput = input
			return &domain.User{ID: userID, Email: *input.Email}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"email":"next@example.com"}`))
	req = withAccessClaims(req, testUserID)
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.Email == nil || *gotInput.Email != "next@example.com" {
		t.Fatalf("unexpected email input: %+v", gotInput)
	}
	if gotInput.Password != nil {
		t.Fatal("password should stay unset when omitted from the body")
	}
}

func TestUpdateMeRejectsInvalidEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateFn: func(context.Context, string, service.UpdateUserInput) (*domain.User, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"email":"nope"}`))
	req = withAccessClaims(req, testUserID)
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateMeTakenEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateFn: func(context.Context, string, service.UpdateUserInput) (*domain.User, error) {
			return nil, service.ErrEmailTaken
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"email":"dup@example.com"}`))
	req = withAccessClaims(req, testUserID)
	rec := httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDeleteMe(t *testing.T) {
	var gotUserID string
	h := NewUserHandler(&stubUserService{
		deleteFn: func(_ context.Context, userID string) error {
			gotUserID = userID
			return nil
		},
	})

	req := withAccessClaims(httptest.NewRequest(http.MethodDelete, "/users/me", nil), testUserID)
	rec := httptest.NewRecorder()
	h.DeleteMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != testUserID {
		t.Fatalf("unexpected user id: %q", gotUserID)
	}
}

func TestDeleteMeMissingUser(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		deleteFn: func(context.Context, string) error {
			return repository.ErrUserNotFound
		},
	})

	req := withAccessClaims(httptest.NewRequest(http.MethodDelete, "/users/me", nil), testUserID)
	rec := httptest.NewRecorder()
	h.DeleteMe(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
