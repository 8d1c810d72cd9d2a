package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthServiceInterface
}

func NewAuthHandler(authSvc service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	pair, err := h.authSvc.Signup(r.Context(), req.Email, req.Password, middleware.ExtractRequestMeta(r))
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(w, r, http.StatusConflict, "CONFLICT", "email already taken", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "signup failed", nil)
		return
	}
	response.JSON(w, r, http.StatusCreated, pair)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	pair, err := h.authSvc.Login(r.Context(), req.Email, req.Password, middleware.ExtractRequestMeta(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "login failed", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, pair)
}

// Refresh exchanges a signature-verified refresh token for a new pair.
// The RequireRefreshToken middleware has already validated the token as
// a signed object; the session row check happens in the service.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	raw, ok := middleware.RefreshTokenFromContext(r.Context())
	if !ok || raw == "" {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session", nil)
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), claims.Subject, raw, middleware.ExtractRequestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionExpired):
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "session expired", nil)
		case errors.Is(err, service.ErrInvalidSession):
			response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "refresh failed", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}
	if err := h.authSvc.Logout(r.Context(), claims.Subject); err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "logout failed", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"logged_out": true})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return req, false
	}
	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "a valid email is required", nil)
		return req, false
	}
	if req.Password == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "password is required", nil)
		return req, false
	}
	return req, true
}
