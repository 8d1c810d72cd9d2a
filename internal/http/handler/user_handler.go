package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type UserHandler struct {
	userSvc service.UserServiceInterface
}

func NewUserHandler(userSvc service.UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	u, err := h.userSvc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load user", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, u)
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(trimmed); err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "a valid email is required", nil)
			return
		}
		req.Email = &trimmed
	}

	u, err := h.userSvc.Update(r.Context(), userID, service.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Error(w, r, http.StatusConflict, "CONFLICT", "email already in use", nil)
		case errors.Is(err, repository.ErrUserNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update user", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, u)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	if err := h.userSvc.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete user", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"deleted": true})
}

func authUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid user", nil)
		return "", false
	}
	return claims.Subject, true
}
