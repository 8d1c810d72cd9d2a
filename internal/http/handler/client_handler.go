package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type ClientHandler struct {
	clientSvc service.ClientServiceInterface
}

func NewClientHandler(clientSvc service.ClientServiceInterface) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	clients, err := h.clientSvc.List(r.Context(), userID)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list clients", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, clients)
}

type createClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Name == "" || req.Email == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "name and email are required", nil)
		return
	}

	client, err := h.clientSvc.Create(r.Context(), userID, service.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create client", nil)
		return
	}
	response.JSON(w, r, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	clientID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	client, err := h.clientSvc.Get(r.Context(), userID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load client", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, client)
}

type updateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	clientID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	client, err := h.clientSvc.Update(r.Context(), userID, clientID, service.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update client", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	clientID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.clientSvc.Delete(r.Context(), userID, clientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete client", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"id": clientID})
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid id", nil)
		return "", false
	}
	return raw, true
}
