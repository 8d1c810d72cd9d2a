package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type MissionHandler struct {
	missionSvc service.MissionServiceInterface
}

func NewMissionHandler(missionSvc service.MissionServiceInterface) *MissionHandler {
	return &MissionHandler{missionSvc: missionSvc}
}

func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	missions, err := h.missionSvc.List(r.Context(), userID)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list missions", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, missions)
}

type createMissionRequest struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Date     string  `json:"date"`
	ClientID string  `json:"clientId"`
}

func (h *MissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	var req createMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if req.Title == "" || req.ClientID == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "title and clientId are required", nil)
		return
	}
	date, ok := parseMissionDate(w, r, req.Date)
	if !ok {
		return
	}

	mission, err := h.missionSvc.Create(r.Context(), userID, service.CreateMissionInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Status:   domain.MissionStatus(req.Status),
		Date:     date,
		ClientID: req.ClientID,
	})
	if err != nil {
		h.writeMissionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, mission)
}

func (h *MissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	missionID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	mission, err := h.missionSvc.Get(r.Context(), userID, missionID)
	if err != nil {
		h.writeMissionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, mission)
}

type updateMissionRequest struct {
	Title    *string  `json:"title"`
	Amount   *float64 `json:"amount"`
	Status   *string  `json:"status"`
	Date     *string  `json:"date"`
	ClientID *string  `json:"clientId"`
}

func (h *MissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	missionID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req updateMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	input := service.UpdateMissionInput{
		Title:    req.Title,
		Amount:   req.Amount,
		ClientID: req.ClientID,
	}
	if req.Status != nil {
		status := domain.MissionStatus(*req.Status)
		input.Status = &status
	}
	if req.Date != nil {
		date, ok := parseMissionDate(w, r, *req.Date)
		if !ok {
			return
		}
		input.Date = &date
	}

	mission, err := h.missionSvc.Update(r.Context(), userID, missionID, input)
	if err != nil {
		h.writeMissionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, mission)
}

func (h *MissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authUserID(w, r)
	if !ok {
		return
	}
	missionID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.missionSvc.Delete(r.Context(), userID, missionID); err != nil {
		h.writeMissionError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"id": missionID})
}

func (h *MissionHandler) writeMissionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrMissionNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "mission not found", nil)
	case errors.Is(err, repository.ErrClientNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
	case errors.Is(err, service.ErrInvalidMissionStatus):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid mission status", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "mission operation failed", nil)
	}
}

// parseMissionDate accepts either a full RFC 3339 timestamp or a bare
// calendar date.
func parseMissionDate(w http.ResponseWriter, r *http.Request, raw string) (time.Time, bool) {
	if raw == "" {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "date is required", nil)
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid date format", nil)
	return time.Time{}, false
}
