package handler

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/abfall50/freelance-dashboard/internal/http/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		response.Error(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
