package app

import (
	"log/slog"
	"net/http"

	"github.com/abfall50/freelance-dashboard/internal/config"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server
	Reaper *service.SessionReaper
}

func New(cfg *config.Config, logger *slog.Logger, server *http.Server, reaper *service.SessionReaper) *App {
	return &App{Config: cfg, Logger: logger, Server: server, Reaper: reaper}
}
