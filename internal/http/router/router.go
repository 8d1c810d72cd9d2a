package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/abfall50/freelance-dashboard/internal/http/handler"
	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/security"
)

// Dependencies carries everything the router mounts. Handlers are
// required; Limiter may be the local in-process implementation or the
// Redis-backed one.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ClientHandler  *handler.ClientHandler
	MissionHandler *handler.MissionHandler
	HealthHandler  *handler.HealthHandler

	JWTManager *security.JWTManager
	Limiter    middleware.Limiter

	AuthRateLimitRPM int
	APIRateLimitRPM  int
}

func New(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	authLimit := middleware.NewRateLimiter(dep.Limiter, dep.AuthRateLimitRPM, time.Minute, "auth")
	apiLimit := middleware.NewRateLimiter(dep.Limiter, dep.APIRateLimitRPM, time.Minute, "api")

	requireAccess := middleware.RequireAccessToken(dep.JWTManager)
	requireRefresh := middleware.RequireRefreshToken(dep.JWTManager)

	r.Get("/health/live", dep.HealthHandler.Live)
	r.Get("/health/ready", dep.HealthHandler.Ready)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimit.Middleware())
		r.Post("/signup", dep.AuthHandler.Signup)
		r.Post("/login", dep.AuthHandler.Login)
		r.With(requireRefresh).Post("/refresh", dep.AuthHandler.Refresh)
		r.With(requireAccess).Post("/logout", dep.AuthHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(apiLimit.Middleware())
		r.Use(requireAccess)

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", dep.UserHandler.Me)
			r.Patch("/", dep.UserHandler.UpdateMe)
			r.Delete("/", dep.UserHandler.DeleteMe)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", dep.ClientHandler.List)
			r.Post("/", dep.ClientHandler.Create)
			r.Get("/{id}", dep.ClientHandler.Get)
			r.Patch("/{id}", dep.ClientHandler.Update)
			r.Delete("/{id}", dep.ClientHandler.Delete)
		})

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", dep.MissionHandler.List)
			r.Post("/", dep.MissionHandler.Create)
			r.Get("/{id}", dep.MissionHandler.Get)
			r.Patch("/{id}", dep.MissionHandler.Update)
			r.Delete("/{id}", dep.MissionHandler.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return r
}
