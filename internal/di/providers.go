package di

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abfall50/freelance-dashboard/internal/app"
	"github.com/abfall50/freelance-dashboard/internal/config"
	"github.com/abfall50/freelance-dashboard/internal/database"
	"github.com/abfall50/freelance-dashboard/internal/http/handler"
	"github.com/abfall50/freelance-dashboard/internal/http/middleware"
	"github.com/abfall50/freelance-dashboard/internal/http/router"
	"github.com/abfall50/freelance-dashboard/internal/observability"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/security"
	"github.com/abfall50/freelance-dashboard/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(provideLogger)

var RuntimeInfraSet = wire.NewSet(provideOpenDB, provideLimiter)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewSessionRepository,
	repository.NewClientRepository,
	repository.NewMissionRepository,
)

var SecuritySet = wire.NewSet(provideJWTManager)

var ServiceSet = wire.NewSet(
	provideAuthService,
	provideUserService,
	provideClientService,
	provideMissionService,
	provideSessionReaper,
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewClientHandler,
	handler.NewMissionHandler,
	handler.NewHealthHandler,
	provideRouterDependencies,
	provideRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.Env, cfg.LogLevel)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

// provideLimiter picks the Redis fixed-window limiter when REDIS_URL is
// configured, otherwise falls back to the in-process one. Single-node
// deployments do not need Redis for correct limiting.
func provideLimiter(cfg *config.Config) (middleware.Limiter, error) {
	if cfg.RedisURL == "" {
		return middleware.NewLocalFixedWindowLimiter(), nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return middleware.NewRedisFixedWindowLimiter(redis.NewClient(opts), "ratelimit"), nil
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
}

func provideAuthService(
	cfg *config.Config,
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwtMgr *security.JWTManager,
	logger *slog.Logger,
) service.AuthServiceInterface {
	return service.NewAuthService(
		users,
		sessions,
		jwtMgr,
		logger,
		cfg.RefreshTokenPepper,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
		cfg.SessionTTL(),
	)
}

func provideUserService(users repository.UserRepository) service.UserServiceInterface {
	return service.NewUserService(users)
}

func provideClientService(clients repository.ClientRepository) service.ClientServiceInterface {
	return service.NewClientService(clients)
}

func provideMissionService(missions repository.MissionRepository, clients repository.ClientRepository) service.MissionServiceInterface {
	return service.NewMissionService(missions, clients)
}

func provideSessionReaper(sessions repository.SessionRepository, logger *slog.Logger) *service.SessionReaper {
	return service.NewSessionReaper(sessions, logger, time.Hour)
}

func provideRouterDependencies(
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	clientH *handler.ClientHandler,
	missionH *handler.MissionHandler,
	healthH *handler.HealthHandler,
	jwtMgr *security.JWTManager,
	limiter middleware.Limiter,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:      authH,
		UserHandler:      userH,
		ClientHandler:    clientH,
		MissionHandler:   missionH,
		HealthHandler:    healthH,
		JWTManager:       jwtMgr,
		Limiter:          limiter,
		AuthRateLimitRPM: cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:  cfg.APIRateLimitPerMin,
	}
}

func provideRouter(dep router.Dependencies) http.Handler {
	return router.New(dep)
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	return database.Migrate(m.db)
}
