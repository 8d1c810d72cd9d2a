package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abfall50/freelance-dashboard/internal/domain"
	"github.com/abfall50/freelance-dashboard/internal/observability"
	"github.com/abfall50/freelance-dashboard/internal/repository"
	"github.com/abfall50/freelance-dashboard/internal/security"
)

var (
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RequestMeta is the per-request client metadata captured on session
// rows, threaded explicitly instead of being pulled from middleware
// state.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, email, password string, meta RequestMeta) (*TokenPair, error)
	Login(ctx context.Context, email, password string, meta RequestMeta) (*TokenPair, error)
	Refresh(ctx context.Context, userID, rawRefreshToken string, meta RequestMeta) (*TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtMgr     *security.JWTManager
	logger     *slog.Logger
	pepper     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessionTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwtMgr *security.JWTManager,
	logger *slog.Logger,
	pepper string,
	accessTTL, refreshTTL, sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtMgr:     jwtMgr,
		logger:     logger,
		pepper:     pepper,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password string, meta RequestMeta) (*TokenPair, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		observability.RecordAuthEvent(ctx, "signup", "email_taken")
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, err
	}

	pair, err := s.issuePair(ctx, user, meta)
	if err != nil {
		observability.RecordAuthEvent(ctx, "signup", "error")
		return nil, err
	}
	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	observability.RecordAuthEvent(ctx, "signup", "success")
	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		observability.RecordAuthEvent(ctx, "login", "error")
		return nil, err
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		observability.RecordAuthEvent(ctx, "login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	// A password login revokes every outstanding refresh token, from
	// this device and any other.
	swept, err := s.sessions.DeleteAllForUser(ctx, user.ID)
	if err != nil {
		observability.RecordAuthEvent(ctx, "login", "error")
		return nil, err
	}
	observability.RecordSessionsInvalidated(ctx, "login_sweep", swept)

	pair, err := s.issuePair(ctx, user, meta)
	if err != nil {
		observability.RecordAuthEvent(ctx, "login", "error")
		return nil, err
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "sessions_swept", swept)
	observability.RecordAuthEvent(ctx, "login", "success")
	return pair, nil
}

// Refresh redeems a refresh token whose signature and expiry the caller
// has already verified. The session row is deleted before the new pair
// is issued, so each token value is redeemable at most once; the loser
// of a concurrent redeem race observes the row as gone.
func (s *AuthService) Refresh(ctx context.Context, userID, rawRefreshToken string, meta RequestMeta) (*TokenPair, error) {
	if rawRefreshToken == "" {
		observability.RecordAuthEvent(ctx, "refresh", "invalid_session")
		return nil, ErrInvalidSession
	}

	hash := security.HashRefreshToken(rawRefreshToken, s.pepper)
	session, err := s.sessions.FindByUserAndTokenHash(ctx, userID, hash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			observability.RecordAuthEvent(ctx, "refresh", "invalid_session")
			return nil, ErrInvalidSession
		}
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return nil, err
	}

	if session.Expired(time.Now()) {
		// The row is dead weight once the token inside it has expired as
		// a signed object; remove it here instead of waiting for the
		// reaper.
		if _, err := s.sessions.DeleteByID(ctx, session.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to drop expired session", "session_id", session.ID, "error", err)
		} else {
			observability.RecordSessionsInvalidated(ctx, "expired", 1)
		}
		observability.RecordAuthEvent(ctx, "refresh", "session_expired")
		return nil, ErrSessionExpired
	}

	deleted, err := s.sessions.DeleteByID(ctx, session.ID)
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return nil, err
	}
	if !deleted {
		// lost the race against a concurrent redeem of the same token
		observability.RecordAuthEvent(ctx, "refresh", "invalid_session")
		return nil, ErrInvalidSession
	}
	observability.RecordSessionsInvalidated(ctx, "rotation", 1)

	// The email on the new access token comes from the user row, never
	// from refresh-token claims.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordAuthEvent(ctx, "refresh", "invalid_session")
			return nil, ErrInvalidSession
		}
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return nil, err
	}

	pair, err := s.issuePair(ctx, user, meta)
	if err != nil {
		observability.RecordAuthEvent(ctx, "refresh", "error")
		return nil, err
	}
	observability.RecordAuthEvent(ctx, "refresh", "success")
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	swept, err := s.sessions.DeleteAllForUser(ctx, userID)
	if err != nil {
		observability.RecordAuthEvent(ctx, "logout", "error")
		return err
	}
	observability.RecordSessionsInvalidated(ctx, "logout", swept)
	observability.RecordAuthEvent(ctx, "logout", "success")
	return nil
}

// issuePair signs a fresh token pair and persists the session row
// binding the new refresh token to the user.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User, meta RequestMeta) (*TokenPair, error) {
	access, err := s.jwtMgr.SignAccessToken(user.ID, user.Email, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.SignRefreshToken(user.ID, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		UserID:           user.ID,
		RefreshTokenHash: security.HashRefreshToken(refresh, s.pepper),
		UserAgent:        meta.UserAgent,
		IP:               meta.IP,
		ExpiresAt:        time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
