package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/observability"
	"github.com/jlbbacs/quick-registration/internal/storage"
	"github.com/jlbbacs/quick-registration/internal/utils"
)

// SessionService gates the admin surface behind a single configured
// credential pair. The gate consults only the in-memory authenticated flag,
// which is initialized from persisted state at startup, so a login survives
// a process restart.
type SessionService struct {
	store    storage.KeyValue
	logger   *zap.Logger
	username string
	password string

	mu      sync.RWMutex
	session *models.Session
}

// NewSessionService creates a new session service instance
func NewSessionService(store storage.KeyValue, username, password string, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:    store,
		logger:   logger,
		username: username,
		password: password,
	}
}

// Global session service instance
var SessionServiceInstance *SessionService

// InitSessionService initializes the global session service instance and
// restores any persisted session.
func InitSessionService(ctx context.Context, store storage.KeyValue, username, password string) {
	logger := zap.L().Named("session_service")
	SessionServiceInstance = NewSessionService(store, username, password, logger)

	if err := SessionServiceInstance.Restore(ctx); err != nil {
		logger.Warn("failed to restore persisted session", zap.Error(err))
	}

	logger.Info("session service initialized")
}

// Login checks the credential pair against the configured one. On success
// the session is established and persisted; on failure any existing session
// is left untouched. The result deliberately does not distinguish an unknown
// user from a wrong password.
func (s *SessionService) Login(ctx context.Context, username, password string) (*models.Session, bool) {
	ctx, span := utils.TraceBusinessLogic(ctx, "login")
	defer span.End()

	if username != s.username || password != s.password {
		observability.AuthAttempts.WithLabelValues("failure").Inc()
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, false
	}

	session := &models.Session{Username: username, IsAuthenticated: true}
	if err := s.persist(ctx, session); err != nil {
		// The in-memory flag still flips: the actor authenticated, only the
		// restart-survival guarantee is degraded.
		s.logger.Warn("failed to persist session", zap.Error(err))
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	observability.AuthAttempts.WithLabelValues("success").Inc()
	s.logger.Info("login accepted", zap.String("username", username))
	return session, true
}

// Logout clears both the in-memory and the persisted session state
// unconditionally.
func (s *SessionService) Logout(ctx context.Context) error {
	ctx, span := utils.TraceBusinessLogic(ctx, "logout")
	defer span.End()

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}

	s.logger.Info("logged out")
	return nil
}

// IsAuthenticated reports the in-memory authentication flag.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.IsAuthenticated
}

// Session returns a copy of the current session, or nil.
func (s *SessionService) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Restore initializes the in-memory state from the persisted session, if
// one exists.
func (s *SessionService) Restore(ctx context.Context) error {
	raw, err := s.store.Get(ctx, storage.SessionKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read persisted session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return fmt.Errorf("failed to decode persisted session: %w", err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	s.logger.Info("session restored",
		zap.String("username", session.Username),
		zap.Bool("authenticated", session.IsAuthenticated))
	return nil
}

func (s *SessionService) persist(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.SessionKey, raw)
}
