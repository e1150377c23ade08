// Package session owns authentication state: the durable bearer token
// and the in-memory current user, with change notifications for the
// rest of the app.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taskpanel/taskpanel/internal/logger"
	"github.com/taskpanel/taskpanel/internal/models"
	"github.com/taskpanel/taskpanel/pkg/authtoken"
)

// AuthAPI is the slice of the remote API the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ValidateToken(ctx context.Context) (*models.ValidateResponse, error)
}

// ValidationError is a client-side pre-flight failure. It is never
// sent to the server.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Listener receives the current user on every change, and once
// immediately on subscribe. A nil user means logged out.
type Listener func(user *models.User)

// Store holds the session: a durably stored bearer token plus the
// volatile current user. The user is only ever set after a login,
// register or validate call accepted the token in this process
// lifetime; on restart it is rebuilt by Restore.
type Store struct {
	api    AuthAPI
	tokens TokenStore
	now    func() time.Time

	mu        sync.Mutex
	current   *models.User
	listeners map[int]Listener
	nextID    int
}

// New creates a session store over the given API and token storage.
func New(api AuthAPI, tokens TokenStore) *Store {
	return &Store{
		api:       api,
		tokens:    tokens,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and immediately replays the latest
// value to it. The returned id cancels the subscription via
// Unsubscribe.
func (s *Store) Subscribe(fn Listener) int {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)
	return id
}

// Unsubscribe removes the listener with the given id.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// publish stores the user and notifies listeners outside the lock.
func (s *Store) publish(user *models.User) {
	s.mu.Lock()
	s.current = user
	notify := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(user)
	}
}

// CurrentUser returns the published user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login exchanges credentials for a session. On success the token is
// persisted and the user published; on failure the session is left
// untouched.
func (s *Store) Login(ctx context.Context, req models.LoginRequest) error {
	res, err := s.api.Login(ctx, req)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(res.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	user := res.User
	s.publish(&user)
	logger.Info("logged in", zap.Int64("user_id", user.ID))
	return nil
}

// Register creates an account with the same post-conditions as Login.
// The pre-flight checks run first and never reach the server; they
// back up, not replace, server-side validation.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validateRegistration(req); err != nil {
		return err
	}

	res, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(res.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	user := res.User
	s.publish(&user)
	logger.Info("registered", zap.Int64("user_id", user.ID))
	return nil
}

// Logout drops the durable token and the published user. No network
// call is made; subscribers observe the change immediately.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		logger.Error("clear token", err)
	}
	s.publish(nil)
}

// Restore rebuilds the session from a durable token, if one exists.
// A token the server rejects, or a failing validate call, degrades to
// a logout.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		logger.Error("load token", err)
		return
	}
	if token == "" {
		return
	}

	res, err := s.api.ValidateToken(ctx)
	if err != nil {
		logger.Warn("token validation failed", zap.Error(err))
		s.Logout()
		return
	}
	if !res.Valid {
		s.Logout()
		return
	}

	s.publish(&models.User{
		ID:    res.UserID,
		Name:  res.Name,
		Email: res.Email,
	})
}

// IsAuthenticated inspects the stored token locally: present,
// well-formed and unexpired. The server remains the source of truth;
// a revoked token still reads as authenticated here until it expires.
func (s *Store) IsAuthenticated() bool {
	token, err := s.tokens.Load()
	if err != nil {
		return false
	}
	return authtoken.Valid(token, s.now())
}

func validateRegistration(req models.RegisterRequest) error {
	if utf8.RuneCountInString(req.Name) < 2 {
		return &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}
	if !strings.Contains(req.Email, "@") {
		return &ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if len(req.Password) < 6 {
		return &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	if req.Password != req.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}
