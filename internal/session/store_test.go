package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpanel/taskpanel/internal/apiclient"
	"github.com/taskpanel/taskpanel/internal/models"
)

func mintToken(t *testing.T, expiry time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": expiry.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

// fakeAuth serves the auth endpoints with one known account.
type fakeAuth struct {
	token     string
	user      models.User
	validates bool
	validErr  int // non-zero forces that status on /auth/validate
}

func (f *fakeAuth) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var login models.LoginRequest
		_ = json.NewDecoder(req.Body).Decode(&login)

		w.Header().Set("Content-Type", "application/json")
		if login.Email != f.user.Email || login.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			Token: f.token,
			Type:  "Bearer",
			User:  f.user,
		})
	})

	r.Post("/api/auth/register", func(w http.ResponseWriter, req *http.Request) {
		var reg models.RegisterRequest
		_ = json.NewDecoder(req.Body).Decode(&reg)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			Token: f.token,
			Type:  "Bearer",
			User:  models.User{ID: 8, Name: reg.Name, Email: reg.Email},
		})
	})

	r.Get("/api/auth/validate", func(w http.ResponseWriter, req *http.Request) {
		if f.validErr != 0 {
			w.WriteHeader(f.validErr)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ValidateResponse{
			Valid:  f.validates,
			UserID: f.user.ID,
			Name:   f.user.Name,
			Email:  f.user.Email,
		})
	})

	return r
}

func newTestStore(t *testing.T, auth *fakeAuth) (*Store, *MemoryTokenStore) {
	t.Helper()

	srv := httptest.NewServer(auth.router())
	t.Cleanup(srv.Close)

	tokens := NewMemoryTokenStore()
	api := apiclient.New(srv.URL+"/api", apiclient.WithTokenSource(tokens))
	return New(api, tokens), tokens
}

func TestLoginLogoutLifecycle(t *testing.T) {
	auth := &fakeAuth{
		token: mintToken(t, time.Now().Add(time.Hour)),
		user:  models.User{ID: 7, Name: "Ana", Email: "ana@example.com"},
	}
	store, tokens := newTestStore(t, auth)
	ctx := context.Background()

	assert.False(t, store.IsAuthenticated())

	err := store.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	saved, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, auth.token, saved)
	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "Ana", store.CurrentUser().Name)

	store.Logout()

	saved, err = tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	auth := &fakeAuth{
		token: mintToken(t, time.Now().Add(time.Hour)),
		user:  models.User{ID: 7, Name: "Ana", Email: "ana@example.com"},
	}
	store, tokens := newTestStore(t, auth)

	err := store.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})

	var authErr *apiclient.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Message)

	saved, loadErr := tokens.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, saved)
	assert.Nil(t, store.CurrentUser())
}

func TestIsAuthenticatedExpiredToken(t *testing.T) {
	store, tokens := newTestStore(t, &fakeAuth{})
	require.NoError(t, tokens.Save(mintToken(t, time.Now().Add(-time.Minute))))

	assert.False(t, store.IsAuthenticated())
}

func TestIsAuthenticatedMalformedToken(t *testing.T) {
	store, tokens := newTestStore(t, &fakeAuth{})
	require.NoError(t, tokens.Save("not-a-jwt"))

	assert.False(t, store.IsAuthenticated())
}

func TestRegisterPreflight(t *testing.T) {
	valid := models.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}

	tests := []struct {
		name      string
		mutate    func(*models.RegisterRequest)
		wantField string
	}{
		{
			name:      "short name",
			mutate:    func(r *models.RegisterRequest) { r.Name = "A" },
			wantField: "name",
		},
		{
			// Two bytes, one character.
			name:      "single rune name",
			mutate:    func(r *models.RegisterRequest) { r.Name = "é" },
			wantField: "name",
		},
		{
			name:      "email without at sign",
			mutate:    func(r *models.RegisterRequest) { r.Email = "ana.example.com" },
			wantField: "email",
		},
		{
			name:      "short password",
			mutate:    func(r *models.RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" },
			wantField: "password",
		},
		{
			name:      "mismatched confirmation",
			mutate:    func(r *models.RegisterRequest) { r.ConfirmPassword = "different" },
			wantField: "confirmPassword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, tokens := newTestStore(t, &fakeAuth{})

			req := valid
			tt.mutate(&req)

			err := store.Register(context.Background(), req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)

			// Pre-flight failures never reach the server or touch state.
			saved, loadErr := tokens.Load()
			require.NoError(t, loadErr)
			assert.Empty(t, saved)
			assert.Nil(t, store.CurrentUser())
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	auth := &fakeAuth{token: mintToken(t, time.Now().Add(time.Hour))}
	store, _ := newTestStore(t, auth)

	err := store.Register(context.Background(), models.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "ana@example.com", store.CurrentUser().Email)
	assert.True(t, store.IsAuthenticated())
}

func TestRestore(t *testing.T) {
	user := models.User{ID: 7, Name: "Ana", Email: "ana@example.com"}

	tests := []struct {
		name      string
		auth      *fakeAuth
		seedToken bool
		wantUser  bool
		wantToken bool
	}{
		{
			name:      "valid token republishes user",
			auth:      &fakeAuth{user: user, validates: true},
			seedToken: true,
			wantUser:  true,
			wantToken: true,
		},
		{
			name:      "rejected token degrades to logout",
			auth:      &fakeAuth{user: user, validates: false},
			seedToken: true,
		},
		{
			name:      "validate error degrades to logout",
			auth:      &fakeAuth{user: user, validErr: http.StatusInternalServerError},
			seedToken: true,
		},
		{
			name: "no token is a no-op",
			auth: &fakeAuth{user: user, validates: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, tokens := newTestStore(t, tt.auth)
			if tt.seedToken {
				require.NoError(t, tokens.Save(mintToken(t, time.Now().Add(time.Hour))))
			}

			store.Restore(context.Background())

			if tt.wantUser {
				require.NotNil(t, store.CurrentUser())
				assert.Equal(t, user.ID, store.CurrentUser().ID)
			} else {
				assert.Nil(t, store.CurrentUser())
			}

			saved, err := tokens.Load()
			require.NoError(t, err)
			if tt.wantToken {
				assert.NotEmpty(t, saved)
			} else {
				assert.Empty(t, saved)
			}
		})
	}
}

func TestSubscribeReplaysLatest(t *testing.T) {
	auth := &fakeAuth{
		token: mintToken(t, time.Now().Add(time.Hour)),
		user:  models.User{ID: 7, Name: "Ana", Email: "ana@example.com"},
	}
	store, _ := newTestStore(t, auth)

	var early []*models.User
	store.Subscribe(func(u *models.User) { early = append(early, u) })

	// Replay of the initial nil state.
	require.Len(t, early, 1)
	assert.Nil(t, early[0])

	err := store.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Len(t, early, 2)
	require.NotNil(t, early[1])

	// A late subscriber sees the current value immediately.
	var late []*models.User
	id := store.Subscribe(func(u *models.User) { late = append(late, u) })
	require.Len(t, late, 1)
	require.NotNil(t, late[0])
	assert.Equal(t, "Ana", late[0].Name)

	store.Unsubscribe(id)
	store.Logout()

	assert.Len(t, late, 1, "unsubscribed listener must not fire")
	require.Len(t, early, 3)
	assert.Nil(t, early[2])
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	// Absent file means logged out.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.Save("tok-abc"))

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	got, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-abc", got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
