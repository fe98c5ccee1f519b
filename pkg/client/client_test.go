package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/utils"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves /auth/login and /auth/me the way the API does,
// recording the tokens it sees.
func newTestServer(t *testing.T, adminID int64, role string) (*httptest.Server, *string) {
	t.Helper()
	viper.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { viper.Set("JWT_SECRET", "") })

	var lastToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "correct-password" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "AUTH_INVALID_CREDENTIALS",
				"message": "Invalid credentials.",
			})
			return
		}
		token, err := utils.GenerateToken(adminID, role)
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		lastToken = r.Header.Get("X-Auth-Token")
		claims, err := utils.ParseToken(lastToken)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "AUTH_TOKEN_INVALID",
				"message": "Token is not valid.",
			})
			return
		}
		json.NewEncoder(w).Encode(Profile{
			ID:        claims.AdminID,
			Email:     "admin@visapro.test",
			Role:      claims.Role,
			CreatedAt: time.Now(),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &lastToken
}

func TestLoginDecodesClaimsLocally(t *testing.T) {
	srv, _ := newTestServer(t, 42, "super-admin")
	c := New(srv.URL, &MemoryTokenStore{})

	session, err := c.Login(context.Background(), "admin@visapro.test", "correct-password")
	require.NoError(t, err)

	// Identity comes from the token claims, no /auth/me round trip.
	assert.True(t, session.Authenticated)
	assert.Equal(t, int64(42), session.AdminID)
	assert.Equal(t, "super-admin", session.Role)
	assert.Nil(t, session.Profile)
}

func TestLoginFailure(t *testing.T) {
	srv, _ := newTestServer(t, 42, "admin")
	store := &MemoryTokenStore{}
	c := New(srv.URL, store)

	_, err := c.Login(context.Background(), "admin@visapro.test", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", apiErr.Code)

	// Nothing persisted on failure.
	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestRestoreValidTokenAttachesPerRequest(t *testing.T) {
	srv, lastToken := newTestServer(t, 7, "admin")
	token, err := utils.GenerateToken(7, "admin")
	require.NoError(t, err)
	store := &MemoryTokenStore{}
	require.NoError(t, store.Save(token))

	c := New(srv.URL, store)
	session, err := c.Restore(context.Background())
	require.NoError(t, err)

	assert.True(t, session.Authenticated)
	assert.Equal(t, int64(7), session.AdminID)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "admin@visapro.test", session.Profile.Email)
	// The stored token went out on the validation request itself.
	assert.Equal(t, token, *lastToken)
}

func TestRestoreInvalidTokenClearsStore(t *testing.T) {
	srv, _ := newTestServer(t, 7, "admin")
	store := &MemoryTokenStore{}
	require.NoError(t, store.Save("stale-garbage-token"))

	c := New(srv.URL, store)
	session, err := c.Restore(context.Background())
	require.NoError(t, err)

	assert.False(t, session.Authenticated)
	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestRestoreNoToken(t *testing.T) {
	srv, _ := newTestServer(t, 7, "admin")
	c := New(srv.URL, &MemoryTokenStore{})

	session, err := c.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Authenticated)
}

func TestSessionBlocksUntilRestore(t *testing.T) {
	srv, _ := newTestServer(t, 7, "admin")
	c := New(srv.URL, &MemoryTokenStore{})

	// Before Restore resolves, Session honours the caller's deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Session(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = c.Restore(context.Background())
	require.NoError(t, err)

	session, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Authenticated)
}

func TestLogoutClearsSession(t *testing.T) {
	srv, _ := newTestServer(t, 7, "admin")
	store := &MemoryTokenStore{}
	c := New(srv.URL, store)

	_, err := c.Login(context.Background(), "admin@visapro.test", "correct-password")
	require.NoError(t, err)
	require.NoError(t, c.Logout())

	session, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Authenticated)

	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestLogoutDuringRestoreStaysSignedOut(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { viper.Set("JWT_SECRET", "") })

	inFlight := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		close(inFlight)
		<-release
		claims, err := utils.ParseToken(r.Header.Get("X-Auth-Token"))
		assert.NoError(t, err)
		json.NewEncoder(w).Encode(Profile{
			ID:        claims.AdminID,
			Email:     "admin@visapro.test",
			Role:      claims.Role,
			CreatedAt: time.Now(),
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	token, err := utils.GenerateToken(7, "admin")
	require.NoError(t, err)
	store := &MemoryTokenStore{}
	require.NoError(t, store.Save(token))

	c := New(srv.URL, store)

	done := make(chan Session, 1)
	go func() {
		session, restoreErr := c.Restore(context.Background())
		assert.NoError(t, restoreErr)
		done <- session
	}()

	// Log out while the restore's validation request is still in flight,
	// then let the server answer with a perfectly good profile.
	<-inFlight
	require.NoError(t, c.Logout())
	close(release)

	// The late profile must not resurrect the session.
	session := <-done
	assert.False(t, session.Authenticated)

	current, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, current.Authenticated)

	stored, _ := store.Load()
	assert.Empty(t, stored)
}

func TestFileTokenStore(t *testing.T) {
	path := t.TempDir() + "/session/token"
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}
