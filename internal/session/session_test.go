package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escrowmart-web/internal/models"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	t.Run("ExpiredJWT", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
		assert.True(t, TokenExpired(token))
	})

	t.Run("ValidJWT", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		assert.False(t, TokenExpired(token))
	})

	t.Run("JWTWithoutExpiry", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "user-1"})
		assert.False(t, TokenExpired(token))
	})

	t.Run("OpaqueToken", func(t *testing.T) {
		// Not a JWT at all; the backend owns its validity.
		assert.False(t, TokenExpired("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"))
	})
}

func TestIsAuthenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAuthenticated())
	assert.False(t, (&Session{ID: "sid"}).IsAuthenticated())
	assert.True(t, (&Session{ID: "sid", Token: "token"}).IsAuthenticated())
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	balance := 120.5
	saved := &Session{
		ID:    "sid-1",
		Token: "bearer-token",
		User: &models.User{
			ID:            "u1",
			Name:          "Alice Seller",
			Email:         "alice@example.com",
			Role:          models.UserRoleSeller,
			WalletBalance: &balance,
		},
	}
	require.NoError(t, store.Save(saved))

	got, err := store.Get("sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sid-1", got.ID)
	assert.Equal(t, "bearer-token", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "alice@example.com", got.User.Email)
	assert.Equal(t, models.UserRoleSeller, got.User.Role)
	require.NotNil(t, got.User.WalletBalance)
	assert.Equal(t, 120.5, *got.User.WalletBalance)
}

func TestSQLiteStoreGetAbsent(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get("never-seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(&Session{ID: "sid-1", Token: "first"}))
	require.NoError(t, store.Save(&Session{ID: "sid-1", Token: "second"}))

	got, err := store.Get("sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Token)
	assert.Nil(t, got.User)
}

func TestSQLiteStoreClear(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(&Session{ID: "sid-1", Token: "token"}))
	require.NoError(t, store.Clear("sid-1"))

	got, err := store.Get("sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing again is a no-op.
	require.NoError(t, store.Clear("sid-1"))
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Save(&Session{ID: "sid-1", Token: "token", User: &models.User{ID: "u1"}}))

	got, err := store.Get("sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutating the returned copy must not leak into the store.
	got.Token = "tampered"
	got.User.ID = "someone-else"

	again, err := store.Get("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "token", again.Token)
	assert.Equal(t, "u1", again.User.ID)
}
