package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateVerify(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("should verify token it generated", func(t *testing.T) {
		req := require.New(t)
		userID := uuid.New().String()

		token, err := mgr.GenerateAccess(userID)
		req.NoError(err)
		req.NotEmpty(token)

		claims, err := mgr.Verify(token)
		req.NoError(err)
		req.Equal(userID, claims.Subject)
		req.NotEmpty(claims.ID)
	})

	t.Run("should reject token signed with a different secret", func(t *testing.T) {
		req := require.New(t)

		other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
		token, err := other.GenerateAccess(uuid.New().String())
		req.NoError(err)

		_, err = mgr.Verify(token)
		req.Error(err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)

		token, err := mgr.GenerateWithTTL(uuid.New().String(), -time.Minute)
		req.NoError(err)

		_, err = mgr.Verify(token)
		req.Error(err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		req := require.New(t)

		_, err := mgr.Verify("not-a-token")
		req.Error(err)
	})
}

func TestJWTManager_Expiry(t *testing.T) {
	req := require.New(t)
	mgr := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	token, err := mgr.GenerateAccess(uuid.New().String())
	req.NoError(err)

	exp, err := mgr.Expiry(token)
	req.NoError(err)
	req.WithinDuration(time.Now().Add(time.Hour), exp, time.Minute)
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("should extract bearer token", func(t *testing.T) {
		req := require.New(t)

		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")

		token, err := ExtractTokenFromHeader(r)
		req.NoError(err)
		req.Equal("abc123", token)
	})

	t.Run("should fail without header", func(t *testing.T) {
		req := require.New(t)

		r, _ := http.NewRequest(http.MethodGet, "/", nil)

		_, err := ExtractTokenFromHeader(r)
		req.Error(err)
	})

	t.Run("should fail on a non-bearer scheme", func(t *testing.T) {
		req := require.New(t)

		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic abc123")

		_, err := ExtractTokenFromHeader(r)
		req.Error(err)
	})
}
