package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/models"
	"github.com/thereayou/talkie/pkg/auth"
)

type stubUserStore struct {
	users map[uuid.UUID]*models.User
	calls int
}

func (s *stubUserStore) GetUser(id uuid.UUID) (*models.User, error) {
	s.calls++
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

type stubBlacklist struct {
	revoked map[string]bool
}

func (s *stubBlacklist) Contains(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func (s *stubBlacklist) Add(_ context.Context, token string, _ time.Duration) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
	}
	s.revoked[token] = true
	return nil
}

func newTestResolver() (*IdentityResolver, *stubUserStore, *stubBlacklist, *auth.JWTManager) {
	users := &stubUserStore{users: make(map[uuid.UUID]*models.User)}
	blacklist := &stubBlacklist{revoked: make(map[string]bool)}
	tokens := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	return NewIdentityResolver(tokens, users, blacklist), users, blacklist, tokens
}

func TestIdentityResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("should resolve a valid token to a user snapshot", func(t *testing.T) {
		req := require.New(t)
		resolver, users, _, tokens := newTestResolver()

		userID := uuid.New()
		users.users[userID] = &models.User{ID: userID, Email: "u@example.com"}

		token, err := tokens.GenerateAccess(userID.String())
		req.NoError(err)

		snapshot, err := resolver.Resolve(ctx, token)
		req.NoError(err)
		req.Equal(userID, snapshot.ID)
		req.Equal("u@example.com", snapshot.Email)
	})

	t.Run("should reject a blacklisted token", func(t *testing.T) {
		req := require.New(t)
		resolver, users, blacklist, tokens := newTestResolver()

		userID := uuid.New()
		users.users[userID] = &models.User{ID: userID, Email: "u@example.com"}

		token, err := tokens.GenerateAccess(userID.String())
		req.NoError(err)
		req.NoError(blacklist.Add(ctx, token, time.Hour))

		_, err = resolver.Resolve(ctx, token)
		req.ErrorIs(err, ErrInvalidToken)
		req.Zero(users.calls)
	})

	t.Run("should reject a malformed token", func(t *testing.T) {
		req := require.New(t)
		resolver, users, _, _ := newTestResolver()

		_, err := resolver.Resolve(ctx, "garbage")
		req.ErrorIs(err, ErrInvalidToken)
		req.Zero(users.calls)
	})

	t.Run("should reject an empty token", func(t *testing.T) {
		req := require.New(t)
		resolver, _, _, _ := newTestResolver()

		_, err := resolver.Resolve(ctx, "")
		req.ErrorIs(err, ErrInvalidToken)
	})

	t.Run("should fail when token names no existing user", func(t *testing.T) {
		req := require.New(t)
		resolver, _, _, tokens := newTestResolver()

		token, err := tokens.GenerateAccess(uuid.New().String())
		req.NoError(err)

		_, err = resolver.Resolve(ctx, token)
		req.ErrorIs(err, ErrUserNotFound)
	})

	t.Run("should be idempotent for repeated calls", func(t *testing.T) {
		req := require.New(t)
		resolver, users, _, tokens := newTestResolver()

		userID := uuid.New()
		users.users[userID] = &models.User{ID: userID, Email: "u@example.com"}

		token, err := tokens.GenerateAccess(userID.String())
		req.NoError(err)

		for i := 0; i < 3; i++ {
			snapshot, err := resolver.Resolve(ctx, token)
			req.NoError(err)
			req.Equal(userID, snapshot.ID)
		}
	})
}

func TestIdentityResolver_SnapshotCache(t *testing.T) {
	ctx := context.Background()

	t.Run("should hit the store only once for repeated lookups", func(t *testing.T) {
		req := require.New(t)
		resolver, users, _, _ := newTestResolver()

		userID := uuid.New()
		users.users[userID] = &models.User{ID: userID, Email: "u@example.com"}

		for i := 0; i < 5; i++ {
			snapshot, err := resolver.SnapshotByID(ctx, userID)
			req.NoError(err)
			req.Equal("u@example.com", snapshot.Email)
		}

		req.Equal(1, users.calls)
	})

	t.Run("should stay bounded when the limit is reached", func(t *testing.T) {
		req := require.New(t)
		resolver, users, _, _ := newTestResolver()
		resolver.cacheLimit = 2

		for i := 0; i < 5; i++ {
			userID := uuid.New()
			users.users[userID] = &models.User{ID: userID, Email: "u@example.com"}

			_, err := resolver.SnapshotByID(ctx, userID)
			req.NoError(err)
		}

		req.LessOrEqual(len(resolver.cache), 2)
	})
}
