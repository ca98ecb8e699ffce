package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/talkie/internal/services"
)

func TestSessionRegistry(t *testing.T) {
	t.Run("should register and look up a session", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry()

		connID := uuid.New()
		user := services.UserSnapshot{ID: uuid.New(), Email: "u@example.com"}

		registry.Register(connID, user)

		got, ok := registry.Lookup(connID)
		req.True(ok)
		req.Equal(user, got)
		req.Equal(1, registry.Len())
	})

	t.Run("should return nothing for an unknown connection", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry()

		_, ok := registry.Lookup(uuid.New())
		req.False(ok)
	})

	t.Run("unregister should be idempotent", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry()

		connID := uuid.New()
		registry.Register(connID, services.UserSnapshot{ID: uuid.New()})

		registry.Unregister(connID)
		registry.Unregister(connID)

		_, ok := registry.Lookup(connID)
		req.False(ok)
		req.Equal(0, registry.Len())
	})

	t.Run("re-register overwrites the previous user", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry()

		connID := uuid.New()
		first := services.UserSnapshot{ID: uuid.New()}
		second := services.UserSnapshot{ID: uuid.New()}

		registry.Register(connID, first)
		registry.Register(connID, second)

		got, ok := registry.Lookup(connID)
		req.True(ok)
		req.Equal(second.ID, got.ID)
		req.Equal(1, registry.Len())
	})
}
