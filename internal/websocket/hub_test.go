package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/talkie/internal/services"
)

func newTestClient(hub *Hub, email string) *Client {
	return NewClient(hub, nil, services.UserSnapshot{ID: uuid.New(), Email: email})
}

func recvRaw(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	default:
		t.Fatal("expected a pending message")
		return nil
	}
}

func requireEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		if ok {
			t.Fatalf("expected no delivery, got %s", data)
		}
	default:
	}
}

func TestHub_Rooms(t *testing.T) {
	conversationID := uuid.New()

	t.Run("join is idempotent", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		hub.registerClient(client)

		hub.JoinRoom(client, conversationID)
		hub.JoinRoom(client, conversationID)

		req.True(hub.InRoom(client.ID, conversationID))
		req.True(client.IsInRoom(conversationID))
		req.Len(hub.rooms[conversationID], 1)
		req.Equal([]uuid.UUID{conversationID}, client.GetRooms())
	})

	t.Run("leave is a no-op when absent", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		hub.registerClient(client)

		hub.LeaveRoom(client, conversationID)

		req.False(hub.InRoom(client.ID, conversationID))
	})

	t.Run("broadcast reaches every member including the sender", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		sender := newTestClient(hub, "a@example.com")
		member := newTestClient(hub, "b@example.com")
		outsider := newTestClient(hub, "c@example.com")
		hub.registerClient(sender)
		hub.registerClient(member)
		hub.registerClient(outsider)

		hub.JoinRoom(sender, conversationID)
		hub.JoinRoom(member, conversationID)

		req.ElementsMatch([]uuid.UUID{sender.User.ID, member.User.ID}, hub.RoomClients(conversationID))

		hub.SendToRoom(conversationID, []byte("hello"))

		req.Equal([]byte("hello"), recvRaw(t, sender))
		req.Equal([]byte("hello"), recvRaw(t, member))
		requireEmpty(t, outsider)
	})

	t.Run("empty room disappears after the last member leaves", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		hub.registerClient(client)

		hub.JoinRoom(client, conversationID)
		hub.LeaveRoom(client, conversationID)

		_, ok := hub.rooms[conversationID]
		req.False(ok)
	})
}

func TestHub_Disconnect(t *testing.T) {
	t.Run("disconnect removes the connection from every room and its session", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		stayer := newTestClient(hub, "b@example.com")
		hub.registerClient(client)
		hub.registerClient(stayer)

		roomA := uuid.New()
		roomB := uuid.New()
		hub.JoinRoom(client, roomA)
		hub.JoinRoom(client, roomB)
		hub.JoinRoom(stayer, roomA)

		hub.unregisterClient(client)

		req.False(hub.InRoom(client.ID, roomA))
		req.False(hub.InRoom(client.ID, roomB))
		_, ok := hub.sessions.Lookup(client.ID)
		req.False(ok)

		// Рассылка после дисконнекта не доходит до ушедшего соединения
		hub.SendToRoom(roomA, []byte("after"))
		requireEmpty(t, client)
		req.Equal([]byte("after"), recvRaw(t, stayer))
	})

	t.Run("double disconnect is safe", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		hub.registerClient(client)

		hub.unregisterClient(client)
		hub.unregisterClient(client)

		req.Equal(0, hub.sessions.Len())
	})

	t.Run("shutdown closes queues once and unregister never blocks", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()
		client := newTestClient(hub, "a@example.com")
		hub.registerClient(client)

		hub.Stop()

		// ReadPump после остановки отдает соединение и не зависает
		hub.Unregister(client)

		req.ErrorIs(client.SendEvent(TypePing, nil), ErrClientClosed)

		// Закрытая очередь не закрывается повторно
		hub.unregisterClient(client)
	})

	t.Run("a new connection gets an independent session", func(t *testing.T) {
		req := require.New(t)
		hub := NewHub()

		user := services.UserSnapshot{ID: uuid.New(), Email: "a@example.com"}
		first := NewClient(hub, nil, user)
		hub.registerClient(first)
		hub.unregisterClient(first)

		second := NewClient(hub, nil, user)
		hub.registerClient(second)

		req.NotEqual(first.ID, second.ID)
		_, ok := hub.sessions.Lookup(first.ID)
		req.False(ok)
		got, ok := hub.sessions.Lookup(second.ID)
		req.True(ok)
		req.Equal(user.ID, got.ID)
	})
}
