package websocket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_HandlerErrors(t *testing.T) {
	t.Run("internal error details stay out of the error event", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(NewHub(), "a@example.com")

		client.reportHandlerError(errors.New("pq: password authentication failed"))

		payload := recvError(t, client)
		req.Equal("failed to process event", payload.Message)
		req.NotContains(payload.Message, "pq:")
	})

	t.Run("a malformed event is reported as such", func(t *testing.T) {
		req := require.New(t)
		client := newTestClient(NewHub(), "a@example.com")

		client.reportHandlerError(ErrInvalidEvent)

		payload := recvError(t, client)
		req.Equal(ErrInvalidEvent.Error(), payload.Message)
	})
}
