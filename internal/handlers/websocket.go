package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thereayou/talkie/internal/middleware"
	"github.com/thereayou/talkie/internal/services"
	ws "github.com/thereayou/talkie/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub         *ws.Hub
	coordinator *ws.Coordinator
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, coordinator *ws.Coordinator) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket обрабатывает WebSocket соединения.
// Аутентификация происходит до апгрейда: неверный токен отклоняет соединение.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	user, exists := c.Get(middleware.UserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, user.(services.UserSnapshot))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.coordinator)
}
