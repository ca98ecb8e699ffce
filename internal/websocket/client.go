package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thereayou/talkie/internal/services"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 512 * 1024 // 512KB
)

type ClientEventHandler interface {
	HandleEvent(client *Client, event *Event) error
}

type Client struct {
	ID   uuid.UUID
	User services.UserSnapshot
	Conn *websocket.Conn
	Send chan []byte
	// Диалоги, в которых соединение сейчас состоит
	Rooms map[uuid.UUID]bool
	Hub   *Hub

	mu     sync.RWMutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, user services.UserSnapshot) *Client {
	return &Client{
		ID:    uuid.New(),
		User:  user,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Rooms: make(map[uuid.UUID]bool),
		Hub:   hub,
	}
}

// ReadPump читает события от клиента
func (c *Client) ReadPump(handler ClientEventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var event Event
		err := c.Conn.ReadJSON(&event)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if event.Type == TypePong {
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &event); err != nil {
				c.reportHandlerError(err)
			}
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendEvent(eventType EventType, data interface{}) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		event.Data = jsonData
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.trySend(eventData)
}

// trySend кладет событие в очередь соединения без блокировки
func (c *Client) trySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.Send <- data:
		return nil
	default:
		return ErrClientQueueFull
	}
}

// closeSend закрывает очередь соединения, повторный вызов безопасен
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// reportHandlerError логирует ошибку обработчика. Клиенту уходит либо
// ошибка формата события, либо общий текст: внутренние детали остаются в логе.
func (c *Client) reportHandlerError(err error) {
	log.Printf("Error handling event: %v", err)

	if errors.Is(err, ErrInvalidEvent) {
		c.SendError(nil, err.Error())
		return
	}
	c.SendError(nil, "failed to process event")
}

// SendError отправляет событие error только этому соединению
func (c *Client) SendError(conversationID *uuid.UUID, message string) {
	c.SendEvent(TypeError, ErrorPayload{
		ConversationID: conversationID,
		Message:        message,
	})
}

func (c *Client) IsInRoom(conversationID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rooms[conversationID]
}

func (c *Client) GetRooms() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rooms := make([]uuid.UUID, 0, len(c.Rooms))
	for conversationID := range c.Rooms {
		rooms = append(rooms, conversationID)
	}
	return rooms
}
