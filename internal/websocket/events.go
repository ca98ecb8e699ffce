package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType определяет типы событий
type EventType string

const (
	// Системные типы
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Клиент -> сервер
	TypeEnterRoom      EventType = "enter_room"
	TypeLeaveRoom      EventType = "leave_room"
	TypeSendMessage    EventType = "send_message"
	TypeMessageHistory EventType = "message_history"

	// Сервер -> клиент
	TypeReceiveMessage EventType = "receive_message"
	TypeError          EventType = "error"
)

type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func marshalEvent(e *Event) ([]byte, error) {
	return json.Marshal(e)
}

// RoomPayload для enter_room / leave_room / message_history
type RoomPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

type SendMessagePayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Message        string    `json:"message"`
}

// ReceiveMessagePayload рассылается всем в комнате
type ReceiveMessagePayload struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	Message        string     `json:"message"`
}

// HistoryEntry описывает одно сообщение в ответе message_history.
// UserEmail пуст, если отправитель больше не резолвится.
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	UserID         uuid.UUID `json:"user_id"`
	UserEmail      string    `json:"user_email,omitempty"`
	ConversationID uuid.UUID `json:"conversation_id"`
}
