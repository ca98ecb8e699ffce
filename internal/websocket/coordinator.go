package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/models"
	"github.com/thereayou/talkie/internal/services"
)

// MessageStore задает срез хранилища, нужный координатору
type MessageStore interface {
	AppendMessage(conversationID, userID uuid.UUID, body string) (*models.Message, error)
	ListMessages(conversationID uuid.UUID) ([]models.Message, error)
}

type PermissionChecker interface {
	CanAccess(conversationID, userID uuid.UUID) (bool, error)
}

type UserDirectory interface {
	SnapshotByID(ctx context.Context, id uuid.UUID) (*services.UserSnapshot, error)
}

// Coordinator диспетчеризует входящие события соединений: проверяет права,
// меняет членство в комнатах, сохраняет и рассылает сообщения.
type Coordinator struct {
	hub   *Hub
	store MessageStore
	perms PermissionChecker
	users UserDirectory
}

func NewCoordinator(hub *Hub, store MessageStore, perms PermissionChecker, users UserDirectory) *Coordinator {
	return &Coordinator{
		hub:   hub,
		store: store,
		perms: perms,
		users: users,
	}
}

func (co *Coordinator) HandleEvent(client *Client, event *Event) error {
	switch event.Type {
	case TypeEnterRoom:
		return co.handleEnterRoom(client, event)

	case TypeLeaveRoom:
		return co.handleLeaveRoom(client, event)

	case TypeSendMessage:
		return co.handleSendMessage(client, event)

	case TypeMessageHistory:
		return co.handleMessageHistory(client, event)

	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

func (co *Coordinator) handleEnterRoom(client *Client, event *Event) error {
	var payload RoomPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return ErrInvalidEvent
	}

	allowed, err := co.perms.CanAccess(payload.ConversationID, client.User.ID)
	if err != nil {
		return err
	}
	if !allowed {
		client.SendError(&payload.ConversationID, ErrAccessDenied.Error())
		return nil
	}

	co.hub.JoinRoom(client, payload.ConversationID)
	return nil
}

func (co *Coordinator) handleLeaveRoom(client *Client, event *Event) error {
	var payload RoomPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return ErrInvalidEvent
	}

	co.hub.LeaveRoom(client, payload.ConversationID)
	return nil
}

func (co *Coordinator) handleSendMessage(client *Client, event *Event) error {
	var payload SendMessagePayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return ErrInvalidEvent
	}

	if payload.ConversationID == uuid.Nil || payload.Message == "" {
		client.SendError(nil, ErrEmptyMessage.Error())
		return nil
	}

	// Членство проверяем по текущему состоянию hub на каждой отправке:
	// соединение могло покинуть комнату между событиями
	if !co.hub.InRoom(client.ID, payload.ConversationID) {
		client.SendError(&payload.ConversationID, ErrNotInRoom.Error())
		return nil
	}

	message, err := co.store.AppendMessage(payload.ConversationID, client.User.ID, payload.Message)
	if err != nil {
		// Сообщение не сохранено, рассылки не будет
		log.Printf("Failed to save message: %v", err)
		client.SendError(&payload.ConversationID, "failed to save message")
		return nil
	}

	response := Event{
		Type:      TypeReceiveMessage,
		Timestamp: message.CreatedAt,
	}
	data, err := json.Marshal(ReceiveMessagePayload{
		User:    client.User.Email,
		Message: message.Content,
	})
	if err != nil {
		return err
	}
	response.Data = data

	eventData, err := marshalEvent(&response)
	if err != nil {
		return err
	}

	co.hub.SendToRoom(payload.ConversationID, eventData)
	return nil
}

func (co *Coordinator) handleMessageHistory(client *Client, event *Event) error {
	var payload RoomPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return ErrInvalidEvent
	}

	// Права пересчитываются на каждый запрос, членство в комнате не требуется
	allowed, err := co.perms.CanAccess(payload.ConversationID, client.User.ID)
	if err != nil {
		return err
	}
	if !allowed {
		client.SendError(&payload.ConversationID, ErrAccessDenied.Error())
		return nil
	}

	messages, err := co.store.ListMessages(payload.ConversationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			client.SendError(&payload.ConversationID, ErrAccessDenied.Error())
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries := make([]HistoryEntry, len(messages))
	for i, message := range messages {
		entry := HistoryEntry{
			ID:             message.ID,
			Content:        message.Content,
			Timestamp:      message.CreatedAt,
			UserID:         message.UserID,
			ConversationID: message.ConversationID,
		}

		// Email отправителя подставляем best effort: пропавший
		// пользователь не роняет всю историю
		if snapshot, err := co.users.SnapshotByID(ctx, message.UserID); err == nil {
			entry.UserEmail = snapshot.Email
		}

		entries[i] = entry
	}

	return client.SendEvent(TypeMessageHistory, entries)
}
