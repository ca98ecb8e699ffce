package dto

import "github.com/google/uuid"

type CreatePrivateChatRequest struct {
	User2Email string `json:"user2_email" binding:"required,email"`
}

type CreateChatRoomRequest struct {
	RoomName string `json:"room_name" binding:"required"`
}

type ChatCreatedResponse struct {
	ChatID         uuid.UUID `json:"chat_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
}

type ConversationCreatedResponse struct {
	RoomID         uuid.UUID `json:"room_id"`
	ConversationID uuid.UUID `json:"conversation_id"`
}
