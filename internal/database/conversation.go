package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/models"
	"gorm.io/gorm"
)

// GetOwningChat возвращает владельца диалога. Если диалог или его чат
// не существуют, Kind == ChatKindNone.
func (d *Database) GetOwningChat(conversationID uuid.UUID) (models.OwningChat, error) {
	none := models.OwningChat{Kind: models.ChatKindNone}

	var conversation models.Conversation
	err := d.db.First(&conversation, "id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return none, nil
	}
	if err != nil {
		return none, err
	}

	switch {
	case conversation.PublicChatID != nil:
		var chat models.PublicChat
		err := d.db.First(&chat, "id = ?", *conversation.PublicChatID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return none, nil
		}
		if err != nil {
			return none, err
		}
		return models.OwningChat{Kind: models.ChatKindPublic, Public: &chat}, nil

	case conversation.PrivateChatID != nil:
		var chat models.PrivateChat
		err := d.db.First(&chat, "id = ?", *conversation.PrivateChatID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return none, nil
		}
		if err != nil {
			return none, err
		}
		return models.OwningChat{Kind: models.ChatKindPrivate, Private: &chat}, nil
	}

	return none, nil
}

func (d *Database) IsPrivateMember(conversationID, userID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.PrivateChat{}).
		Joins("JOIN conversations ON conversations.private_chat_id = private_chats.id").
		Where("conversations.id = ? AND (private_chats.user_a_id = ? OR private_chats.user_b_id = ?)",
			conversationID, userID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
