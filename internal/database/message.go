package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/models"
	"gorm.io/gorm"
)

// AppendMessage сохраняет сообщение в диалог. Вставки для одного диалога
// сериализуются, поэтому порядок timestamp внутри диалога монотонный.
func (d *Database) AppendMessage(conversationID, userID uuid.UUID, body string) (*models.Message, error) {
	mu := d.appendLock(conversationID)
	mu.Lock()
	defer mu.Unlock()

	var conversation models.Conversation
	if err := d.db.First(&conversation, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Content:        body,
		CreatedAt:      time.Now(),
	}

	if err := d.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages возвращает всю историю диалога, старые сообщения первыми.
// При равных timestamp порядок определяет seq.
func (d *Database) ListMessages(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, seq ASC").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}
	return messages, nil
}
