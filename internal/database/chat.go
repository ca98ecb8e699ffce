package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/models"
	"gorm.io/gorm"
)

// CreatePrivateChat создает приватный чат для пары пользователей вместе с его
// диалогом. Для пары может существовать только один чат: при гонке создателей
// выигрывает один insert, остальные получают уже существующий чат.
func (d *Database) CreatePrivateChat(userAID, userBID uuid.UUID) (*models.PrivateChat, *models.Conversation, error) {
	if userAID == userBID {
		return nil, nil, ErrSamePrivateUser
	}

	a, b := models.NormalizePair(userAID, userBID)

	if chat, conv, err := d.findPrivateChat(a, b); err == nil {
		return chat, conv, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, nil, err
	}

	chat := &models.PrivateChat{UserAID: a, UserBID: b, CreatedAt: time.Now()}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		conversation := &models.Conversation{
			IsGroup:       false,
			PrivateChatID: &chat.ID,
			CreatedAt:     time.Now(),
		}
		return tx.Create(conversation).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Проиграли гонку, чат уже создан другим вызовом
		return d.findPrivateChat(a, b)
	}
	if err != nil {
		return nil, nil, err
	}

	return d.findPrivateChat(a, b)
}

func (d *Database) findPrivateChat(a, b uuid.UUID) (*models.PrivateChat, *models.Conversation, error) {
	var chat models.PrivateChat
	err := d.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var conversation models.Conversation
	err = d.db.Where("private_chat_id = ?", chat.ID).First(&conversation).Error
	if err != nil {
		return nil, nil, err
	}

	return &chat, &conversation, nil
}

// CreatePublicChat создает публичный чат с первым диалогом одной транзакцией.
// Владелец сразу становится участником.
func (d *Database) CreatePublicChat(name string, ownerID uuid.UUID) (*models.PublicChat, *models.Conversation, error) {
	chat := &models.PublicChat{Name: name, OwnerID: ownerID, CreatedAt: time.Now()}
	conversation := &models.Conversation{IsGroup: true, CreatedAt: time.Now()}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		conversation.PublicChatID = &chat.ID
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}

		var owner models.User
		if err := tx.First(&owner, "id = ?", ownerID).Error; err != nil {
			return err
		}
		return tx.Model(chat).Association("Members").Append(&owner)
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil, ErrChatNameTaken
	}
	if err != nil {
		return nil, nil, err
	}

	return chat, conversation, nil
}

// AddConversation создает еще один диалог внутри публичного чата
func (d *Database) AddConversation(chatID uuid.UUID) (*models.Conversation, error) {
	var chat models.PublicChat
	if err := d.db.First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	conversation := &models.Conversation{
		IsGroup:      true,
		PublicChatID: &chat.ID,
		CreatedAt:    time.Now(),
	}
	if err := d.db.Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

func (d *Database) GetPublicChat(id uuid.UUID) (*models.PublicChat, error) {
	var chat models.PublicChat
	if err := d.db.Preload("Members").First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// JoinPublicChat добавляет пользователя в участники чата
func (d *Database) JoinPublicChat(chatID, userID uuid.UUID) error {
	member, err := d.IsPublicChatMember(chatID, userID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}

	var chat models.PublicChat
	if err := d.db.First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var user models.User
	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return d.db.Model(&chat).Association("Members").Append(&user)
}

func (d *Database) IsPublicChatMember(chatID, userID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Table("public_chat_members").
		Where("public_chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeletePublicChat удаляет чат каскадом: сообщения, диалоги, участники
func (d *Database) DeletePublicChat(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var chat models.PublicChat
		if err := tx.First(&chat, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var conversations []models.Conversation
		if err := tx.Where("public_chat_id = ?", id).Find(&conversations).Error; err != nil {
			return err
		}

		for _, conversation := range conversations {
			if err := tx.Delete(&models.Message{}, "conversation_id = ?", conversation.ID).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Conversation{}, "public_chat_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&chat).Association("Members").Clear(); err != nil {
			return err
		}

		return tx.Delete(&chat).Error
	})
}
