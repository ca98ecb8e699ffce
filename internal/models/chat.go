package models

import (
	"time"

	"github.com/google/uuid"
)

type PublicChat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time

	// Связи
	Members       []User         `gorm:"many2many:public_chat_members"`
	Conversations []Conversation `gorm:"foreignKey:PublicChatID"`
}

// PrivateChat всегда содержит ровно двух участников. Пара нормализована:
// UserAID < UserBID, уникальный индекс запрещает повторный чат для той же пары.
type PrivateChat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserAID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_private_chat_pair"`
	UserBID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_private_chat_pair"`
	CreatedAt time.Time
}

// NormalizePair приводит пару пользователей к каноническому порядку
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// HasMember проверяет, входит ли пользователь в приватный чат
func (c *PrivateChat) HasMember(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}
