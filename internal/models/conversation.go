package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation принадлежит ровно одному чату: публичному или приватному
type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	IsGroup       bool       `gorm:"default:false"`
	PublicChatID  *uuid.UUID `gorm:"type:uuid"`
	PrivateChatID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
}

type ChatKind int

const (
	ChatKindNone ChatKind = iota
	ChatKindPublic
	ChatKindPrivate
)

// OwningChat описывает владельца диалога. Kind определяет, какой из указателей заполнен.
type OwningChat struct {
	Kind    ChatKind
	Public  *PublicChat
	Private *PrivateChat
}
