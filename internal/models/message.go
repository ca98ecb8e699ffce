package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	Content        string    `gorm:"type:text;not null"`
	// Seq растет монотонно на каждую вставку и разрешает равные timestamp
	Seq       int64 `gorm:"autoIncrement;uniqueIndex"`
	CreatedAt time.Time
}
