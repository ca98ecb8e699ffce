package database

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const appendStripes = 64

type Database struct {
	db *gorm.DB

	// Полосы блокировок сериализуют вставку сообщений по conversation id,
	// чтобы порядок timestamp внутри диалога был однозначным
	appendMu [appendStripes]sync.Mutex
}

func (d *Database) appendLock(conversationID uuid.UUID) *sync.Mutex {
	return &d.appendMu[int(conversationID[0])%appendStripes]
}
