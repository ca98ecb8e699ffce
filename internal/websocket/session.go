package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/services"
)

// SessionRegistry связывает живые соединения с аутентифицированными
// пользователями. Запись живет ровно столько, сколько соединение.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]services.UserSnapshot
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]services.UserSnapshot),
	}
}

// Register записывает сессию. Повторная регистрация того же connection id
// означает ошибку логики транспорта, перезаписываем и логируем.
func (r *SessionRegistry) Register(connectionID uuid.UUID, user services.UserSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[connectionID]; ok {
		log.Printf("session %s re-registered: %s -> %s", connectionID, existing.ID, user.ID)
	}
	r.sessions[connectionID] = user
}

func (r *SessionRegistry) Lookup(connectionID uuid.UUID) (services.UserSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.sessions[connectionID]
	return user, ok
}

// Unregister удаляет сессию, повторный вызов ничего не делает
func (r *SessionRegistry) Unregister(connectionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, connectionID)
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
