package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/models"
)

type ChatStore interface {
	GetOwningChat(conversationID uuid.UUID) (models.OwningChat, error)
	IsPrivateMember(conversationID, userID uuid.UUID) (bool, error)
}

// PermissionService решает, может ли пользователь читать диалог.
// Только чтение состояния, никаких побочных эффектов.
type PermissionService struct {
	store ChatStore
}

func NewPermissionService(store ChatStore) *PermissionService {
	return &PermissionService{store: store}
}

// CanAccess разрешает доступ в публичный чат всем, в приватный только двум
// его участникам, в несуществующий диалог никому.
func (s *PermissionService) CanAccess(conversationID, userID uuid.UUID) (bool, error) {
	owning, err := s.store.GetOwningChat(conversationID)
	if err != nil {
		return false, err
	}

	switch owning.Kind {
	case models.ChatKindPublic:
		return true, nil
	case models.ChatKindPrivate:
		return s.store.IsPrivateMember(conversationID, userID)
	default:
		return false, nil
	}
}
