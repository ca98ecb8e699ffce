package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/thereayou/talkie/internal/database"
	"github.com/thereayou/talkie/internal/models"
	"github.com/thereayou/talkie/pkg/auth"
)

const defaultCacheLimit = 1024

// UserSnapshot хранит кэшируемый срез пользователя для живых сессий
type UserSnapshot struct {
	ID    uuid.UUID
	Email string
}

type UserStore interface {
	GetUser(id uuid.UUID) (*models.User, error)
}

// IdentityResolver превращает токен в пользователя. Вызывается на каждом
// подключении, входе в комнату и запросе истории, поэтому срезы пользователей
// кэшируются в ограниченной по размеру map.
type IdentityResolver struct {
	tokens    *auth.JWTManager
	users     UserStore
	blacklist TokenBlacklist

	mu         sync.Mutex
	cache      map[uuid.UUID]UserSnapshot
	cacheLimit int
}

func NewIdentityResolver(tokens *auth.JWTManager, users UserStore, blacklist TokenBlacklist) *IdentityResolver {
	return &IdentityResolver{
		tokens:     tokens,
		users:      users,
		blacklist:  blacklist,
		cache:      make(map[uuid.UUID]UserSnapshot),
		cacheLimit: defaultCacheLimit,
	}
}

// Resolve проверяет токен и возвращает пользователя.
// Без побочных эффектов, безопасен для конкурентных вызовов.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*UserSnapshot, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	if r.blacklist != nil {
		revoked, err := r.blacklist.Contains(ctx, token)
		if err != nil || revoked {
			return nil, ErrInvalidToken
		}
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return r.SnapshotByID(ctx, userID)
}

// SnapshotByID возвращает срез пользователя, по возможности из кэша
func (r *IdentityResolver) SnapshotByID(_ context.Context, id uuid.UUID) (*UserSnapshot, error) {
	r.mu.Lock()
	if snapshot, ok := r.cache[id]; ok {
		r.mu.Unlock()
		return &snapshot, nil
	}
	r.mu.Unlock()

	user, err := r.users.GetUser(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	snapshot := UserSnapshot{ID: user.ID, Email: user.Email}

	r.mu.Lock()
	if len(r.cache) >= r.cacheLimit {
		// Кэш полон, выселяем произвольную запись
		for key := range r.cache {
			delete(r.cache, key)
			break
		}
	}
	r.cache[id] = snapshot
	r.mu.Unlock()

	return &snapshot, nil
}
