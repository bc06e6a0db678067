package repository

import (
	"context"
	"sync"
	"time"

	"github.com/wookrail/trainbooking/internal/domain"
)

type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID int64
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrConflict
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := u
	return &found, nil
}

var _ UserRepository = (*MemoryUserRepository)(nil)
