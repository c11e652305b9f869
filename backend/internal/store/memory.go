package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/errors"
)

// MemoryStore is an in-process UserStore used for development and tests.
// All reads and writes exchange deep copies, so callers never share record
// state with the store or with each other.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*social.User
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*social.User),
	}
}

// FindAll returns copies of every stored user
func (m *MemoryStore) FindAll(ctx context.Context) ([]*social.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*social.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u.Clone())
	}
	return all, nil
}

// FindByID returns a copy of the user with the given id
func (m *MemoryStore) FindByID(ctx context.Context, id string) (*social.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, errors.NewUserNotFound(id)
	}
	return u.Clone(), nil
}

// Save upserts the user, assigning a uuid on first save, and returns the
// stored copy
func (m *MemoryStore) Save(ctx context.Context, user *social.User) (*social.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := user.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	m.users[stored.ID] = stored
	return stored.Clone(), nil
}

// DeleteByID removes the user with the given id
func (m *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return errors.NewUserNotFound(id)
	}
	delete(m.users, id)
	return nil
}
