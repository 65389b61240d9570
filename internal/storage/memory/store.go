// Package memory provides an in-process UserStore for development mode and
// tests. It enforces the same uniqueness semantics as the Postgres store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/urbancanopy/auth-service/internal/models"
	"github.com/urbancanopy/auth-service/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in a mutex-guarded map keyed by email.
type Store struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID int64
}

// NewUserStore creates an empty store.
func NewUserStore() *Store {
	return &Store{users: make(map[string]models.User), nextID: 1}
}

// CreateUser inserts a user, failing with storage.ErrAlreadyExists if the
// email is taken.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return user, nil
}

// FindByEmail fetches a user by email.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// UpdateRole changes a user's role.
func (s *Store) UpdateRole(_ context.Context, email, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	user.Role = role
	s.users[email] = user
	return user, nil
}
