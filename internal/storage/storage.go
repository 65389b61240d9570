package storage

import (
	"context"
	"errors"

	"github.com/urbancanopy/auth-service/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict. Concurrent registrations
// with the same email are resolved by the store's own unique constraint; the
// loser of that race sees this error.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth core needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateRole(ctx context.Context, email, role string) (models.User, error)
}
