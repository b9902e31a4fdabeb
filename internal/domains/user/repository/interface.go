package repository

import (
	"context"

	"github.com/google/uuid"

	"nexload-backend/internal/domains/user/model"
)

// UserRepository is the persistence contract for the users table.
type UserRepository interface {
	// UpsertByGoogleID creates the user on first login or refreshes
	// the profile fields on subsequent ones, returning the stored row.
	UpsertByGoogleID(ctx context.Context, user *model.User) (*model.User, error)

	// GetByID fetches a user. Returns model.ErrUserNotFound when
	// absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
