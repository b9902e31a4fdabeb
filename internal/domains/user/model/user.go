package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// User is an account created from a Google identity on first login.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	GoogleID    string    `json:"-" db:"google_id"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Email       string    `json:"email" db:"email"`
	Image       string    `json:"image" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
