package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStorage defines the durable store of user records keyed by
// normalized email. Implementations must guarantee atomic single-record
// reads and updates; no multi-record transactions are required.
type UserStorage interface {
	// CreateUser persists a new record. It returns ErrEmailAlreadyExists
	// when the normalized email is already taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID returns the record for the given ID, or ErrUserNotFound.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetUserByEmail returns the record for the given normalized email,
	// or ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByOTPHash returns the record holding the given passcode
	// digest with an expiry strictly after now. Expired entries never
	// match, even when the stored hash equals the candidate. Returns
	// ErrUserNotFound when nothing matches.
	GetUserByOTPHash(ctx context.Context, hash string, now time.Time) (*User, error)

	// UpdateUser persists in-place mutation of an existing record.
	UpdateUser(ctx context.Context, user *User) error
}
