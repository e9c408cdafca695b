package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the full internal user record. It carries credential material
// and must never be serialized to clients directly; use Public for
// anything that leaves the service.
type User struct {
	ID                uuid.UUID
	Email             string
	Name              string
	PasswordHash      []byte
	OTPHash           string
	OTPExpiresAt      time.Time
	Active            bool
	PasswordChangedAt time.Time
	CreatedAt         time.Time
}

// PublicUser is the client-safe projection of a user record.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the client-safe projection of the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// SetOTP stores a new outstanding passcode digest. The hash and its expiry
// are always written together.
func (u *User) SetOTP(hash string, expiresAt time.Time) {
	u.OTPHash = hash
	u.OTPExpiresAt = expiresAt
}

// ClearOTP removes the outstanding passcode digest and its expiry.
func (u *User) ClearOTP() {
	u.OTPHash = ""
	u.OTPExpiresAt = time.Time{}
}
