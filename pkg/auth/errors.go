package auth

import "errors"

// Operational errors safe to map to client-facing responses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrStaleCredentials   = errors.New("credentials changed, please log in again")
	ErrDeliveryFailed     = errors.New("failed to deliver verification email")
)

// Construction errors.
var (
	ErrMissingOTPSecret = errors.New("auth: missing OTP secret")
	ErrInvalidOTPTTL    = errors.New("auth: OTP ttl must be positive")
)
