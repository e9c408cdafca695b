package token

import "errors"

var (
	ErrMissingSecret  = errors.New("token: missing signing secret")
	ErrInvalidTTL     = errors.New("token: ttl must be positive")
	ErrMissingSubject = errors.New("token: missing subject")
	ErrInvalidToken   = errors.New("token: invalid token")
	ErrExpiredToken   = errors.New("token: token is expired")
)
