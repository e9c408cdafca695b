// Package token issues and verifies the signed bearer tokens that back
// authenticated sessions. Tokens are stateless HS256 JWTs carrying the
// user ID as subject; the signing secret and lifetime are process-wide
// configuration.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims carried by an access token.
type Claims struct {
	Subject  string
	IssuedAt time.Time
}

// Config holds token signing settings loaded from the environment.
type Config struct {
	Secret string        `env:"JWT_SECRET,required"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"12h"`
}

// Service signs and verifies access tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a token service.
type Option func(*Service)

// WithClock overrides the time source. Used by tests to issue tokens at
// a controlled instant.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service. The secret should be at least 32 bytes for
// adequate HMAC-SHA256 strength.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TTL <= 0 {
		return nil, ErrInvalidTTL
	}

	s := &Service{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue mints a signed token bound to the given subject.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	return tok.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. It returns
// ErrExpiredToken for structurally valid but expired tokens and
// ErrInvalidToken for everything else; a token whose signature does not
// check out is never partially trusted.
func (s *Service) Verify(tokenString string) (Claims, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !tok.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return Claims{
		Subject:  claims.Subject,
		IssuedAt: issuedAt,
	}, nil
}
