// Package user exposes the authentication service over HTTP: signup,
// OTP-gated login, email verification, the authorization middleware for
// protected routes, and the MongoDB-backed user store.
package user

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
)

// Authenticator is the slice of the auth service consumed by this module.
type Authenticator interface {
	SignUp(ctx context.Context, params auth.SignUpParams) (*auth.User, error)
	Login(ctx context.Context, email, password string) error
	Verify(ctx context.Context, email, code string) (string, *auth.User, error)
	Protect(ctx context.Context, tokenString string) (*auth.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

var _ Authenticator = (*auth.Service)(nil)

// Config holds the module's HTTP-facing settings.
type Config struct {
	AppEnv       string        `env:"APP_ENV" envDefault:"production"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"access_token"`
	CookieTTL    time.Duration `env:"SESSION_COOKIE_TTL" envDefault:"12h"`
	SecureCookie bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// Dev reports whether the service runs in development mode, in which error
// responses carry diagnostic detail.
func (c Config) Dev() bool {
	return c.AppEnv == "development"
}

// Module bundles the HTTP handlers and middleware around the auth service.
type Module struct {
	svc    Authenticator
	cfg    Config
	logger *slog.Logger
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithModuleLogger sets a custom logger for the module.
func WithModuleLogger(l *slog.Logger) ModuleOption {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModule creates the user HTTP module.
func NewModule(svc Authenticator, cfg Config, opts ...ModuleOption) *Module {
	m := &Module{
		svc:    svc,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}
