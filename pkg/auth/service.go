package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekeeper/pkg/email"
	"github.com/dmitrymomot/gatekeeper/pkg/logger"
	"github.com/dmitrymomot/gatekeeper/pkg/sanitizer"
	"github.com/dmitrymomot/gatekeeper/pkg/token"
	"github.com/dmitrymomot/gatekeeper/pkg/validator"
)

// TokenIssuer mints and verifies the session tokens returned by Verify
// and consumed by Protect.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(tokenString string) (token.Claims, error)
}

// Service orchestrates signup, OTP-gated login, email verification and
// request-time authorization.
type Service struct {
	storage UserStorage
	hasher  *Hasher
	otp     *OTPGenerator
	tokens  TokenIssuer
	mailer  email.Sender

	logger           *slog.Logger
	passwordStrength validator.PasswordStrengthConfig
	now              func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(cfg validator.PasswordStrengthConfig) Option {
	return func(s *Service) {
		s.passwordStrength = cfg
	}
}

// WithClock overrides the time source. Used by tests to control expiry
// comparisons.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an authentication service.
func NewService(storage UserStorage, hasher *Hasher, otp *OTPGenerator, tokens TokenIssuer, mailer email.Sender, opts ...Option) *Service {
	s := &Service{
		storage:          storage,
		hasher:           hasher,
		otp:              otp,
		tokens:           tokens,
		mailer:           mailer,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		passwordStrength: validator.DefaultPasswordStrength(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignUpParams are the inputs to SignUp.
type SignUpParams struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
}

// SignUp registers a new, inactive user and dispatches a verification
// passcode to the given email address. A delivery failure aborts the
// operation with ErrDeliveryFailed.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*User, error) {
	emailAddr := sanitizer.NormalizeEmail(params.Email)

	if err := validator.Apply(
		validator.Required("email", emailAddr),
		validator.ValidEmail("email", emailAddr),
		validator.StrongPassword("password", params.Password, s.passwordStrength),
		validator.Matching("passwordConfirm", params.PasswordConfirm, params.Password),
	); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        emailAddr,
		Name:         sanitizer.Trim(params.Name),
		PasswordHash: passwordHash,
		Active:       false,
		CreatedAt:    s.now(),
	}

	code, expiresAt, err := s.otp.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate passcode: %w", err)
	}
	user.SetOTP(s.hasher.HashOTP(code), expiresAt)

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.dispatchOTP(ctx, user, code); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user signed up",
		logger.UserID(user.ID.String()),
		logger.Email(user.Email),
		logger.Component("auth"),
	)

	return user, nil
}

// Login checks the password and, on success, issues a fresh passcode to
// the user's email address, overwriting any outstanding one. No session
// token is returned; login is OTP-gated. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, emailAddr, password string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	user, err := s.storage.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !s.hasher.VerifyPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	code, expiresAt, err := s.otp.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate passcode: %w", err)
	}
	user.SetOTP(s.hasher.HashOTP(code), expiresAt)

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to store passcode: %w", err)
	}

	if err := s.dispatchOTP(ctx, user, code); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "login passcode issued",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

// Verify redeems a passcode. On success the passcode is cleared, the user
// becomes active and a session token bound to the user ID is returned.
// This is the only path that produces a session token.
func (s *Service) Verify(ctx context.Context, emailAddr, code string) (string, *User, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	if err := validator.Apply(
		validator.Required("email", emailAddr),
		validator.NumericCode("otp", code, s.otp.Digits()),
	); err != nil {
		return "", nil, ErrInvalidOTP
	}

	user, err := s.storage.GetUserByOTPHash(ctx, s.hasher.HashOTP(code), s.now())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidOTP
		}
		return "", nil, fmt.Errorf("failed to look up passcode: %w", err)
	}
	if user.Email != emailAddr {
		return "", nil, ErrInvalidOTP
	}

	user.ClearOTP()
	user.Active = true

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to activate user: %w", err)
	}

	sessionToken, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.InfoContext(ctx, "user verified",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return sessionToken, user, nil
}

// Protect authorizes a request-time bearer token: verifies the signature
// and expiry, loads the subject and rejects tokens issued before the
// user's last password change.
func (s *Service) Protect(ctx context.Context, tokenString string) (*User, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// JWT iat has second precision; truncate the change timestamp so a
	// token issued in the same second as the change is still accepted.
	if !user.PasswordChangedAt.IsZero() &&
		claims.IssuedAt.Before(user.PasswordChangedAt.Truncate(time.Second)) {
		return nil, ErrStaleCredentials
	}

	return user, nil
}

// ChangePassword replaces the user's password after verifying the current
// one and bumps PasswordChangedAt so tokens issued earlier fail Protect.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := validator.Apply(
		validator.StrongPassword("newPassword", newPassword, s.passwordStrength),
	); err != nil {
		return err
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !s.hasher.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = newHash
	user.PasswordChangedAt = s.now()

	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

func (s *Service) dispatchOTP(ctx context.Context, user *User, code string) error {
	minutes := int(s.otp.TTL().Minutes())

	msg := email.Message{
		To:      user.Email,
		Subject: "Your verification code",
		BodyText: fmt.Sprintf(
			"Your verification code is %s. It expires in %d minutes.\n\nIf you did not request this code, you can ignore this email.",
			code, minutes,
		),
		Tag: "verification-code",
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to send verification code",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
		return errors.Join(ErrDeliveryFailed, err)
	}

	return nil
}
