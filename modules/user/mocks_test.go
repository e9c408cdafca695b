package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignUp(ctx context.Context, params auth.SignUpParams) (*auth.User, error) {
	args := m.Called(ctx, params)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockAuthenticator) Verify(ctx context.Context, email, code string) (string, *auth.User, error) {
	args := m.Called(ctx, email, code)
	if u := args.Get(1); u != nil {
		return args.String(0), u.(*auth.User), args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func (m *MockAuthenticator) Protect(ctx context.Context, tokenString string) (*auth.User, error) {
	args := m.Called(ctx, tokenString)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

var _ Authenticator = (*MockAuthenticator)(nil)
