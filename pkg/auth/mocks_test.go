package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
	"github.com/dmitrymomot/gatekeeper/pkg/email"
)

// MockUserStorage is a mock implementation of auth.UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStorage) GetUserByOTPHash(ctx context.Context, hash string, now time.Time) (*auth.User, error) {
	args := m.Called(ctx, hash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUserStorage) UpdateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memStorage is an in-memory auth.UserStorage used for flow tests.
type memStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[uuid.UUID]*auth.User)}
}

func (s *memStorage) CreateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return auth.ErrEmailAlreadyExists
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStorage) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStorage) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) GetUserByOTPHash(_ context.Context, hash string, now time.Time) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.OTPHash == hash && u.OTPExpiresAt.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) UpdateUser(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return auth.ErrUserNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// mailRecorder is an email.Sender capturing dispatched messages.
type mailRecorder struct {
	mu       sync.Mutex
	messages []email.Message
	fail     error
}

func (r *mailRecorder) Send(_ context.Context, msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *mailRecorder) last() (email.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return email.Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *mailRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
