package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
)

func protectedRequest(t *testing.T, svc Authenticator, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	newTestModule(svc).Handle().ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareTokenExtraction(t *testing.T) {
	t.Parallel()

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()

		u := testUser(t)
		svc := new(MockAuthenticator)
		svc.On("Protect", mock.Anything, "header-token").Return(u, nil)

		rec := protectedRequest(t, svc, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer header-token")
		})

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bearer scheme is case insensitive", func(t *testing.T) {
		t.Parallel()

		u := testUser(t)
		svc := new(MockAuthenticator)
		svc.On("Protect", mock.Anything, "header-token").Return(u, nil)

		rec := protectedRequest(t, svc, func(r *http.Request) {
			r.Header.Set("Authorization", "bearer header-token")
		})

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session cookie fallback", func(t *testing.T) {
		t.Parallel()

		u := testUser(t)
		svc := new(MockAuthenticator)
		svc.On("Protect", mock.Anything, "cookie-token").Return(u, nil)

		rec := protectedRequest(t, svc, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		})

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		t.Parallel()

		u := testUser(t)
		svc := new(MockAuthenticator)
		svc.On("Protect", mock.Anything, "header-token").Return(u, nil)

		rec := protectedRequest(t, svc, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer header-token")
			r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		})

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertNotCalled(t, "Protect", mock.Anything, "cookie-token")
	})

	t.Run("malformed scheme yields empty token", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthenticator)
		svc.On("Protect", mock.Anything, "").Return(nil, auth.ErrUnauthenticated)

		rec := protectedRequest(t, svc, func(r *http.Request) {
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		})

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddlewareRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		svcErr   error
		wantCode string
	}{
		{name: "missing token", svcErr: auth.ErrUnauthenticated, wantCode: "unauthenticated"},
		{name: "stale token after password change", svcErr: auth.ErrStaleCredentials, wantCode: "stale_credentials"},
		{name: "subject no longer exists", svcErr: auth.ErrUserNotFound, wantCode: "user_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockAuthenticator)
			svc.On("Protect", mock.Anything, mock.Anything).Return(nil, tc.svcErr)

			rec := protectedRequest(t, svc, func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer some-token")
			})

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		u := testUser(t)
		ctx := withCurrentUser(t.Context(), u)

		got, ok := CurrentUser(ctx)
		require.True(t, ok)
		assert.Equal(t, u, got)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		got, ok := CurrentUser(t.Context())
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}
