package user

import (
	"net/http"
	"strings"
)

// Middleware is the request-time security gate for protected routes. It
// extracts the bearer token, authorizes it via the auth service and
// attaches the resolved user to the request context.
func (m *Module) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := m.svc.Protect(r.Context(), m.extractToken(r))
		if err != nil {
			m.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withCurrentUser(r.Context(), u)))
	})
}

// extractToken pulls the session token from "Authorization: Bearer <token>",
// falling back to the session cookie for browser clients.
func (m *Module) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(m.cfg.CookieName); err == nil {
		return cookie.Value
	}

	return ""
}
