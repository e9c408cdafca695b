package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router returns the module's routes, mountable under /users.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", m.handleSignUp)
	r.Post("/login", m.handleLogin)
	r.Post("/verify", m.handleVerify)

	r.Group(func(protected chi.Router) {
		protected.Use(m.Middleware)
		protected.Get("/me", m.handleMe)
		protected.Patch("/password", m.handleChangePassword)
	})

	return r
}

// Handle returns the router as a plain http.Handler.
func (m *Module) Handle() http.Handler {
	return m.Router()
}
