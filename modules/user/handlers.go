package user

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core"
	"github.com/dmitrymomot/gatekeeper/pkg/auth"
	"github.com/dmitrymomot/gatekeeper/pkg/logger"
	"github.com/dmitrymomot/gatekeeper/pkg/validator"
)

type signUpRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (m *Module) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.WriteError(w, core.ErrBadRequest, m.cfg.Dev())
		return
	}

	u, err := m.svc.SignUp(r.Context(), auth.SignUpParams{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		m.writeError(w, r, err)
		return
	}

	core.WriteSuccess(w, http.StatusCreated, map[string]any{
		"user":    u.Public(),
		"message": "Verification code sent, check your inbox",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Module) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.WriteError(w, core.ErrBadRequest, m.cfg.Dev())
		return
	}

	if err := validator.Apply(
		validator.Required("email", req.Email),
		validator.Required("password", req.Password),
	); err != nil {
		core.WriteError(w, err, m.cfg.Dev())
		return
	}

	if err := m.svc.Login(r.Context(), req.Email, req.Password); err != nil {
		m.writeError(w, r, err)
		return
	}

	core.WriteMessage(w, http.StatusCreated, "Verification code sent, check your inbox")
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (m *Module) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.WriteError(w, core.ErrBadRequest, m.cfg.Dev())
		return
	}

	sessionToken, u, err := m.svc.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		m.writeError(w, r, err)
		return
	}

	m.setSessionCookie(w, sessionToken)
	core.WriteSuccess(w, http.StatusCreated, map[string]any{
		"token": sessionToken,
		"user":  u.Public(),
	})
}

func (m *Module) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		core.WriteError(w, core.ErrUnauthorized, m.cfg.Dev())
		return
	}

	core.WriteSuccess(w, http.StatusOK, map[string]any{"user": u.Public()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (m *Module) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		core.WriteError(w, core.ErrUnauthorized, m.cfg.Dev())
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.WriteError(w, core.ErrBadRequest, m.cfg.Dev())
		return
	}

	if err := m.svc.ChangePassword(r.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		m.writeError(w, r, err)
		return
	}

	core.WriteMessage(w, http.StatusOK, "Password updated, please log in again")
}

func (m *Module) setSessionCookie(w http.ResponseWriter, sessionToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(m.cfg.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Module) writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := mapError(err)

	var httpErr core.HTTPError
	if ok := errorAs(mapped, &httpErr); !ok || httpErr.Code >= http.StatusInternalServerError {
		m.logger.ErrorContext(r.Context(), "request failed",
			logger.Error(err),
			logger.Component("user"),
		)
	}

	core.WriteError(w, mapped, m.cfg.Dev())
}
