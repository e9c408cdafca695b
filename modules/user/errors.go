package user

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/gatekeeper/core"
	"github.com/dmitrymomot/gatekeeper/pkg/auth"
	"github.com/dmitrymomot/gatekeeper/pkg/validator"
)

// Stable error codes exposed by this module.
var (
	errEmailTaken       = core.NewHTTPError(http.StatusBadRequest, "email_already_exists")
	errInvalidCreds     = core.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	errInvalidOTP       = core.NewHTTPError(http.StatusBadRequest, "invalid_or_expired_otp")
	errUnauthenticated  = core.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	errStaleCredentials = core.NewHTTPError(http.StatusUnauthorized, "stale_credentials")
	errUserNotFound     = core.NewHTTPError(http.StatusUnauthorized, "user_not_found")
	errDeliveryFailed   = core.NewHTTPError(http.StatusBadGateway, "email_delivery_failed")
)

// mapError translates service errors into the module's HTTP error codes.
// Validation failures pass through untouched; unknown errors stay opaque
// and render as 500.
func mapError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return errEmailTaken
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errInvalidCreds
	case errors.Is(err, auth.ErrInvalidOTP):
		return errInvalidOTP
	case errors.Is(err, auth.ErrUnauthenticated):
		return errUnauthenticated
	case errors.Is(err, auth.ErrStaleCredentials):
		return errStaleCredentials
	case errors.Is(err, auth.ErrUserNotFound):
		return errUserNotFound
	case errors.Is(err, auth.ErrDeliveryFailed):
		return errDeliveryFailed
	default:
		return err
	}
}

func errorAs(err error, target *core.HTTPError) bool {
	return errors.As(err, target)
}
