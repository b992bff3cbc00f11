// Package apperr defines the error taxonomy shared by the services and the
// HTTP boundary. Every failure a service can return wraps one of the
// sentinel values below; handlers translate them to status codes with
// StatusCode and never branch on message text.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials covers unknown email, soft-deleted account and
	// wrong password alike, so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDataExists reports a username, email or title uniqueness violation.
	ErrDataExists = errors.New("data already exists")

	// ErrInvalidData reports a request-shape violation such as a password
	// confirmation mismatch.
	ErrInvalidData = errors.New("invalid data")

	// ErrInvalidPassword reports a password that fails the strength policy.
	ErrInvalidPassword = errors.New("password does not meet the policy")

	// ErrNotFound reports a missing user, role, post, comment or refresh token.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied reports a caller that is neither owner nor privileged.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnauthenticated covers every access-token verification failure.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// StatusCode maps a taxonomy error to its fixed HTTP status. Anything
// outside the taxonomy is an internal error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDataExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidData), errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
