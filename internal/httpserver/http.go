// Package httpserver is the echo boundary: routing, auth middleware,
// cookies, and the translation of the apperr taxonomy into status codes.
package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/tokens"
)

// AuthCookieName doubles as the header name the access token travels under.
const AuthCookieName = "Authorization"

// AuthCookieMaxAge matches the access-token TTL (300 seconds).
const AuthCookieMaxAge = int(tokens.AccessTTL / time.Second)

func CreateAuthCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   AuthCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// httpError hides internals: taxonomy errors keep their generic message,
// everything else becomes a bare 500. Wrapped context (IDs, field names)
// never leaves the process.
func httpError(err error) *echo.HTTPError {
	code := apperr.StatusCode(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, "internal error")
	}
	return echo.NewHTTPError(code, http.StatusText(code))
}
