package httpserver

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/access"
	"github.com/post-hub/iam-service/internal/apperr"
	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/tokens"
)

const claimsContextKey = "caller_claims"

type AuthMiddleware struct {
	Codec *tokens.Codec
}

// RequireAuth verifies the access token from the Authorization cookie or
// header and stores the claims for the handler. All verification failures
// collapse into a uniform 401.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return httpError(apperr.ErrUnauthenticated)
		}

		claims, err := m.Codec.Parse(raw, time.Now().UTC())
		if err != nil {
			logging.FromContext(c.Request().Context()).
				Warn("auth_rejected", "reason", err.Error())
			return httpError(apperr.ErrUnauthenticated)
		}

		c.Set(claimsContextKey, *claims)
		return next(c)
	}
}

// RequireAdmin is the coarse route-level gate for admin-only endpoints,
// independent of resource ownership. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := callerClaims(c)
		if !ok {
			return httpError(apperr.ErrUnauthenticated)
		}
		if !access.IsPrivileged(claims.Roles) {
			return httpError(apperr.ErrAccessDenied)
		}
		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(AuthCookieName)
	return strings.TrimPrefix(header, "Bearer ")
}

func callerClaims(c echo.Context) (tokens.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(tokens.Claims)
	return claims, ok
}
