package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(CreateAuthCookie(profile.Token))
	return c.JSON(http.StatusOK, profile)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(CreateAuthCookie(profile.Token))
	return c.JSON(http.StatusOK, profile)
}

// Refresh reads the refresh-token value from the token query parameter and
// returns a rotated pair; the caller must persist the new value.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	value := c.QueryParam("token")
	if value == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token query parameter required")
	}

	profile, err := h.Svc.Refresh(ctx, value)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(CreateAuthCookie(profile.Token))
	return c.JSON(http.StatusOK, profile)
}
