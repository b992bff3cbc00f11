package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/post-hub/iam-service/internal/logging"
	"github.com/post-hub/iam-service/internal/tokens"
)

type Deps struct {
	Logger   *slog.Logger
	Codec    *tokens.Codec
	Auth     *AuthHTTP
	Posts    *PostHTTP
	Comments *CommentHTTP
	Users    *UserHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.Logger != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				req := c.Request()
				ctx := logging.IntoContext(req.Context(), d.Logger)
				c.SetRequest(req.WithContext(ctx))
				return next(c)
			}
		})
	}

	authMw := &AuthMiddleware{Codec: d.Codec}
	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/refresh", d.Auth.Refresh)

	posts := v1.Group("/posts", authMw.RequireAuth)
	posts.GET("", d.Posts.List)
	posts.GET("/search", d.Posts.Search)
	posts.GET("/:id", d.Posts.Get)
	posts.POST("", d.Posts.Create)
	posts.PUT("/:id", d.Posts.Update)
	posts.DELETE("/:id", d.Posts.Delete)

	comments := v1.Group("/comments", authMw.RequireAuth)
	comments.GET("", d.Comments.ListByPost)
	comments.GET("/:id", d.Comments.Get)
	comments.POST("", d.Comments.Create)
	comments.PUT("/:id", d.Comments.Update)
	comments.DELETE("/:id", d.Comments.Delete)

	users := v1.Group("/users", authMw.RequireAuth)
	users.GET("", d.Users.List)
	users.GET("/:id", d.Users.Get)
	users.PUT("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)

	// Creating users directly is reserved for admins; the ownership guard
	// inside the services covers everything else.
	admin := v1.Group("/admin", authMw.RequireAuth, authMw.RequireAdmin)
	admin.POST("/users", d.Users.Create)
}
