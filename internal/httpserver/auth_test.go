package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/post-hub/iam-service/internal/models"
	"github.com/post-hub/iam-service/internal/repo"
	"github.com/post-hub/iam-service/internal/service"
	"github.com/post-hub/iam-service/internal/tokens"
)

type testEnv struct {
	t     *testing.T
	e     *echo.Echo
	codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Role{}, &models.RefreshToken{},
		&models.Post{}, &models.Comment{},
	))

	store := repo.New(db)
	require.NoError(t, store.SeedRoles(context.Background()))

	codec := tokens.NewCodec([]byte("test-jwt-secret"))
	e := echo.New()
	Register(e, &Deps{
		Codec: codec,
		Auth: &AuthHTTP{
			Svc: &service.AuthService{Repo: store, Codec: codec},
		},
		Posts:    &PostHTTP{Svc: &service.PostService{Repo: store}},
		Comments: &CommentHTTP{Svc: &service.CommentService{Repo: store}},
		Users:    &UserHTTP{Svc: &service.UserService{Repo: store}},
	})

	return &testEnv{t: t, e: e, codec: codec}
}

func (env *testEnv) doJSON(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(username, email, password string) service.Profile {
	env.t.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var profile service.Profile
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &profile))
	return profile
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AuthCookieName {
			return ck
		}
	}
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username":         "alice",
		"email":            "alice@x.com",
		"password":         "Secret1!",
		"confirm_password": "Secret1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile service.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.NotEmpty(t, profile.Token)
	assert.NotEmpty(t, profile.RefreshToken)

	ck := authCookie(rec)
	require.NotNil(t, ck, "register must set the Authorization cookie")
	assert.Equal(t, profile.Token, ck.Value)
	assert.Equal(t, AuthCookieMaxAge, ck.MaxAge)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, "/", ck.Path)
}

func TestRegisterEndpoint_Failures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register("alice", "alice@x.com", "Secret1!")

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{
			name: "duplicate username",
			body: map[string]string{"username": "alice", "email": "new@x.com", "password": "Secret1!", "confirm_password": "Secret1!"},
			code: http.StatusConflict,
		},
		{
			name: "duplicate email",
			body: map[string]string{"username": "bob", "email": "alice@x.com", "password": "Secret1!", "confirm_password": "Secret1!"},
			code: http.StatusConflict,
		},
		{
			name: "confirmation mismatch",
			body: map[string]string{"username": "bob", "email": "bob@x.com", "password": "Secret1!", "confirm_password": "Secret2!"},
			code: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{"username": "bob", "email": "bob@x.com", "password": "weak", "confirm_password": "weak"},
			code: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register("alice", "alice@x.com", "Secret1!")

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "Secret1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, authCookie(rec))

	bad := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "Wrong1!!",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	unknown := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "Secret1!",
	})
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// Same body for both failure causes.
	assert.JSONEq(t, bad.Body.String(), unknown.Body.String())
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	profile := env.register("alice", "alice@x.com", "Secret1!")

	rec := env.doJSON(http.MethodGet, "/api/v1/auth/refresh?token="+profile.RefreshToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed service.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEqual(t, profile.RefreshToken, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.Token)

	// The rotated-away value is gone.
	replay := env.doJSON(http.MethodGet, "/api/v1/auth/refresh?token="+profile.RefreshToken, nil)
	assert.Equal(t, http.StatusNotFound, replay.Code)

	missing := env.doJSON(http.MethodGet, "/api/v1/auth/refresh", nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/v1/posts", map[string]string{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/posts",
		map[string]string{"title": "t", "content": "c"},
		&http.Cookie{Name: AuthCookieName, Value: "forged-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	profile := env.register("alice", "alice@x.com", "Secret1!")
	rec = env.doJSON(http.MethodPost, "/api/v1/posts",
		map[string]string{"title": "t", "content": "c"},
		&http.Cookie{Name: AuthCookieName, Value: profile.Token})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminRoute_RejectsPlainUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	profile := env.register("alice", "alice@x.com", "Secret1!")

	rec := env.doJSON(http.MethodPost, "/api/v1/admin/users",
		map[string]string{"username": "bob", "email": "bob@x.com", "password": "Secret1!"},
		&http.Cookie{Name: AuthCookieName, Value: profile.Token})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
