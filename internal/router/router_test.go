package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
)

func newTestServer(checks map[string]Pinger) *echo.Echo {
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	e := echo.New()
	Register(e, cfg, auth.NewJWTService("test"), Handlers{
		Users:      handler.NewUserHandler(nil, nil, false),
		Categories: handler.NewCategoryHandler(nil, false),
		Tasks:      handler.NewTaskHandler(nil, false),
	}, checks)
	return e
}

func TestRegister_Routes(t *testing.T) {
	e := newTestServer(nil)

	want := []string{
		"POST /api/users/register",
		"POST /api/users/login",
		"POST /api/users/refresh",
		"POST /api/users/logout",
		"GET /api/users/:id",
		"GET /api/categories",
		"GET /api/categories/:id",
		"GET /api/tasks",
		"GET /api/tasks/summary",
		"GET /api/tasks/:id",
		"POST /api/tasks",
		"PUT /api/tasks/:id",
		"DELETE /api/tasks/:id",
		"GET /healthz",
	}

	var got []string
	for _, r := range e.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	for _, route := range want {
		assert.Contains(t, got, route)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("refused") }),
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"database":"up","redis":"down"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCORSPreflight(t *testing.T) {
	e := newTestServer(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	req := handler.RegisterRequest{Username: "bob", Email: "nope"}

	err := v.Validate(&req)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "'email'"))
}
