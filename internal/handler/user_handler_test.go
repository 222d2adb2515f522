package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

func setupUserRoutes(t *testing.T) (*echo.Echo, *MockUserService, *MockAuthService) {
	t.Helper()
	e := newTestEcho()
	users := new(MockUserService)
	authSvc := new(MockAuthService)
	h := NewUserHandler(users, authSvc, false)

	e.GET("/api/users/:id", h.GetUser)
	e.POST("/api/users/register", h.Register)
	e.POST("/api/users/login", h.Login)
	e.POST("/api/users/refresh", h.Refresh)
	e.POST("/api/users/logout", h.Logout)
	return e, users, authSvc
}

func TestLogin_ReturnsUserWithoutCredential(t *testing.T) {
	e, _, authSvc := setupUserRoutes(t)
	authSvc.On("Login", mock.Anything, "alice", "secret1").Return(&service.LoginResult{
		User:         &model.User{ID: 7, Username: "alice", Email: "a@x.io", PasswordHash: "$2a$10$hash"},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}, nil)

	rec := serve(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"secret1"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 7, got["userId"])
	assert.Equal(t, "alice", got["username"])
	assert.Equal(t, "access", got["accessToken"])
	assert.NotContains(t, got, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e, _, authSvc := setupUserRoutes(t)
	authSvc.On("Login", mock.Anything, "alice", "wrong").Return(nil, service.ErrInvalidCredentials)

	rec := serve(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"wrong"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Invalid username or password", body.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
}

func TestRegister(t *testing.T) {
	e, _, authSvc := setupUserRoutes(t)
	authSvc.On("Register", mock.Anything, "bob", "bob@x.io", "hunter22").
		Return(&model.User{ID: 9, Username: "bob", Email: "bob@x.io"}, nil)

	rec := serve(e, http.MethodPost, "/api/users/register",
		`{"username":"bob","email":"bob@x.io","password":"hunter22"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/9", rec.Header().Get(echo.HeaderLocation))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Errors(t *testing.T) {
	e, _, authSvc := setupUserRoutes(t)
	authSvc.On("Register", mock.Anything, "bob", "", "hunter22").Return(nil, service.ErrUserAlreadyExists)

	rec := serve(e, http.MethodPost, "/api/users/register", `{"username":"bob","password":"hunter22"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", decodeError(t, rec).Message)

	rec = serve(e, http.MethodPost, "/api/users/register", `{"username":"bob","email":"not-an-email","password":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	authSvc.AssertNumberOfCalls(t, "Register", 1)
}

func TestGetUser(t *testing.T) {
	e, users, _ := setupUserRoutes(t)
	users.On("GetUser", mock.Anything, uint(7)).Return(&model.User{ID: 7, Username: "alice", PasswordHash: "secret"}, nil)
	users.On("GetUser", mock.Anything, uint(8)).Return(nil, apperrors.NotFound("User"))

	rec := serve(e, http.MethodGet, "/api/users/7", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = serve(e, http.MethodGet, "/api/users/8", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeError(t, rec).Message)

	rec = serve(e, http.MethodGet, "/api/users/x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	e, _, authSvc := setupUserRoutes(t)
	authSvc.On("RefreshToken", mock.Anything, "r1").Return("a2", nil)
	authSvc.On("Logout", mock.Anything, "r1").Return(nil)

	rec := serve(e, http.MethodPost, "/api/users/refresh", `{"refreshToken":"r1"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accessToken":"a2"}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/users/logout", `{"refreshToken":"r1"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPost, "/api/users/refresh", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
