package router

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Users      *handler.UserHandler
	Categories *handler.CategoryHandler
	Tasks      *handler.TaskHandler
}

// Register wires routes and middleware. Checks are pinged by /healthz.
func Register(e *echo.Echo, cfg *config.Config, jwtService *auth.JWTService, h Handlers, checks map[string]Pinger) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderLocation},
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", healthz(checks))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/register", h.Users.Register)
	api.POST("/users/login", h.Users.Login)
	api.POST("/users/refresh", h.Users.Refresh)
	api.POST("/users/logout", h.Users.Logout)
	api.GET("/users/:id", h.Users.GetUser)

	api.GET("/categories", h.Categories.ListCategories)
	api.GET("/categories/:id", h.Categories.GetCategory)

	// Task routes read the acting user from a bearer token, or from userId when tokens are optional.
	tasks := api.Group("/tasks", handler.AccessTokenMiddleware(jwtService, cfg.AuthRequired))
	tasks.GET("", h.Tasks.ListTasks)
	tasks.GET("/summary", h.Tasks.Summary)
	tasks.GET("/:id", h.Tasks.GetTask)
	tasks.POST("", h.Tasks.CreateTask)
	tasks.PUT("/:id", h.Tasks.UpdateTask)
	tasks.DELETE("/:id", h.Tasks.DeleteTask)
}

func healthz(checks map[string]Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				c.Logger().Warnf("healthz: %s: %v", name, err)
				result[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "up"
		}
		return c.JSON(status, result)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
