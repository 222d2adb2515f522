package handler

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/errors"
)

const claimsContextKey = "user"

// AccessTokenMiddleware parses a bearer access token into the request context.
// Unless required is set, requests without an Authorization header pass
// through and identify the user by the userId parameter instead.
func AccessTokenMiddleware(jwtService *auth.JWTService, required bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		Skipper: func(c echo.Context) bool {
			return !required && c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Message: "invalid or missing access token",
				Code:    "UNAUTHORIZED",
			})
		},
	})
}

// tokenUserID returns the user id carried by a validated access token.
func tokenUserID(c echo.Context) (uint, bool) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// actingUserID resolves who a task request is made for: the token's user when
// present, otherwise the userId query parameter.
func actingUserID(c echo.Context) (uint, error) {
	if id, ok := tokenUserID(c); ok {
		return id, nil
	}
	raw := strings.TrimSpace(c.QueryParam("userId"))
	if raw == "" {
		return 0, badRequest("userId is required")
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, badRequest("invalid userId")
	}
	return id, nil
}
