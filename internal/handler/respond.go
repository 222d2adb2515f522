package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
)

// errorResponder turns service errors into echo HTTP errors.
type errorResponder struct {
	exposeDetail bool
}

func (r errorResponder) fail(err error, fallback string) error {
	httpErr := errors.MapErrorToHTTP(err, fallback, r.exposeDetail)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}

func invalidBody() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Message: "invalid request body",
		Code:    "INVALID_REQUEST",
	})
}

// bindAndValidate decodes the request and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// parseID reads a positive numeric path or query parameter.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func pathID(c echo.Context) (uint, error) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return 0, badRequest("invalid id")
	}
	return id, nil
}
