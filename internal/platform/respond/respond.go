package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/validate"
)

// Envelope is the uniform response body. Successful responses carry Data,
// failures carry Message.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a success envelope with the given status and payload.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// NoData writes a success envelope without a payload, for deletes.
func NoData(c echo.Context, status int) error {
	return c.JSON(status, Envelope{Success: true})
}

// Error maps a service error to an echo HTTP error: validation failures keep
// their message with a 400, referential integrity conflicts become 409,
// missing rows 404. fallback is used for everything else, so database
// failures stay opaque server errors.
func Error(err error, fallback int, msg string) error {
	switch {
	case validate.IsInvalid(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case db.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, msg)
	case db.IsForeignKeyViolation(err):
		return echo.NewHTTPError(http.StatusConflict, "resource is still referenced by other records")
	default:
		return echo.NewHTTPError(fallback, msg)
	}
}

// HTTPErrorHandler renders every error as a failure envelope. Internal errors
// are logged and masked.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			message = "internal server error"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, Envelope{Success: false, Message: message})
	}
}
