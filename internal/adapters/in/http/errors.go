package http

import (
	"errors"
	"net/http"

	"multicleaner/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// statusOf maps the error taxonomy onto HTTP status codes. Upstream is checked
// first because an UpstreamError also unwraps to its cause.
func statusOf(err error) int {
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// messageOf keeps conflict messages verbatim so clients can match on them.
func messageOf(status int, err error) string {
	if msg, ok := errs.ConflictMessage(err); ok {
		return msg
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// ErrorHandler is installed as echo's HTTPErrorHandler.
func (s *Server) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"error", err,
		)
	}

	if writeErr := c.JSON(status, Error{Code: status, Message: messageOf(status, err)}); writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
	}
}
