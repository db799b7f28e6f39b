package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// statusBySentinel maps each domain error to the status it is reported with.
// The sentinel's own text is the message, so wrapping context added by the
// services never reaches the client.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{domain.ErrMissingFields, http.StatusUnprocessableEntity},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
	{domain.ErrInvalidReference, http.StatusUnprocessableEntity},
	{domain.ErrPositionClosed, http.StatusConflict},
	{domain.ErrUsernameTaken, http.StatusConflict},
	{domain.ErrConfirmationRequired, http.StatusPreconditionFailed},
}

// NewHTTPErrorHandler renders every error returned by a handler or
// middleware as {"error": "<message>"}. Unknown errors are logged and
// reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, s := range statusBySentinel {
		if !errors.Is(err, s.err) {
			continue
		}
		if s.err == domain.ErrMissingFields {
			return s.code, validationMessage(err)
		}
		return s.code, s.err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// validationMessage keeps the field list but drops the operation prefix, so
// the client sees "please fill all required fields: title".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrMissingFields.Error()); i >= 0 {
		return msg[i:]
	}
	return domain.ErrMissingFields.Error()
}
