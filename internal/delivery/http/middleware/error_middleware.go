package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/delivery/http/response"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Server errors
// are logged in full and answered without internal details.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, errorCode, message, details := m.classify(err)

	if status >= http.StatusInternalServerError {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Request failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
		details = ""
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}

	if writeErr := response.Error(c, status, errorCode, message, details); writeErr != nil {
		m.logger.Warn("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) classify(err error) (status int, errorCode, message, details string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		text := fmt.Sprint(httpErr.Message)

		return httpErr.Code, "HTTP_ERROR", text, text
	}

	return http.StatusInternalServerError,
		domainerrors.ErrInternalError.ErrorCode(),
		domainerrors.ErrInternalError.Message(),
		""
}
