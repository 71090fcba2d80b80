// Package httperr renders every API failure in one shape:
// {status, error, message, timestamp}.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Response struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func JSON(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	})
}

// Handler shapes errors raised outside controllers (JWT middleware,
// unknown routes, binds) the same way as domain failures.
func Handler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			} else {
				message = http.StatusText(status)
			}
		} else {
			log.Error("unhandled error", "err", err, "path", c.Path())
		}

		_ = JSON(c, status, message)
	}
}
