package middleware

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/babyshop/pkg/context"
)

// Logger renders handler errors and logs one line per request. Server errors
// are logged at error level, client errors at warn level.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			ctx := c.Request().Context()
			status := c.Response().Status

			entry := logger.WithContext(ctx).WithFields(map[string]any{
				"request_id":  context.GetRequestID(ctx),
				"user_id":     context.GetUserID(ctx),
				"method":      c.Request().Method,
				"route":       c.Path(),
				"uri":         c.Request().RequestURI,
				"status":      status,
				"duration_ms": time.Since(started).Milliseconds(),
				"bytes_out":   c.Response().Size,
				"remote_ip":   c.RealIP(),
			})

			switch {
			case status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}
			return nil
		}
	}
}
