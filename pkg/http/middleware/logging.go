package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	xlogger "CoinPulse/pkg/logger"
)

// RequestLogging logs one line per request with method, path, status, and
// latency.
func RequestLogging(log *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			log.Info("http request",
				xlogger.String("method", req.Method),
				xlogger.String("path", req.RequestURI),
				xlogger.Int("status", c.Response().Status),
				xlogger.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
