package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	xlogger "CoinPulse/pkg/logger"
)

// Recover turns a handler panic into a 500 response instead of tearing down
// the connection. The stack goes to the log, never to the client.
func Recover(log *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				log.Error("handler panic",
					xlogger.String("path", c.Request().URL.Path),
					xlogger.Error(err),
					xlogger.String("stack", string(debug.Stack())),
				)
				_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": "internal server error",
				})
			}()
			return next(c)
		}
	}
}
