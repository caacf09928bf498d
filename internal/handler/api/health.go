package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	xlogger "CoinPulse/pkg/logger"
)

// HealthHandler serves liveness plus a view of recent provider failures so
// an operator can see which upstreams are currently soft-failing.
type HealthHandler struct {
	collector *xlogger.FailureCollector
}

func NewHealthHandler(collector *xlogger.FailureCollector) *HealthHandler {
	return &HealthHandler{collector: collector}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
}

type healthResponse struct {
	Status         string                 `json:"status"`
	RecentFailures []xlogger.FailureEntry `json:"recentFailures,omitempty"`
	FailureCount   int                    `json:"failureCount"`
}

func (h *HealthHandler) Healthz(c echo.Context) error {
	resp := healthResponse{Status: "ok"}
	if h.collector != nil {
		resp.RecentFailures = h.collector.Snapshot()
		resp.FailureCount = len(resp.RecentFailures)
	}
	return c.JSON(http.StatusOK, resp)
}
