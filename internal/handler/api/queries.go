package api

import (
	"github.com/labstack/echo/v4"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/usecase"
	xhttp "CoinPulse/pkg/http"
)

// QueryHandler exposes the logical queries over HTTP. Every route answers
// 200 with a possibly degraded payload; only an invalid request or an
// unresolvable symbol produces a client-facing error.
type QueryHandler struct {
	agg *usecase.Aggregator
}

func NewQueryHandler(agg *usecase.Aggregator) *QueryHandler {
	return &QueryHandler{agg: agg}
}

func (h *QueryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/macro", h.Macro)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/tokens/:id", h.Token)
	g.GET("/tvl", h.TVL)
	g.GET("/whales", h.Whales)
	g.GET("/whales/totals", h.WhaleTotals)
	g.GET("/unlocks", h.Unlocks)
	g.GET("/news", h.News)
	g.GET("/launchpad", h.Launchpad)
	g.GET("/filings", h.Filings)
	g.GET("/resolve", h.Resolve)
}

func (h *QueryHandler) Macro(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.Macro(c.Request().Context()))
}

func (h *QueryHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.Sentiment(c.Request().Context(), req.Symbol))
}

func (h *QueryHandler) Token(c echo.Context) error {
	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.Token(c.Request().Context(), req.ID, req.Score))
}

func (h *QueryHandler) TVL(c echo.Context) error {
	req := &models.TVLRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.TVL(c.Request().Context(), req.Protocol))
}

func (h *QueryHandler) Whales(c echo.Context) error {
	req := &models.WhalesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.Whales(c.Request().Context(), req.Chain))
}

func (h *QueryHandler) WhaleTotals(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.WhaleTotals(c.Request().Context()))
}

func (h *QueryHandler) Unlocks(c echo.Context) error {
	req := &models.UnlocksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.UnlockSchedule(c.Request().Context(), req.Symbol))
}

func (h *QueryHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.News(c.Request().Context(), req.Query))
}

func (h *QueryHandler) Launchpad(c echo.Context) error {
	req := &models.LaunchpadRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.agg.Launchpad(c.Request().Context(), req.Platform, req.Age))
}

func (h *QueryHandler) Filings(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.Filings(c.Request().Context()))
}

func (h *QueryHandler) Resolve(c echo.Context) error {
	req := &models.ResolveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resolution := h.agg.Resolve(c.Request().Context(), req.Symbol)
	if !resolution.Found && !resolution.Degraded {
		// Only a completed lookup is a terminal not-found; an unanswered
		// one degrades like any other provider failure.
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s is not listed", resolution.Symbol))
	}
	return xhttp.SuccessResponse(c, resolution)
}
