package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/export"
	"github.com/iliyamo/speaker-booking-desk/internal/service"
)

// AnalyticsHandler serves the admin dashboard: assistant, stats, charts and
// export.
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

type askReq struct {
	Question string `json:"question"`
}

// Questions handles GET /v1/admin/assistant/questions.
func (h *AnalyticsHandler) Questions(c echo.Context) error {
	qs, err := h.svc.Questions(principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"questions": qs})
}

// Ask handles POST /v1/admin/assistant/ask.
func (h *AnalyticsHandler) Ask(c echo.Context) error {
	var req askReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	reply, err := h.svc.Ask(ctx, principal(c), req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}

// Stats handles GET /v1/admin/stats.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.svc.Stats(ctx, principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// TimeSeries handles GET /v1/admin/charts/timeseries.
func (h *AnalyticsHandler) TimeSeries(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	ts, err := h.svc.Series(ctx, principal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// Export handles GET /v1/admin/bookings/export?status= and returns a CSV
// attachment.
func (h *AnalyticsHandler) Export(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var buf bytes.Buffer
	if err := h.svc.ExportCSV(ctx, principal(c), c.QueryParam("status"), &buf); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
