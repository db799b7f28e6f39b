package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/core/ports"
)

// ReportHandler serves dashboard summaries and the notification outbox.
type ReportHandler struct {
	reports       ports.ReportService
	notifications ports.NotificationService
}

func NewReportHandler(reports ports.ReportService, notifications ports.NotificationService) *ReportHandler {
	return &ReportHandler{reports: reports, notifications: notifications}
}

// Summary handles GET /v1/reports/summary.
//
// @Summary      Dashboard summary
// @Description  Counts, revenue and per-client rollups over the actor's visible data.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  aggregate.Summary
// @Router       /v1/reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	summary, err := h.reports.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Notifications handles GET /v1/notifications.
//
// @Summary      Recently delivered notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50, max 500)"
// @Success      200    {array}   domain.Notification
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/notifications [get]
func (h *ReportHandler) Notifications(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	items, err := h.notifications.RecentNotifications(c.Request().Context(), actor, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
