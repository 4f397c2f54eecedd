package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/infrastructure/logger"
)

// OverviewHandler serves the read-only views built across collections
type OverviewHandler struct {
	dashboard *services.DashboardService
	calendar  *services.CalendarService
	reports   *services.ReportService
	logger    *logger.Logger
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(dashboard *services.DashboardService, calendar *services.CalendarService, reports *services.ReportService, logger *logger.Logger) *OverviewHandler {
	return &OverviewHandler{
		dashboard: dashboard,
		calendar:  calendar,
		reports:   reports,
		logger:    logger,
	}
}

// GetDashboard godoc
// @Summary Team dashboard
// @Description Member queues, this week's deadlines, alerts and the current quarter's KPIs
// @Tags overview
// @Produce json
// @Success 200 {object} services.Dashboard
// @Router /dashboard [get]
func (h *OverviewHandler) GetDashboard(c echo.Context) error {
	d, err := h.dashboard.Overview(c.Request().Context())
	if err != nil {
		return fail(h.logger, "Build dashboard failed", err)
	}

	return c.JSON(http.StatusOK, d)
}

// GetCalendar godoc
// @Summary Month calendar with tasks per day
// @Tags overview
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Param month query int false "Month 1-12, defaults to the current one"
// @Success 200 {object} services.CalendarMonth
// @Failure 400 {object} ErrorResponse
// @Router /calendar [get]
func (h *OverviewHandler) GetCalendar(c echo.Context) error {
	year, err := optionalInt(c, "year")
	if err != nil {
		return err
	}
	month, err := optionalInt(c, "month")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var m *services.CalendarMonth
	if year == nil && month == nil {
		m, err = h.calendar.CurrentMonth(ctx)
	} else {
		current, cerr := h.calendar.CurrentMonth(ctx)
		if cerr != nil {
			return fail(h.logger, "Build calendar failed", cerr)
		}
		y, mo := current.Year, current.Month
		if year != nil {
			y = *year
		}
		if month != nil {
			mo = *month
		}
		m, err = h.calendar.Month(ctx, y, mo)
	}
	if err != nil {
		return fail(h.logger, "Build calendar failed", err)
	}

	return c.JSON(http.StatusOK, m)
}

// GetCalendarDay godoc
// @Summary Tasks due on one day
// @Tags overview
// @Produce json
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} services.CalendarDay
// @Failure 400 {object} ErrorResponse
// @Router /calendar/{date} [get]
func (h *OverviewHandler) GetCalendarDay(c echo.Context) error {
	day, err := h.calendar.Day(c.Request().Context(), c.Param("date"))
	if err != nil {
		return fail(h.logger, "Build calendar day failed", err, "date", c.Param("date"))
	}

	return c.JSON(http.StatusOK, day)
}

func reportKind(c echo.Context) period.Kind {
	if v := c.QueryParam("period"); v != "" {
		return period.Kind(v)
	}
	return period.Weekly
}

// GetReport godoc
// @Summary Weekly or monthly report
// @Tags overview
// @Produce json
// @Param period query string false "weekly (default) or monthly"
// @Success 200 {object} report.Report
// @Failure 400 {object} ErrorResponse
// @Router /reports [get]
func (h *OverviewHandler) GetReport(c echo.Context) error {
	r, err := h.reports.Build(c.Request().Context(), reportKind(c))
	if err != nil {
		return fail(h.logger, "Build report failed", err)
	}

	return c.JSON(http.StatusOK, r)
}

// GetReportText godoc
// @Summary Report as copyable plain text
// @Tags overview
// @Produce plain
// @Param period query string false "weekly (default) or monthly"
// @Success 200 {string} string
// @Router /reports/text [get]
func (h *OverviewHandler) GetReportText(c echo.Context) error {
	text, err := h.reports.Text(c.Request().Context(), reportKind(c))
	if err != nil {
		return fail(h.logger, "Render report failed", err)
	}

	return c.String(http.StatusOK, text)
}
