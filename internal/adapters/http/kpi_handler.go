package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// KPIHandler handles quarterly KPIs and the reels engagement log
type KPIHandler struct {
	kpiService  *services.KPIService
	reelService *services.ReelService
	logger      *logger.Logger
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(kpiService *services.KPIService, reelService *services.ReelService, logger *logger.Logger) *KPIHandler {
	return &KPIHandler{
		kpiService:  kpiService,
		reelService: reelService,
		logger:      logger,
	}
}

func kpiFilter(c echo.Context) (ports.KPIFilter, error) {
	year, err := optionalInt(c, "year")
	if err != nil {
		return ports.KPIFilter{}, err
	}
	filter := ports.KPIFilter{Year: year, Assignee: optionalString(c, "assignee")}
	if v := c.QueryParam("quarter"); v != "" {
		q := entities.Quarter(v)
		filter.Quarter = &q
	}
	return filter, nil
}

// ListKPIs godoc
// @Summary List KPIs
// @Tags kpis
// @Produce json
// @Param year query int false "Year"
// @Param quarter query string false "Q1 to Q4"
// @Param assignee query string false "Assignee"
// @Success 200 {object} ports.ListResponse[entities.KPI]
// @Router /kpis [get]
func (h *KPIHandler) ListKPIs(c echo.Context) error {
	filter, err := kpiFilter(c)
	if err != nil {
		return err
	}

	kpis, err := h.kpiService.ListKPIs(c.Request().Context(), filter)
	if err != nil {
		return fail(h.logger, "List KPIs failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(kpis))
}

// GetKPISummary godoc
// @Summary Average progress of the matching KPIs
// @Tags kpis
// @Produce json
// @Param year query int false "Year"
// @Param quarter query string false "Q1 to Q4"
// @Success 200 {object} aggregate.KPISummary
// @Router /kpis/summary [get]
func (h *KPIHandler) GetKPISummary(c echo.Context) error {
	filter, err := kpiFilter(c)
	if err != nil {
		return err
	}

	summary, err := h.kpiService.Summary(c.Request().Context(), filter)
	if err != nil {
		return fail(h.logger, "KPI summary failed", err)
	}

	return c.JSON(http.StatusOK, summary)
}

// CreateKPI godoc
// @Summary Create a KPI
// @Tags kpis
// @Accept json
// @Produce json
// @Param request body ports.CreateKPIRequest true "KPI"
// @Success 201 {object} entities.KPI
// @Router /kpis [post]
func (h *KPIHandler) CreateKPI(c echo.Context) error {
	var req ports.CreateKPIRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	kpi, err := h.kpiService.CreateKPI(c.Request().Context(), req)
	if err != nil {
		return fail(h.logger, "Create KPI failed", err)
	}

	return c.JSON(http.StatusCreated, kpi)
}

// GetKPI godoc
// @Summary Get KPI by ID
// @Tags kpis
// @Produce json
// @Param id path string true "KPI ID"
// @Success 200 {object} entities.KPI
// @Failure 404 {object} ErrorResponse
// @Router /kpis/{id} [get]
func (h *KPIHandler) GetKPI(c echo.Context) error {
	kpi, err := h.kpiService.GetKPI(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get KPI failed", err, "kpi_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, kpi)
}

// UpdateKPI godoc
// @Summary Update KPI fields
// @Tags kpis
// @Accept json
// @Produce json
// @Param id path string true "KPI ID"
// @Param request body ports.UpdateKPIRequest true "Fields to change"
// @Success 200 {object} entities.KPI
// @Router /kpis/{id} [put]
func (h *KPIHandler) UpdateKPI(c echo.Context) error {
	var req ports.UpdateKPIRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	kpi, err := h.kpiService.UpdateKPI(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update KPI failed", err, "kpi_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, kpi)
}

// DeleteKPI godoc
// @Summary Delete a KPI
// @Tags kpis
// @Param id path string true "KPI ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Router /kpis/{id} [delete]
func (h *KPIHandler) DeleteKPI(c echo.Context) error {
	if err := h.kpiService.DeleteKPI(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete KPI failed", err, "kpi_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "KPI deleted successfully"})
}

func reelFilter(c echo.Context) ports.ReelFilter {
	return ports.ReelFilter{From: optionalString(c, "from"), To: optionalString(c, "to")}
}

// ListReels godoc
// @Summary List reels, newest post first
// @Tags reels
// @Produce json
// @Param from query string false "Posted on or after YYYY-MM-DD"
// @Param to query string false "Posted on or before YYYY-MM-DD"
// @Success 200 {object} ports.ListResponse[entities.InstagramReel]
// @Router /reels [get]
func (h *KPIHandler) ListReels(c echo.Context) error {
	reels, err := h.reelService.ListReels(c.Request().Context(), reelFilter(c))
	if err != nil {
		return fail(h.logger, "List reels failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(reels))
}

// GetReelSummary godoc
// @Summary Engagement totals and chart series
// @Tags reels
// @Produce json
// @Success 200 {object} services.ReelSummary
// @Router /reels/summary [get]
func (h *KPIHandler) GetReelSummary(c echo.Context) error {
	summary, err := h.reelService.Summary(c.Request().Context(), reelFilter(c))
	if err != nil {
		return fail(h.logger, "Reel summary failed", err)
	}

	return c.JSON(http.StatusOK, summary)
}

// CreateReel godoc
// @Summary Record a reel
// @Tags reels
// @Accept json
// @Produce json
// @Param request body ports.CreateReelRequest true "Reel"
// @Success 201 {object} entities.InstagramReel
// @Router /reels [post]
func (h *KPIHandler) CreateReel(c echo.Context) error {
	var req ports.CreateReelRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reel, err := h.reelService.CreateReel(c.Request().Context(), req)
	if err != nil {
		return fail(h.logger, "Create reel failed", err)
	}

	return c.JSON(http.StatusCreated, reel)
}

// GetReel godoc
// @Summary Get reel by ID
// @Tags reels
// @Produce json
// @Param id path string true "Reel ID"
// @Success 200 {object} entities.InstagramReel
// @Router /reels/{id} [get]
func (h *KPIHandler) GetReel(c echo.Context) error {
	reel, err := h.reelService.GetReel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get reel failed", err, "reel_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, reel)
}

// UpdateReel godoc
// @Summary Update reel counters
// @Tags reels
// @Accept json
// @Produce json
// @Param id path string true "Reel ID"
// @Param request body ports.UpdateReelRequest true "Fields to change"
// @Success 200 {object} entities.InstagramReel
// @Router /reels/{id} [put]
func (h *KPIHandler) UpdateReel(c echo.Context) error {
	var req ports.UpdateReelRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reel, err := h.reelService.UpdateReel(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update reel failed", err, "reel_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, reel)
}

// DeleteReel godoc
// @Summary Delete a reel
// @Tags reels
// @Param id path string true "Reel ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Router /reels/{id} [delete]
func (h *KPIHandler) DeleteReel(c echo.Context) error {
	if err := h.reelService.DeleteReel(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete reel failed", err, "reel_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Reel deleted successfully"})
}
