package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// MeetingHandler handles meeting minutes and weekly agendas
type MeetingHandler struct {
	meetingService *services.MeetingService
	session        *services.SessionService
	logger         *logger.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *services.MeetingService, session *services.SessionService, logger *logger.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
		session:        session,
		logger:         logger,
	}
}

// ListMinutes godoc
// @Summary List meeting minutes
// @Tags meetings
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.MeetingMinutes]
// @Router /meetings/minutes [get]
func (h *MeetingHandler) ListMinutes(c echo.Context) error {
	minutes, err := h.meetingService.ListMinutes(c.Request().Context())
	if err != nil {
		return fail(h.logger, "List minutes failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(minutes))
}

// CreateMinutes godoc
// @Summary Record meeting minutes
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body ports.CreateMinutesRequest true "Minutes"
// @Success 201 {object} entities.MeetingMinutes
// @Router /meetings/minutes [post]
func (h *MeetingHandler) CreateMinutes(c echo.Context) error {
	var req ports.CreateMinutesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	minutes, err := h.meetingService.CreateMinutes(c.Request().Context(), author, req)
	if err != nil {
		return fail(h.logger, "Create minutes failed", err)
	}

	return c.JSON(http.StatusCreated, minutes)
}

// GetMinutes godoc
// @Summary Get minutes by ID
// @Tags meetings
// @Produce json
// @Param id path string true "Minutes ID"
// @Success 200 {object} entities.MeetingMinutes
// @Router /meetings/minutes/{id} [get]
func (h *MeetingHandler) GetMinutes(c echo.Context) error {
	minutes, err := h.meetingService.GetMinutes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get minutes failed", err, "minutes_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, minutes)
}

// UpdateMinutes godoc
// @Summary Update meeting minutes
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Minutes ID"
// @Param request body ports.UpdateMinutesRequest true "Fields to change"
// @Success 200 {object} entities.MeetingMinutes
// @Router /meetings/minutes/{id} [put]
func (h *MeetingHandler) UpdateMinutes(c echo.Context) error {
	var req ports.UpdateMinutesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	minutes, err := h.meetingService.UpdateMinutes(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update minutes failed", err, "minutes_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, minutes)
}

// DeleteMinutes godoc
// @Summary Delete meeting minutes
// @Tags meetings
// @Param id path string true "Minutes ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Router /meetings/minutes/{id} [delete]
func (h *MeetingHandler) DeleteMinutes(c echo.Context) error {
	if err := h.meetingService.DeleteMinutes(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete minutes failed", err, "minutes_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Minutes deleted successfully"})
}

// ListAgendas godoc
// @Summary List meeting agendas, latest week first
// @Tags meetings
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.MeetingAgenda]
// @Router /meetings/agendas [get]
func (h *MeetingHandler) ListAgendas(c echo.Context) error {
	agendas, err := h.meetingService.ListAgendas(c.Request().Context())
	if err != nil {
		return fail(h.logger, "List agendas failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(agendas))
}

// GetCurrentAgenda godoc
// @Summary This week's meeting and its agenda
// @Tags meetings
// @Produce json
// @Success 200 {object} ports.CurrentAgendaResponse
// @Router /meetings/agendas/current [get]
func (h *MeetingHandler) GetCurrentAgenda(c echo.Context) error {
	resp, err := h.meetingService.CurrentAgenda(c.Request().Context())
	if err != nil {
		return fail(h.logger, "Get current agenda failed", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateAgenda godoc
// @Summary Create a meeting agenda
// @Tags meetings
// @Accept json
// @Produce json
// @Param request body ports.CreateAgendaRequest true "Agenda"
// @Success 201 {object} entities.MeetingAgenda
// @Failure 400 {object} ErrorResponse
// @Router /meetings/agendas [post]
func (h *MeetingHandler) CreateAgenda(c echo.Context) error {
	var req ports.CreateAgendaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	agenda, err := h.meetingService.CreateAgenda(c.Request().Context(), author, req)
	if err != nil {
		return fail(h.logger, "Create agenda failed", err)
	}

	return c.JSON(http.StatusCreated, agenda)
}

// GetAgenda godoc
// @Summary Get agenda by ID
// @Tags meetings
// @Produce json
// @Param id path string true "Agenda ID"
// @Success 200 {object} entities.MeetingAgenda
// @Router /meetings/agendas/{id} [get]
func (h *MeetingHandler) GetAgenda(c echo.Context) error {
	agenda, err := h.meetingService.GetAgenda(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get agenda failed", err, "agenda_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, agenda)
}

// UpdateAgenda godoc
// @Summary Update a meeting agenda
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Agenda ID"
// @Param request body ports.UpdateAgendaRequest true "Fields to change"
// @Success 200 {object} entities.MeetingAgenda
// @Router /meetings/agendas/{id} [put]
func (h *MeetingHandler) UpdateAgenda(c echo.Context) error {
	var req ports.UpdateAgendaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	agenda, err := h.meetingService.UpdateAgenda(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update agenda failed", err, "agenda_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, agenda)
}

// DeleteAgenda godoc
// @Summary Delete a meeting agenda
// @Tags meetings
// @Param id path string true "Agenda ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Router /meetings/agendas/{id} [delete]
func (h *MeetingHandler) DeleteAgenda(c echo.Context) error {
	if err := h.meetingService.DeleteAgenda(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete agenda failed", err, "agenda_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Agenda deleted successfully"})
}
