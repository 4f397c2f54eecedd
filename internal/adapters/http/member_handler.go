package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// MemberHandler handles the team roster and the per-client current member
type MemberHandler struct {
	memberService *services.MemberService
	session       *services.SessionService
	logger        *logger.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, session *services.SessionService, logger *logger.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		session:       session,
		logger:        logger,
	}
}

// ListMembers godoc
// @Summary List team members
// @Tags members
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.Member]
// @Router /members [get]
func (h *MemberHandler) ListMembers(c echo.Context) error {
	members, err := h.memberService.ListMembers(c.Request().Context())
	if err != nil {
		return fail(h.logger, "List members failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(members))
}

// CreateMember godoc
// @Summary Add a team member
// @Tags members
// @Accept json
// @Produce json
// @Param request body ports.CreateMemberRequest true "Member"
// @Success 201 {object} entities.Member
// @Failure 400 {object} ErrorResponse
// @Router /members [post]
func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req ports.CreateMemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	member, err := h.memberService.CreateMember(c.Request().Context(), req)
	if err != nil {
		return fail(h.logger, "Create member failed", err, "name", req.Name)
	}

	return c.JSON(http.StatusCreated, member)
}

// DeleteMember godoc
// @Summary Remove a team member
// @Tags members
// @Param id path string true "Member ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 428 {object} ErrorResponse
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	if err := h.memberService.DeleteMember(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete member failed", err, "member_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Member deleted successfully"})
}

// GetCurrentMember godoc
// @Summary Current member for this client
// @Tags session
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Success 200 {object} ports.CurrentMemberResponse
// @Router /session/member [get]
func (h *MemberHandler) GetCurrentMember(c echo.Context) error {
	resp, err := h.session.Describe(c.Request().Context(), ClientID(c))
	if err != nil {
		return fail(h.logger, "Get current member failed", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// SetCurrentMember godoc
// @Summary Choose the member this client acts as
// @Tags session
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client identifier"
// @Param request body ports.SetCurrentMemberRequest true "Member name"
// @Success 200 {object} ports.CurrentMemberResponse
// @Failure 400 {object} ErrorResponse
// @Router /session/member [put]
func (h *MemberHandler) SetCurrentMember(c echo.Context) error {
	var req ports.SetCurrentMemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	clientID := ClientID(c)
	if err := h.session.SetCurrentMember(ctx, clientID, req.Name); err != nil {
		return fail(h.logger, "Set current member failed", err, "client_id", clientID)
	}

	resp, err := h.session.Describe(ctx, clientID)
	if err != nil {
		return fail(h.logger, "Get current member failed", err)
	}

	return c.JSON(http.StatusOK, resp)
}
