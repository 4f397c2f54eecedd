package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// IdeaHandler handles the idea board
type IdeaHandler struct {
	ideaService *services.IdeaService
	session     *services.SessionService
	logger      *logger.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaService *services.IdeaService, session *services.SessionService, logger *logger.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
		session:     session,
		logger:      logger,
	}
}

// ListIdeas godoc
// @Summary List ideas
// @Tags ideas
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.Idea]
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(c echo.Context) error {
	ideas, err := h.ideaService.ListIdeas(c.Request().Context())
	if err != nil {
		return fail(h.logger, "List ideas failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(ideas))
}

// CreateIdea godoc
// @Summary Post an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body ports.CreateIdeaRequest true "Idea"
// @Success 201 {object} entities.Idea
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	var req ports.CreateIdeaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	idea, err := h.ideaService.CreateIdea(c.Request().Context(), author, req)
	if err != nil {
		return fail(h.logger, "Create idea failed", err)
	}

	return c.JSON(http.StatusCreated, idea)
}

// GetIdea godoc
// @Summary Get idea by ID
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} entities.Idea
// @Router /ideas/{id} [get]
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	idea, err := h.ideaService.GetIdea(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get idea failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, idea)
}

// UpdateIdea godoc
// @Summary Update an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea ID"
// @Param request body ports.UpdateIdeaRequest true "Fields to change"
// @Success 200 {object} entities.Idea
// @Router /ideas/{id} [put]
func (h *IdeaHandler) UpdateIdea(c echo.Context) error {
	var req ports.UpdateIdeaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	idea, err := h.ideaService.UpdateIdea(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update idea failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, idea)
}

// DeleteIdea godoc
// @Summary Delete an idea
// @Tags ideas
// @Param id path string true "Idea ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(c echo.Context) error {
	if err := h.ideaService.DeleteIdea(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete idea failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Idea deleted successfully"})
}

// UploadImage godoc
// @Summary Attach an image to an idea
// @Tags ideas
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Idea ID"
// @Param file formData file true "Image"
// @Success 200 {object} entities.Idea
// @Router /ideas/{id}/image [post]
func (h *IdeaHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer src.Close()

	idea, err := h.ideaService.UploadImage(c.Request().Context(), c.Param("id"), fh.Filename, src)
	if err != nil {
		return fail(h.logger, "Upload image failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, idea)
}

// ListComments godoc
// @Summary List idea comments
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} ports.ListResponse[entities.IdeaComment]
// @Router /ideas/{id}/comments [get]
func (h *IdeaHandler) ListComments(c echo.Context) error {
	comments, err := h.ideaService.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "List idea comments failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(comments))
}

// AddComment godoc
// @Summary Comment on an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea ID"
// @Param request body ports.AddCommentRequest true "Comment"
// @Success 201 {object} entities.IdeaComment
// @Router /ideas/{id}/comments [post]
func (h *IdeaHandler) AddComment(c echo.Context) error {
	var req ports.AddCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	comment, err := h.ideaService.AddComment(c.Request().Context(), author, c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Add idea comment failed", err, "idea_id", c.Param("id"))
	}

	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete your own comment
// @Tags ideas
// @Param id path string true "Idea ID"
// @Param commentId path string true "Comment ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Router /ideas/{id}/comments/{commentId} [delete]
func (h *IdeaHandler) DeleteComment(c echo.Context) error {
	member, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	if err := h.ideaService.DeleteComment(c.Request().Context(), member, c.Param("id"), c.Param("commentId")); err != nil {
		return fail(h.logger, "Delete idea comment failed", err, "comment_id", c.Param("commentId"), "member", member)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}
