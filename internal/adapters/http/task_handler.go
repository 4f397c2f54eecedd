package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	session     *services.SessionService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, session *services.SessionService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		session:     session,
		logger:      logger,
	}
}

// ListTasks godoc
// @Summary List tasks
// @Description List tasks newest first with optional filters
// @Tags tasks
// @Produce json
// @Param assignee query string false "Assignee name"
// @Param status query string false "todo, in_progress or done"
// @Param category query string false "Task category"
// @Param month query string false "Due month as YYYY-MM"
// @Param from query string false "Due on or after YYYY-MM-DD"
// @Param to query string false "Due on or before YYYY-MM-DD"
// @Success 200 {object} ports.ListResponse[entities.Task]
// @Failure 400 {object} ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := ports.TaskFilter{
		Assignee: optionalString(c, "assignee"),
		Month:    optionalString(c, "month"),
		From:     optionalString(c, "from"),
		To:       optionalString(c, "to"),
	}
	if v := c.QueryParam("status"); v != "" {
		status := entities.TaskStatus(v)
		filter.Status = &status
	}
	if v := c.QueryParam("category"); v != "" {
		category := entities.Category(v)
		filter.Category = &category
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return fail(h.logger, "List tasks failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(tasks))
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), author, req)
	if err != nil {
		return fail(h.logger, "Create task failed", err, "member", author)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "Get task failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update task fields
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), author, c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Update task failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus godoc
// @Summary Change task status
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} entities.Task
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	var req ports.UpdateTaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), author, c.Param("id"), req.Status)
	if err != nil {
		return fail(h.logger, "Update task status failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} MessageResponse
// @Failure 428 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return fail(h.logger, "Delete task failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// AttachFile godoc
// @Summary Attach a file to a task
// @Tags tasks
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Task ID"
// @Param file formData file true "File"
// @Success 200 {object} entities.Task
// @Router /tasks/{id}/files [post]
func (h *TaskHandler) AttachFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer src.Close()

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	task, err := h.taskService.AttachFile(c.Request().Context(), author, c.Param("id"), fh.Filename, src)
	if err != nil {
		return fail(h.logger, "Attach file failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, task)
}

// ListComments godoc
// @Summary List task comments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} ports.ListResponse[entities.Comment]
// @Router /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c echo.Context) error {
	comments, err := h.taskService.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "List comments failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(comments))
}

// AddComment godoc
// @Summary Comment on a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.AddCommentRequest true "Comment"
// @Success 201 {object} entities.Comment
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c echo.Context) error {
	var req ports.AddCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	author, err := requester(c, h.session)
	if err != nil {
		return fail(h.logger, "Resolve member failed", err)
	}

	comment, err := h.taskService.AddComment(c.Request().Context(), author, c.Param("id"), req)
	if err != nil {
		return fail(h.logger, "Add comment failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListActivity godoc
// @Summary Task activity log
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} ports.ListResponse[entities.ActivityLog]
// @Router /tasks/{id}/activity [get]
func (h *TaskHandler) ListActivity(c echo.Context) error {
	logs, err := h.taskService.ListActivity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(h.logger, "List activity failed", err, "task_id", c.Param("id"))
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(logs))
}

// GetDeadlines godoc
// @Summary Upcoming deadlines
// @Description Open tasks due today or within three days
// @Tags tasks
// @Produce json
// @Success 200 {object} ports.ListResponse[aggregate.Deadline]
// @Router /tasks/deadlines [get]
func (h *TaskHandler) GetDeadlines(c echo.Context) error {
	deadlines, err := h.taskService.UpcomingDeadlines(c.Request().Context())
	if err != nil {
		return fail(h.logger, "Get deadlines failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(deadlines))
}

// GetOverdue godoc
// @Summary Overdue tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} ports.ListResponse[entities.Task]
// @Router /tasks/overdue [get]
func (h *TaskHandler) GetOverdue(c echo.Context) error {
	tasks, err := h.taskService.OverdueTasks(c.Request().Context())
	if err != nil {
		return fail(h.logger, "Get overdue tasks failed", err)
	}

	return c.JSON(http.StatusOK, ports.NewListResponse(tasks))
}
