package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/teamboard/core/internal/adapters/storage"
	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// Activity actions recorded against a task
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
	ActionFileAttached  = "file_attached"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo     ports.Repository[entities.Task]
	commentRepo  ports.Repository[entities.Comment]
	activityRepo ports.Repository[entities.ActivityLog]
	files        ports.ObjectStore
	clock        TeamClock
	logger       *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo ports.Repository[entities.Task],
	commentRepo ports.Repository[entities.Comment],
	activityRepo ports.Repository[entities.ActivityLog],
	files ports.ObjectStore,
	clock TeamClock,
	logger *logger.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		files:        files,
		clock:        clock,
		logger:       logger,
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, author string, req ports.CreateTaskRequest) (*entities.Task, error) {
	if req.Priority == "" {
		req.Priority = entities.PriorityNormal
	}
	if req.Status == "" {
		req.Status = entities.TaskStatusTodo
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := checkRecurrence(req.IsRecurring, req.RecurringType); err != nil {
		return nil, err
	}

	task := &entities.Task{
		Title:         req.Title,
		Description:   req.Description,
		Assignee:      req.Assignee,
		Category:      req.Category,
		Priority:      req.Priority,
		Status:        req.Status,
		DueDate:       req.DueDate,
		IsRecurring:   req.IsRecurring,
		RecurringType: req.RecurringType,
		RecurringDay:  req.RecurringDay,
		Files:         []entities.Attachment{},
	}

	createdTask, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recordActivity(ctx, createdTask.ID, author, ActionCreated, createdTask.Title)
	s.logger.Infow("Task created successfully", "task_id", createdTask.ID, "title", createdTask.Title)

	return createdTask, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	task, err := s.taskRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	return task, nil
}

// ListTasks retrieves tasks newest first. The assignee is pushed down to the store; the
// remaining criteria are applied in memory.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]entities.Task, error) {
	q := ports.Query{}.Desc(ports.FieldCreatedAt)
	if filter.Assignee != nil {
		q = q.Where("assignee", ports.OpEq, *filter.Assignee)
	}

	tasks, err := s.taskRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var preds []filters.Predicate[entities.Task]
	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		preds = append(preds, filters.ByStatus(*filter.Status))
	}
	if filter.Category != nil {
		if !filter.Category.IsValid() {
			return nil, entities.ErrInvalidCategory
		}
		preds = append(preds, filters.ByCategory(*filter.Category))
	}
	if filter.Month != nil {
		preds = append(preds, filters.DueInMonth(*filter.Month))
	}
	if filter.From != nil {
		from := *filter.From
		preds = append(preds, func(t entities.Task) bool { return t.DueDate >= from })
	}
	if filter.To != nil {
		to := *filter.To
		preds = append(preds, func(t entities.Task) bool { return t.DueDate <= to })
	}
	if filter.OverdueAsOf != nil {
		preds = append(preds, filters.Overdue(*filter.OverdueAsOf))
	}

	return filters.Apply(tasks, preds...), nil
}

// UpdateTask applies the provided fields only
func (s *TaskService) UpdateTask(ctx context.Context, author, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existingTask, err := s.taskRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	patch := ports.Document{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Assignee != nil {
		patch["assignee"] = *req.Assignee
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Priority != nil {
		patch["priority"] = *req.Priority
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.DueDate != nil {
		patch["dueDate"] = *req.DueDate
	}
	if req.IsRecurring != nil {
		patch["isRecurring"] = *req.IsRecurring
	}
	if req.RecurringType != nil {
		patch["recurringType"] = *req.RecurringType
	}
	if req.RecurringDay != nil {
		patch["recurringDay"] = *req.RecurringDay
	}
	if len(patch) == 0 {
		return existingTask, nil
	}

	recurring := existingTask.IsRecurring
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}
	recurringType := existingTask.RecurringType
	if req.RecurringType != nil {
		recurringType = req.RecurringType
	}
	if err := checkRecurrence(recurring, recurringType); err != nil {
		return nil, err
	}

	updatedTask, err := s.taskRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.recordActivity(ctx, id, author, ActionUpdated, strings.Join(sortedKeys(patch), ", "))
	s.logger.Infow("Task updated successfully", "task_id", updatedTask.ID, "title", updatedTask.Title)

	return updatedTask, nil
}

// UpdateTaskStatus updates a task's status
func (s *TaskService) UpdateTaskStatus(ctx context.Context, author, id string, status entities.TaskStatus) (*entities.Task, error) {
	if !status.IsValid() {
		return nil, entities.ErrInvalidStatus
	}

	existingTask, err := s.taskRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if existingTask.Status == status {
		return existingTask, nil
	}

	task, err := s.taskRepo.Update(ctx, id, ports.Document{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.recordActivity(ctx, id, author, ActionStatusChanged, fmt.Sprintf("%s -> %s", existingTask.Status, status))
	s.logger.Infow("Task status updated successfully", "task_id", id, "status", status)

	return task, nil
}

// DeleteTask deletes a task. Its comments and activity stay in their collections.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Infow("Task deleted successfully", "task_id", id)

	return nil
}

// AttachFile uploads r and appends it to the task's files
func (s *TaskService) AttachFile(ctx context.Context, author, id, name string, r io.Reader) (*entities.Task, error) {
	task, err := s.taskRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	name = storage.SafeName(name)

	url, err := s.files.Upload(ctx, r, objectPath("tasks/"+id, name, s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	files := append(append([]entities.Attachment{}, task.Files...), entities.Attachment{Name: name, URL: url})
	updatedTask, err := s.taskRepo.Update(ctx, id, ports.Document{"files": files})
	if err != nil {
		return nil, fmt.Errorf("failed to attach file: %w", err)
	}

	s.recordActivity(ctx, id, author, ActionFileAttached, name)
	s.logger.Infow("File attached to task", "task_id", id, "file", name)

	return updatedTask, nil
}

// ListComments returns a task's comments oldest first
func (s *TaskService) ListComments(ctx context.Context, taskID string) ([]entities.Comment, error) {
	comments, err := s.commentRepo.List(ctx, ports.Query{}.
		Where("taskId", ports.OpEq, taskID).
		Asc(ports.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment adds a comment by author to an existing task
func (s *TaskService) AddComment(ctx context.Context, author, taskID string, req ports.AddCommentRequest) (*entities.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.taskRepo.Get(ctx, taskID); err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	comment, err := s.commentRepo.Create(ctx, &entities.Comment{TaskID: taskID, Author: author, Content: req.Content})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Infow("Comment added", "task_id", taskID, "comment_id", comment.ID)

	return comment, nil
}

// ListActivity returns the task's activity log newest first
func (s *TaskService) ListActivity(ctx context.Context, taskID string) ([]entities.ActivityLog, error) {
	logs, err := s.activityRepo.List(ctx, ports.Query{}.
		Where("taskId", ports.OpEq, taskID).
		Desc(ports.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return logs, nil
}

// UpcomingDeadlines lists open tasks due within the alert window
func (s *TaskService) UpcomingDeadlines(ctx context.Context) ([]aggregate.Deadline, error) {
	tasks, err := s.ListTasks(ctx, ports.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.UpcomingDeadlines(tasks, s.clock.Now()), nil
}

// OverdueTasks lists open tasks whose due date has passed
func (s *TaskService) OverdueTasks(ctx context.Context) ([]entities.Task, error) {
	today := s.clock.TodayString()
	return s.ListTasks(ctx, ports.TaskFilter{OverdueAsOf: &today})
}

// recordActivity is best effort; a failed log entry never fails the action.
func (s *TaskService) recordActivity(ctx context.Context, taskID, author, action, details string) {
	_, err := s.activityRepo.Create(ctx, &entities.ActivityLog{
		TaskID:  taskID,
		Author:  author,
		Action:  action,
		Details: details,
	})
	if err != nil {
		s.logger.WithMember(author).WithError(err).Warnw("Failed to record activity", "task_id", taskID, "action", action)
	}
}

func checkRecurrence(recurring bool, recurringType *entities.RecurringType) error {
	if recurringType != nil && !recurringType.IsValid() {
		return fmt.Errorf("%w: recurring type %q", entities.ErrValidation, *recurringType)
	}
	if recurring && recurringType == nil {
		return fmt.Errorf("%w: recurring tasks need a recurring type", entities.ErrValidation)
	}
	return nil
}
