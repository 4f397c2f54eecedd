package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

func newTask(title, assignee, due string) ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:    title,
		Assignee: assignee,
		Category: entities.CategoryInstagram,
		DueDate:  due,
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("post reel", "kim", "2026-10-20"))
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, entities.PriorityNormal, task.Priority)
	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.NotNil(t, task.Files)
	assert.Empty(t, task.Files)

	logs, err := env.tasks.ListActivity(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionCreated, logs[0].Action)
	assert.Equal(t, "kim", logs[0].Author)
}

func TestCreateTaskValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ports.CreateTaskRequest)
	}{
		{"missing title", func(r *ports.CreateTaskRequest) { r.Title = "" }},
		{"bad category", func(r *ports.CreateTaskRequest) { r.Category = "tiktok" }},
		{"bad status", func(r *ports.CreateTaskRequest) { r.Status = "blocked" }},
		{"bad date", func(r *ports.CreateTaskRequest) { r.DueDate = "2026-13-01" }},
		{"recurring without type", func(r *ports.CreateTaskRequest) { r.IsRecurring = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTask("x", "kim", "2026-10-20")
			tt.mutate(&req)
			_, err := env.tasks.CreateTask(ctx, "kim", req)
			assert.ErrorIs(t, err, entities.ErrValidation)
		})
	}
}

func TestListTasksFilters(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.tasks.CreateTask(ctx, "kim", newTask("a", "kim", "2026-10-10"))
	require.NoError(t, err)
	b, err := env.tasks.CreateTask(ctx, "kim", newTask("b", "lee", "2026-10-15"))
	require.NoError(t, err)
	c, err := env.tasks.CreateTask(ctx, "kim", newTask("c", "kim", "2026-11-01"))
	require.NoError(t, err)

	all, err := env.tasks.ListTasks(ctx, ports.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, c.ID, all[0].ID, "newest first")

	kim, err := env.tasks.ListTasks(ctx, ports.TaskFilter{Assignee: strPtr("kim")})
	require.NoError(t, err)
	assert.Len(t, kim, 2)

	oct, err := env.tasks.ListTasks(ctx, ports.TaskFilter{Month: strPtr("2026-10")})
	require.NoError(t, err)
	assert.Len(t, oct, 2)

	ranged, err := env.tasks.ListTasks(ctx, ports.TaskFilter{From: strPtr("2026-10-11"), To: strPtr("2026-10-31")})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, b.ID, ranged[0].ID)

	bad := entities.TaskStatus("blocked")
	_, err = env.tasks.ListTasks(ctx, ports.TaskFilter{Status: &bad})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestUpdateTaskIsPartial(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("draft", "kim", "2026-10-20"))
	require.NoError(t, err)

	updated, err := env.tasks.UpdateTask(ctx, "lee", task.ID, ports.UpdateTaskRequest{Title: strPtr("final")})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, task.Assignee, updated.Assignee)
	assert.Equal(t, task.DueDate, updated.DueDate)
	assert.Equal(t, task.Priority, updated.Priority)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	logs, err := env.tasks.ListActivity(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, ActionUpdated, logs[0].Action)
	assert.Equal(t, "title", logs[0].Details)

	_, err = env.tasks.UpdateTask(ctx, "lee", "missing", ports.UpdateTaskRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}

func TestUpdateTaskStatus(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("draft", "kim", "2026-10-20"))
	require.NoError(t, err)

	done, err := env.tasks.UpdateTaskStatus(ctx, "kim", task.ID, entities.TaskStatusDone)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusDone, done.Status)

	logs, err := env.tasks.ListActivity(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionStatusChanged, logs[0].Action)
	assert.Equal(t, "todo -> done", logs[0].Details)

	_, err = env.tasks.UpdateTaskStatus(ctx, "kim", task.ID, "blocked")
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestDeleteTask(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("draft", "kim", "2026-10-20"))
	require.NoError(t, err)

	require.NoError(t, env.tasks.DeleteTask(ctx, task.ID))
	_, err = env.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)

	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, task.ID), entities.ErrRecordNotFound)
}

func TestAttachFile(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("draft", "kim", "2026-10-20"))
	require.NoError(t, err)

	updated, err := env.tasks.AttachFile(ctx, "kim", task.ID, "../plan.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	require.Len(t, updated.Files, 1)
	assert.Equal(t, "plan.pdf", updated.Files[0].Name)

	prefix := "/files/tasks/" + task.ID + "/"
	assert.True(t, strings.HasPrefix(updated.Files[0].URL, prefix), updated.Files[0].URL)
	assert.True(t, strings.HasSuffix(updated.Files[0].URL, "_plan.pdf"))

	stored := filepath.Join(env.uploadDir, "tasks", task.ID, strings.TrimPrefix(updated.Files[0].URL, prefix))
	b, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(b))

	_, err = env.tasks.AttachFile(ctx, "kim", "missing", "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}

func TestTaskComments(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.CreateTask(ctx, "kim", newTask("draft", "kim", "2026-10-20"))
	require.NoError(t, err)

	_, err = env.tasks.AddComment(ctx, "kim", task.ID, ports.AddCommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = env.tasks.AddComment(ctx, "lee", task.ID, ports.AddCommentRequest{Content: "second"})
	require.NoError(t, err)

	comments, err := env.tasks.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "lee", comments[1].Author)

	_, err = env.tasks.AddComment(ctx, "kim", task.ID, ports.AddCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = env.tasks.AddComment(ctx, "kim", "missing", ports.AddCommentRequest{Content: "x"})
	assert.ErrorIs(t, err, entities.ErrRecordNotFound)
}

func TestDeadlinesAndOverdue(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	today := period.FormatDate(testNow)

	overdue, err := env.tasks.CreateTask(ctx, "kim", newTask("late", "kim", "2026-10-13"))
	require.NoError(t, err)
	dueToday, err := env.tasks.CreateTask(ctx, "kim", newTask("today", "kim", today))
	require.NoError(t, err)
	soon, err := env.tasks.CreateTask(ctx, "kim", newTask("soon", "kim", "2026-10-17"))
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, "kim", newTask("later", "kim", "2026-10-18"))
	require.NoError(t, err)
	done, err := env.tasks.CreateTask(ctx, "kim", newTask("done", "kim", "2026-10-15"))
	require.NoError(t, err)
	_, err = env.tasks.UpdateTaskStatus(ctx, "kim", done.ID, entities.TaskStatusDone)
	require.NoError(t, err)

	deadlines, err := env.tasks.UpcomingDeadlines(ctx)
	require.NoError(t, err)
	require.Len(t, deadlines, 2)
	assert.Equal(t, dueToday.ID, deadlines[0].Task.ID)
	assert.Equal(t, "D-Day", deadlines[0].Countdown.Label)
	assert.Equal(t, soon.ID, deadlines[1].Task.ID)
	assert.Equal(t, "D-3", deadlines[1].Countdown.Label)

	late, err := env.tasks.OverdueTasks(ctx)
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.Equal(t, overdue.ID, late[0].ID)
}

func TestTaskLogsCarryFields(t *testing.T) {
	env := setupTestEnv(t)

	task, err := env.tasks.CreateTask(context.Background(), "kim", newTask("post reel", "kim", "2026-10-20"))
	require.NoError(t, err)

	entries := env.logs.FilterMessage("Task created successfully").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, task.ID, fields["task_id"])
	assert.Equal(t, "post reel", fields["title"])
}
