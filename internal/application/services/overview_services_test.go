package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

func seedBoard(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	for _, req := range []ports.CreateTaskRequest{
		newTask("late", "kim", "2026-10-10"),
		newTask("today", "kim", "2026-10-14"),
		newTask("friday", "lee", "2026-10-16"),
		newTask("next week", "lee", "2026-10-25"),
		newTask("last month", "kim", "2026-09-01"),
	} {
		_, err := env.tasks.CreateTask(ctx, "kim", req)
		require.NoError(t, err)
	}

	done := newTask("shipped", "lee", "2026-10-12")
	done.Status = entities.TaskStatusDone
	_, err := env.tasks.CreateTask(ctx, "lee", done)
	require.NoError(t, err)

	_, err = env.kpis.CreateKPI(ctx, ports.CreateKPIRequest{Title: "reach", TargetValue: 100, CurrentValue: 100, Quarter: entities.Q4, Year: 2026, Assignee: "kim"})
	require.NoError(t, err)
	_, err = env.kpis.CreateKPI(ctx, ports.CreateKPIRequest{Title: "sales", TargetValue: 100, CurrentValue: 40, Quarter: entities.Q4, Year: 2026, Assignee: "lee"})
	require.NoError(t, err)

	_, err = env.reels.CreateReel(ctx, ports.CreateReelRequest{Title: "a", PostDate: "2026-10-10", Views: 90, Shares: 9, Comments: 3})
	require.NoError(t, err)
	_, err = env.reels.CreateReel(ctx, ports.CreateReelRequest{Title: "b", PostDate: "2026-08-01", Views: 1000})
	require.NoError(t, err)
}

func TestDashboardOverview(t *testing.T) {
	env := setupTestEnv(t, "kim", "lee")
	seedBoard(t, env)

	d, err := env.board.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-10-14", d.Today)
	assert.Equal(t, entities.Q4, d.Quarter)
	assert.Equal(t, 2, d.KPICount)
	assert.Equal(t, 70, d.KPIAverage)

	require.Len(t, d.Members, 2)
	assert.Equal(t, "kim", d.Members[0].Name)
	assert.Len(t, d.Members[0].Tasks, 3)
	assert.Len(t, d.Members[1].Tasks, 2, "done tasks are not queued")

	var week []string
	for _, dl := range d.ThisWeek {
		week = append(week, dl.Task.Title)
	}
	assert.ElementsMatch(t, []string{"today", "friday"}, week)

	require.Len(t, d.Alerts, 2)
	assert.Equal(t, "today", d.Alerts[0].Task.Title)
	assert.Equal(t, period.UrgencyDue, d.Alerts[0].Countdown.Urgency)
}

func TestCalendarMonth(t *testing.T) {
	env := setupTestEnv(t)
	seedBoard(t, env)
	ctx := context.Background()

	m, err := env.calendar.Month(ctx, 2026, 10)
	require.NoError(t, err)
	// October 2026 starts on a Thursday
	require.Len(t, m.Cells, 4+31)
	assert.True(t, m.Cells[3].IsBlank())
	assert.Equal(t, "2026-10-01", m.Cells[4].Date)

	cell := m.Cells[4+13]
	assert.Equal(t, "2026-10-14", cell.Date)
	require.Len(t, cell.Tasks, 1)
	assert.Equal(t, "today", cell.Tasks[0].Title)
	assert.NotNil(t, m.Cells[0].Tasks)

	_, err = env.calendar.Month(ctx, 2026, 13)
	assert.ErrorIs(t, err, entities.ErrValidation)

	cur, err := env.calendar.CurrentMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, cur.Month)
}

func TestCalendarDay(t *testing.T) {
	env := setupTestEnv(t)
	seedBoard(t, env)
	ctx := context.Background()

	day, err := env.calendar.Day(ctx, "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, "D-2", day.Countdown.Label)
	require.Len(t, day.Tasks, 1)
	assert.Equal(t, "friday", day.Tasks[0].Task.Title)

	_, err = env.calendar.Day(ctx, "16/10/2026")
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestWeeklyReport(t *testing.T) {
	env := setupTestEnv(t, "kim", "lee")
	seedBoard(t, env)
	ctx := context.Background()

	r, err := env.reports.Build(ctx, period.Weekly)
	require.NoError(t, err)

	assert.Equal(t, period.Range{Start: "2026-10-07", End: "2026-10-14"}, r.Period)
	// late, today and shipped fall in the window
	assert.Equal(t, 3, r.Tasks.Total)
	assert.Equal(t, 1, r.Tasks.Done)
	assert.Equal(t, 1, r.Tasks.Overdue)
	require.Len(t, r.Members, 2)
	assert.Equal(t, 2, r.Members[0].Total)
	assert.Equal(t, 70, r.KPIs.AverageProgress)
	assert.Equal(t, 1, r.KPIs.Achieved)
	assert.Len(t, r.Overdue, 2, "overdue list is not limited to the window")
	assert.Equal(t, 1, r.Engagement.Count)

	text, err := env.reports.Text(ctx, period.Weekly)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "=== Marketing Team Weekly Report ===\nPeriod: 2026-10-07 ~ 2026-10-14\n"), text)
	assert.Contains(t, text, "[Tasks] Total 3 / Done 1 / In progress 0 / To do 2 / Overdue 1")
	assert.Contains(t, text, "kim: Total 2 / Done 0 / In progress 0 / Overdue 1")

	_, err = env.reports.Build(ctx, period.Kind("yearly"))
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestMonthlyReport(t *testing.T) {
	env := setupTestEnv(t, "kim", "lee")
	seedBoard(t, env)

	r, err := env.reports.Build(context.Background(), period.Monthly)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-14", r.Period.Start)
	assert.Equal(t, 3, r.Tasks.Total)
}
