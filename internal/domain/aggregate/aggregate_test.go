package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
)

func TestAverageProgress(t *testing.T) {
	tests := []struct {
		name   string
		kpis   []entities.KPI
		expect int
	}{
		{"empty", nil, 0},
		{"zero target stays in denominator", []entities.KPI{
			{TargetValue: 0, CurrentValue: 0},
			{TargetValue: 100, CurrentValue: 50},
		}, 25},
		{"over achievement is not capped", []entities.KPI{
			{TargetValue: 100, CurrentValue: 50},
			{TargetValue: 100, CurrentValue: 200},
		}, 125},
		{"rounds each percentage before the mean", []entities.KPI{
			{TargetValue: 200, CurrentValue: 1},
			{TargetValue: 100, CurrentValue: 0},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, AverageProgress(tt.kpis))
		})
	}
}

func TestProgressAndAchieved(t *testing.T) {
	kpis := []entities.KPI{
		{Title: "a", TargetValue: 200, CurrentValue: 250},
		{Title: "b", TargetValue: 3, CurrentValue: 2},
		{Title: "c", TargetValue: 0, CurrentValue: 7},
	}

	assert.Equal(t, 125, Progress(kpis[0]))
	assert.Equal(t, 67, Progress(kpis[1]))
	assert.Equal(t, 0, Progress(kpis[2]))
	assert.Equal(t, 1, AchievedCount(kpis))

	s := SummarizeKPIs(kpis)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Achieved)
	assert.Equal(t, 64, s.AverageProgress)
	require.Len(t, s.Items, 3)
	assert.True(t, s.Items[0].Achieved)
	assert.False(t, s.Items[2].Achieved)
}

func TestCountStatuses(t *testing.T) {
	tasks := []entities.Task{
		{Assignee: "kim", Status: entities.TaskStatusDone, DueDate: "2026-10-01"},
		{Assignee: "kim", Status: entities.TaskStatusInProgress, DueDate: "2026-10-13"},
		{Assignee: "lee", Status: entities.TaskStatusTodo, DueDate: "2026-10-14"},
	}

	c := CountStatuses(tasks, "2026-10-14")
	assert.Equal(t, StatusCounts{Total: 3, Done: 1, InProgress: 1, Todo: 1, Overdue: 1, CompletionRate: 33}, c)

	assert.Equal(t, StatusCounts{}, CountStatuses(nil, "2026-10-14"))
}

func TestMemberRollups(t *testing.T) {
	tasks := []entities.Task{
		{Assignee: "kim", Status: entities.TaskStatusDone, DueDate: "2026-10-01"},
		{Assignee: "kim", Status: entities.TaskStatusTodo, DueDate: "2026-10-02"},
	}

	rollups := MemberRollups(tasks, []string{"kim", "lee"}, "2026-10-14")
	require.Len(t, rollups, 2)
	assert.Equal(t, "kim", rollups[0].Name)
	assert.Equal(t, 2, rollups[0].Total)
	assert.Equal(t, 50, rollups[0].CompletionRate)
	assert.Equal(t, 1, rollups[0].Overdue)
	assert.Equal(t, "lee", rollups[1].Name)
	assert.Zero(t, rollups[1].Total)
	assert.Zero(t, rollups[1].CompletionRate)
}

func TestEngagement(t *testing.T) {
	assert.Equal(t, EngagementTotals{}, Engagement(nil))

	e := Engagement([]entities.InstagramReel{
		{Views: 100, Shares: 3, Comments: 1},
		{Views: 201, Shares: 4, Comments: 2},
	})
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, int64(301), e.Views)
	assert.Equal(t, int64(151), e.AvgViews)
	assert.Equal(t, int64(4), e.AvgShares)
	assert.Equal(t, int64(2), e.AvgComments)
}

func TestEngagementSeries(t *testing.T) {
	reels := []entities.InstagramReel{
		{Title: "second", PostDate: "2026-10-05"},
		{Title: "a very long reel title", PostDate: "2026-10-01"},
		{Title: "tie", PostDate: "2026-10-05"},
	}

	series := EngagementSeries(reels)
	require.Len(t, series, 3)
	assert.Equal(t, "a very l...", series[0].Label)
	assert.Equal(t, "second", series[1].Label)
	assert.Equal(t, "tie", series[2].Label)

	// input is not reordered
	assert.Equal(t, "second", reels[0].Title)
}

func TestSeriesLabelRunes(t *testing.T) {
	assert.Equal(t, "인스타그램릴스테...", SeriesLabel("인스타그램릴스테스트"))
	assert.Equal(t, "12345678", SeriesLabel("12345678"))
}

func TestUpcomingDeadlines(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	tasks := []entities.Task{
		{Title: "later", DueDate: "2026-10-20", Status: entities.TaskStatusTodo},
		{Title: "soon", DueDate: "2026-10-16", Status: entities.TaskStatusTodo},
		{Title: "today", DueDate: "2026-10-14", Status: entities.TaskStatusInProgress},
		{Title: "done", DueDate: "2026-10-15", Status: entities.TaskStatusDone},
		{Title: "late", DueDate: "2026-10-10", Status: entities.TaskStatusTodo},
		{Title: "broken", DueDate: "soon", Status: entities.TaskStatusTodo},
	}

	got := UpcomingDeadlines(tasks, now)
	require.Len(t, got, 2)
	assert.Equal(t, "today", got[0].Task.Title)
	assert.Equal(t, "D-Day", got[0].Countdown.Label)
	assert.Equal(t, "soon", got[1].Task.Title)
	assert.Equal(t, period.UrgencySoon, got[1].Countdown.Urgency)

	assert.Len(t, WithCountdowns(tasks, now), 5)
}

func TestGroupByDueDate(t *testing.T) {
	groups := GroupByDueDate([]entities.Task{
		{Title: "a", DueDate: "2026-10-01"},
		{Title: "b", DueDate: "2026-10-01"},
		{Title: "c", DueDate: "2026-10-02"},
	})
	assert.Len(t, groups["2026-10-01"], 2)
	assert.Len(t, groups["2026-10-02"], 1)
	assert.Empty(t, groups["2026-10-03"])
}
