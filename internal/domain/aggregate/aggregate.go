// Package aggregate computes the summary numbers shown on the dashboard, KPI board and
// reports. Every function is pure and safe to call on empty input.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/domain/period"
)

// SeriesLabelRunes is how much of a reel title survives as a chart label.
const SeriesLabelRunes = 8

// StatusCounts summarises a set of tasks.
type StatusCounts struct {
	Total          int `json:"total"`
	Done           int `json:"done"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// MemberStats is StatusCounts scoped to one assignee.
type MemberStats struct {
	Name string `json:"name"`
	StatusCounts
}

type KPIProgress struct {
	KPI      entities.KPI `json:"kpi"`
	Progress int          `json:"progress"`
	Achieved bool         `json:"achieved"`
}

type KPISummary struct {
	AverageProgress int           `json:"averageProgress"`
	Achieved        int           `json:"achieved"`
	Total           int           `json:"total"`
	Items           []KPIProgress `json:"items"`
}

// EngagementTotals are sums and rounded per-reel means.
type EngagementTotals struct {
	Count       int   `json:"count"`
	Views       int64 `json:"views"`
	Shares      int64 `json:"shares"`
	Comments    int64 `json:"comments"`
	AvgViews    int64 `json:"avgViews"`
	AvgShares   int64 `json:"avgShares"`
	AvgComments int64 `json:"avgComments"`
}

type SeriesPoint struct {
	Label    string `json:"label"`
	PostDate string `json:"postDate"`
	Views    int64  `json:"views"`
	Shares   int64  `json:"shares"`
	Comments int64  `json:"comments"`
}

// Deadline is an open task together with its countdown.
type Deadline struct {
	Task      entities.Task    `json:"task"`
	Countdown period.Countdown `json:"countdown"`
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func rawProgress(k entities.KPI) float64 {
	return k.Ratio() * 100
}

// Progress is the rounded percentage of target reached, 0 without a positive target.
func Progress(k entities.KPI) int {
	return int(math.Round(rawProgress(k)))
}

// AverageProgress rounds the mean of the rounded per-KPI percentages. KPIs without a
// target count as 0% and stay in the denominator.
func AverageProgress(kpis []entities.KPI) int {
	if len(kpis) == 0 {
		return 0
	}
	sum := 0
	for _, k := range kpis {
		sum += Progress(k)
	}
	return int(math.Round(float64(sum) / float64(len(kpis))))
}

func AchievedCount(kpis []entities.KPI) int {
	return filters.Count(kpis, func(k entities.KPI) bool { return k.IsAchieved() })
}

func SummarizeKPIs(kpis []entities.KPI) KPISummary {
	items := make([]KPIProgress, 0, len(kpis))
	for _, k := range kpis {
		items = append(items, KPIProgress{KPI: k, Progress: Progress(k), Achieved: k.IsAchieved()})
	}
	return KPISummary{
		AverageProgress: AverageProgress(kpis),
		Achieved:        AchievedCount(kpis),
		Total:           len(kpis),
		Items:           items,
	}
}

// CountStatuses buckets tasks by status; overdue uses today as YYYY-MM-DD.
func CountStatuses(tasks []entities.Task, today string) StatusCounts {
	var c StatusCounts
	for i := range tasks {
		t := &tasks[i]
		c.Total++
		switch t.Status {
		case entities.TaskStatusDone:
			c.Done++
		case entities.TaskStatusInProgress:
			c.InProgress++
		case entities.TaskStatusTodo:
			c.Todo++
		}
		if t.IsOverdue(today) {
			c.Overdue++
		}
	}
	c.CompletionRate = percent(c.Done, c.Total)
	return c
}

func MemberRollup(tasks []entities.Task, member, today string) MemberStats {
	return MemberStats{
		Name:         member,
		StatusCounts: CountStatuses(filters.Apply(tasks, filters.ByAssignee(member)), today),
	}
}

// MemberRollups returns one entry per member in the given order, including members
// with no tasks.
func MemberRollups(tasks []entities.Task, members []string, today string) []MemberStats {
	out := make([]MemberStats, 0, len(members))
	for _, m := range members {
		out = append(out, MemberRollup(tasks, m, today))
	}
	return out
}

func meanOf(total int64, n int) int64 {
	if n == 0 {
		return 0
	}
	return int64(math.Round(float64(total) / float64(n)))
}

func Engagement(reels []entities.InstagramReel) EngagementTotals {
	var e EngagementTotals
	for _, r := range reels {
		e.Views += r.Views
		e.Shares += r.Shares
		e.Comments += r.Comments
	}
	e.Count = len(reels)
	e.AvgViews = meanOf(e.Views, e.Count)
	e.AvgShares = meanOf(e.Shares, e.Count)
	e.AvgComments = meanOf(e.Comments, e.Count)
	return e
}

// SortByPostDate returns a copy ordered by post date ascending; ties keep input order.
func SortByPostDate(reels []entities.InstagramReel) []entities.InstagramReel {
	out := make([]entities.InstagramReel, len(reels))
	copy(out, reels)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PostDate < out[j].PostDate })
	return out
}

// SeriesLabel shortens a title to SeriesLabelRunes runes followed by "...".
func SeriesLabel(title string) string {
	r := []rune(title)
	if len(r) <= SeriesLabelRunes {
		return title
	}
	return string(r[:SeriesLabelRunes]) + "..."
}

func EngagementSeries(reels []entities.InstagramReel) []SeriesPoint {
	sorted := SortByPostDate(reels)
	out := make([]SeriesPoint, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, SeriesPoint{
			Label:    SeriesLabel(r.Title),
			PostDate: r.PostDate,
			Views:    r.Views,
			Shares:   r.Shares,
			Comments: r.Comments,
		})
	}
	return out
}

// UpcomingDeadlines lists open tasks that are due today or within the soon window,
// earliest first. Tasks with malformed due dates are skipped.
func UpcomingDeadlines(tasks []entities.Task, now time.Time) []Deadline {
	out := make([]Deadline, 0)
	for _, t := range filters.Apply(tasks, filters.NotDone()) {
		c, err := period.DDay(t.DueDate, now)
		if err != nil || !c.IsAlert() {
			continue
		}
		out = append(out, Deadline{Task: t, Countdown: c})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Task.DueDate < out[j].Task.DueDate })
	return out
}

// WithCountdowns pairs every task with its countdown, dropping malformed dates.
func WithCountdowns(tasks []entities.Task, now time.Time) []Deadline {
	out := make([]Deadline, 0, len(tasks))
	for _, t := range tasks {
		c, err := period.DDay(t.DueDate, now)
		if err != nil {
			continue
		}
		out = append(out, Deadline{Task: t, Countdown: c})
	}
	return out
}

// GroupByDueDate indexes tasks by their due date for calendar cells.
func GroupByDueDate(tasks []entities.Task) map[string][]entities.Task {
	out := make(map[string][]entities.Task)
	for _, t := range tasks {
		out[t.DueDate] = append(out[t.DueDate], t)
	}
	return out
}
