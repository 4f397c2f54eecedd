package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

// MemberQueue is one member's open work
type MemberQueue struct {
	Name  string               `json:"name"`
	Tasks []aggregate.Deadline `json:"tasks"`
}

// Dashboard is the landing overview
type Dashboard struct {
	Today      string               `json:"today"`
	Year       int                  `json:"year"`
	Quarter    entities.Quarter     `json:"quarter"`
	KPICount   int                  `json:"kpiCount"`
	KPIAverage int                  `json:"kpiAverage"`
	Members    []MemberQueue        `json:"members"`
	ThisWeek   []aggregate.Deadline `json:"thisWeek"`
	Alerts     []aggregate.Deadline `json:"alerts"`
}

// DashboardService composes the overview from tasks, KPIs and the roster
type DashboardService struct {
	tasks   *TaskService
	kpis    *KPIService
	members *MemberService
	clock   TeamClock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(tasks *TaskService, kpis *KPIService, members *MemberService, clock TeamClock) *DashboardService {
	return &DashboardService{
		tasks:   tasks,
		kpis:    kpis,
		members: members,
		clock:   clock,
	}
}

// Overview fetches tasks, current-quarter KPIs and member names concurrently
func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	var (
		tasks []entities.Task
		kpis  []entities.KPI
		names []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListTasks(gctx, ports.TaskFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		kpis, err = s.kpis.CurrentQuarterKPIs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.members.Names(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := s.clock.Today()
	open := filters.Apply(tasks, filters.NotDone())

	members := make([]MemberQueue, 0, len(names))
	for _, name := range names {
		members = append(members, MemberQueue{
			Name:  name,
			Tasks: aggregate.WithCountdowns(filters.Apply(open, filters.ByAssignee(name)), now),
		})
	}

	return &Dashboard{
		Today:      period.FormatDate(today),
		Year:       today.Year(),
		Quarter:    period.QuarterOf(today),
		KPICount:   len(kpis),
		KPIAverage: aggregate.AverageProgress(kpis),
		Members:    members,
		ThisWeek:   aggregate.WithCountdowns(filters.Apply(open, filters.DueBetween(period.WeekAhead(today))), now),
		Alerts:     aggregate.UpcomingDeadlines(tasks, now),
	}, nil
}
