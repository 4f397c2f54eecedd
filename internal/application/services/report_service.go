package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/domain/report"
	"github.com/teamboard/core/internal/ports"
)

// ReportService builds the weekly and monthly team report
type ReportService struct {
	team    string
	tasks   *TaskService
	kpis    *KPIService
	reels   *ReelService
	members *MemberService
	clock   TeamClock
}

// NewReportService creates a report service for the named team
func NewReportService(team string, tasks *TaskService, kpis *KPIService, reels *ReelService, members *MemberService, clock TeamClock) *ReportService {
	return &ReportService{
		team:    team,
		tasks:   tasks,
		kpis:    kpis,
		reels:   reels,
		members: members,
		clock:   clock,
	}
}

// Build assembles the report for the period of kind ending today. Task counts cover tasks
// due in the period; the overdue list covers every open task past due.
func (s *ReportService) Build(ctx context.Context, kind period.Kind) (*report.Report, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: period %q", entities.ErrValidation, kind)
	}

	today := s.clock.Today()
	todayStr := period.FormatDate(today)
	rng := period.ReportRange(kind, today)

	var (
		tasks []entities.Task
		kpis  []entities.KPI
		reels []entities.InstagramReel
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
		reels, err = s.reels.ListReels(gctx, ports.ReelFilter{From: &rng.Start, To: &rng.End})
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

	inPeriod := filters.Apply(tasks, filters.DueBetween(rng))

	return &report.Report{
		Team:       s.team,
		Kind:       kind,
		Period:     rng,
		Tasks:      aggregate.CountStatuses(inPeriod, todayStr),
		Members:    aggregate.MemberRollups(inPeriod, names, todayStr),
		Quarter:    period.QuarterOf(today),
		Year:       today.Year(),
		KPIs:       aggregate.SummarizeKPIs(kpis),
		Overdue:    filters.Apply(tasks, filters.Overdue(todayStr)),
		Engagement: aggregate.Engagement(reels),
	}, nil
}

// Text renders the copyable plain-text form of the report
func (s *ReportService) Text(ctx context.Context, kind period.Kind) (string, error) {
	r, err := s.Build(ctx, kind)
	if err != nil {
		return "", err
	}
	return report.RenderText(*r)
}
