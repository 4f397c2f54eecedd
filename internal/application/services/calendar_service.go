package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

// CalendarCell is a grid cell with the tasks due that day
type CalendarCell struct {
	period.Cell
	Tasks []entities.Task `json:"tasks"`
}

// CalendarMonth is a Sunday-first month grid
type CalendarMonth struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Today string         `json:"today"`
	Cells []CalendarCell `json:"cells"`
}

// CalendarDay lists the tasks due on one date
type CalendarDay struct {
	Date      string               `json:"date"`
	Countdown period.Countdown     `json:"countdown"`
	Tasks     []aggregate.Deadline `json:"tasks"`
}

// CalendarService lays tasks out by due date
type CalendarService struct {
	tasks *TaskService
	clock TeamClock
}

// NewCalendarService creates a new calendar service
func NewCalendarService(tasks *TaskService, clock TeamClock) *CalendarService {
	return &CalendarService{tasks: tasks, clock: clock}
}

// Month builds the grid for month (1-12) of year
func (s *CalendarService) Month(ctx context.Context, year, month int) (*CalendarMonth, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", entities.ErrValidation, month)
	}

	key := period.MonthKey(year, time.Month(month))
	tasks, err := s.tasks.ListTasks(ctx, ports.TaskFilter{Month: &key})
	if err != nil {
		return nil, err
	}
	byDate := aggregate.GroupByDueDate(tasks)

	grid := period.MonthGrid(year, time.Month(month))
	cells := make([]CalendarCell, 0, len(grid))
	for _, c := range grid {
		cell := CalendarCell{Cell: c, Tasks: []entities.Task{}}
		if !c.IsBlank() && len(byDate[c.Date]) > 0 {
			cell.Tasks = byDate[c.Date]
		}
		cells = append(cells, cell)
	}

	return &CalendarMonth{
		Year:  year,
		Month: month,
		Today: s.clock.TodayString(),
		Cells: cells,
	}, nil
}

// CurrentMonth is Month for the team's current month
func (s *CalendarService) CurrentMonth(ctx context.Context) (*CalendarMonth, error) {
	today := s.clock.Today()
	return s.Month(ctx, today.Year(), int(today.Month()))
}

// Day lists the tasks due on date with their countdowns
func (s *CalendarService) Day(ctx context.Context, date string) (*CalendarDay, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	countdown, err := period.DDay(date, now)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListTasks(ctx, ports.TaskFilter{})
	if err != nil {
		return nil, err
	}

	return &CalendarDay{
		Date:      date,
		Countdown: countdown,
		Tasks:     aggregate.WithCountdowns(filters.Apply(tasks, filters.DueOn(date)), now),
	}, nil
}
