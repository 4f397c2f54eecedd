package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// MeetingService handles meeting minutes and the weekly agenda
type MeetingService struct {
	minutesRepo ports.Repository[entities.MeetingMinutes]
	agendaRepo  ports.Repository[entities.MeetingAgenda]
	weekday     time.Weekday
	clock       TeamClock
	logger      *logger.Logger
}

// NewMeetingService creates a meeting service for a team meeting held on weekday
func NewMeetingService(
	minutesRepo ports.Repository[entities.MeetingMinutes],
	agendaRepo ports.Repository[entities.MeetingAgenda],
	weekday time.Weekday,
	clock TeamClock,
	logger *logger.Logger,
) *MeetingService {
	return &MeetingService{
		minutesRepo: minutesRepo,
		agendaRepo:  agendaRepo,
		weekday:     weekday,
		clock:       clock,
		logger:      logger,
	}
}

// CreateMinutes records a meeting
func (s *MeetingService) CreateMinutes(ctx context.Context, author string, req ports.CreateMinutesRequest) (*entities.MeetingMinutes, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	minutes, err := s.minutesRepo.Create(ctx, &entities.MeetingMinutes{
		MeetingDate: req.MeetingDate,
		Title:       req.Title,
		Content:     req.Content,
		Attendees:   cleanNames(req.Attendees),
		Author:      author,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minutes: %w", err)
	}

	s.logger.Infow("Meeting minutes created", "minutes_id", minutes.ID, "meeting_date", minutes.MeetingDate)

	return minutes, nil
}

// GetMinutes retrieves minutes by ID
func (s *MeetingService) GetMinutes(ctx context.Context, id string) (*entities.MeetingMinutes, error) {
	minutes, err := s.minutesRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("minutes not found: %w", err)
	}
	return minutes, nil
}

// ListMinutes returns minutes newest first
func (s *MeetingService) ListMinutes(ctx context.Context) ([]entities.MeetingMinutes, error) {
	minutes, err := s.minutesRepo.List(ctx, ports.Query{}.Desc(ports.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	return minutes, nil
}

// UpdateMinutes applies the provided fields only
func (s *MeetingService) UpdateMinutes(ctx context.Context, id string, req ports.UpdateMinutesRequest) (*entities.MeetingMinutes, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := ports.Document{}
	if req.MeetingDate != nil {
		patch["meetingDate"] = *req.MeetingDate
	}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Content != nil {
		patch["content"] = *req.Content
	}
	if req.Attendees != nil {
		patch["attendees"] = cleanNames(*req.Attendees)
	}
	if len(patch) == 0 {
		return s.GetMinutes(ctx, id)
	}

	minutes, err := s.minutesRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update minutes: %w", err)
	}

	s.logger.Infow("Meeting minutes updated", "minutes_id", id)

	return minutes, nil
}

// DeleteMinutes deletes minutes
func (s *MeetingService) DeleteMinutes(ctx context.Context, id string) error {
	if err := s.minutesRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete minutes: %w", err)
	}

	s.logger.Infow("Meeting minutes deleted", "minutes_id", id)

	return nil
}

// CreateAgenda stores the agenda for a meeting date. Items without a title are dropped.
func (s *MeetingService) CreateAgenda(ctx context.Context, author string, req ports.CreateAgendaRequest) (*entities.MeetingAgenda, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	items, err := agendaItems(req.Items)
	if err != nil {
		return nil, err
	}

	agenda, err := s.agendaRepo.Create(ctx, &entities.MeetingAgenda{
		WeekDate: req.WeekDate,
		Items:    items,
		Author:   author,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agenda: %w", err)
	}

	s.logger.Infow("Agenda created", "agenda_id", agenda.ID, "week_date", agenda.WeekDate, "items", len(items))

	return agenda, nil
}

// GetAgenda retrieves an agenda by ID
func (s *MeetingService) GetAgenda(ctx context.Context, id string) (*entities.MeetingAgenda, error) {
	agenda, err := s.agendaRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("agenda not found: %w", err)
	}
	return agenda, nil
}

// ListAgendas returns agendas by meeting date, latest first
func (s *MeetingService) ListAgendas(ctx context.Context) ([]entities.MeetingAgenda, error) {
	agendas, err := s.agendaRepo.List(ctx, ports.Query{}.Desc("weekDate"))
	if err != nil {
		return nil, fmt.Errorf("failed to list agendas: %w", err)
	}
	return agendas, nil
}

// UpdateAgenda applies the provided fields only
func (s *MeetingService) UpdateAgenda(ctx context.Context, id string, req ports.UpdateAgendaRequest) (*entities.MeetingAgenda, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := ports.Document{}
	if req.WeekDate != nil {
		patch["weekDate"] = *req.WeekDate
	}
	if req.Items != nil {
		for _, item := range *req.Items {
			if err := validateRequest(item); err != nil {
				return nil, err
			}
		}
		items, err := agendaItems(*req.Items)
		if err != nil {
			return nil, err
		}
		patch["items"] = items
	}
	if len(patch) == 0 {
		return s.GetAgenda(ctx, id)
	}

	agenda, err := s.agendaRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update agenda: %w", err)
	}

	s.logger.Infow("Agenda updated", "agenda_id", id)

	return agenda, nil
}

// DeleteAgenda deletes an agenda
func (s *MeetingService) DeleteAgenda(ctx context.Context, id string) error {
	if err := s.agendaRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agenda: %w", err)
	}

	s.logger.Infow("Agenda deleted", "agenda_id", id)

	return nil
}

// CurrentAgenda resolves this week's meeting date, its countdown and the agenda filed
// for it. NextMeeting is the default date offered for a new agenda.
func (s *MeetingService) CurrentAgenda(ctx context.Context) (*ports.CurrentAgendaResponse, error) {
	now := s.clock.Now()
	weekDate := period.FormatDate(period.ThisWeekday(now, s.weekday))

	countdown, err := period.MeetingCountdown(weekDate, now)
	if err != nil {
		return nil, err
	}

	agendas, err := s.agendaRepo.List(ctx, ports.Query{}.
		Where("weekDate", ports.OpEq, weekDate).
		Desc(ports.FieldCreatedAt).
		Take(1))
	if err != nil {
		return nil, fmt.Errorf("failed to load current agenda: %w", err)
	}

	resp := &ports.CurrentAgendaResponse{
		WeekDate:    weekDate,
		Countdown:   countdown.Label,
		NextMeeting: period.FormatDate(period.NextWeekday(now, s.weekday)),
	}
	if len(agendas) > 0 {
		resp.Agenda = &agendas[0]
	}
	return resp, nil
}

func agendaItems(in []ports.AgendaItemInput) ([]entities.AgendaItem, error) {
	items := make([]entities.AgendaItem, 0, len(in))
	for _, item := range in {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		items = append(items, entities.AgendaItem{Title: title, Detail: strings.TrimSpace(item.Detail)})
	}
	if len(items) == 0 {
		return nil, entities.ErrEmptyAgenda
	}
	return items, nil
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
