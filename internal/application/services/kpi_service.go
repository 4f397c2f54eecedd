package services

import (
	"context"
	"fmt"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/filters"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// KPIService handles quarterly KPI targets
type KPIService struct {
	kpiRepo ports.Repository[entities.KPI]
	clock   TeamClock
	logger  *logger.Logger
}

// NewKPIService creates a new KPI service
func NewKPIService(kpiRepo ports.Repository[entities.KPI], clock TeamClock, logger *logger.Logger) *KPIService {
	return &KPIService{
		kpiRepo: kpiRepo,
		clock:   clock,
		logger:  logger,
	}
}

// CreateKPI creates a new KPI
func (s *KPIService) CreateKPI(ctx context.Context, req ports.CreateKPIRequest) (*entities.KPI, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	kpi, err := s.kpiRepo.Create(ctx, &entities.KPI{
		Title:        req.Title,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Quarter:      req.Quarter,
		Year:         req.Year,
		Assignee:     req.Assignee,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kpi: %w", err)
	}

	s.logger.Infow("KPI created successfully", "kpi_id", kpi.ID, "title", kpi.Title)

	return kpi, nil
}

// GetKPI retrieves a KPI by ID
func (s *KPIService) GetKPI(ctx context.Context, id string) (*entities.KPI, error) {
	kpi, err := s.kpiRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("kpi not found: %w", err)
	}
	return kpi, nil
}

// ListKPIs returns KPIs newest first. Year and quarter are pushed down together.
func (s *KPIService) ListKPIs(ctx context.Context, filter ports.KPIFilter) ([]entities.KPI, error) {
	q := ports.Query{}.Desc(ports.FieldCreatedAt)
	if filter.Quarter != nil && !filter.Quarter.IsValid() {
		return nil, entities.ErrInvalidQuarter
	}
	if filter.Year != nil {
		q = q.Where("year", ports.OpEq, *filter.Year)
	}
	if filter.Quarter != nil {
		q = q.Where("quarter", ports.OpEq, string(*filter.Quarter))
	}

	kpis, err := s.kpiRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}

	if filter.Assignee != nil {
		kpis = filters.Apply(kpis, filters.KPIByAssignee(*filter.Assignee))
	}
	return kpis, nil
}

// CurrentQuarterKPIs lists the KPIs of the quarter containing today
func (s *KPIService) CurrentQuarterKPIs(ctx context.Context) ([]entities.KPI, error) {
	today := s.clock.Today()
	year, quarter := today.Year(), period.QuarterOf(today)
	return s.ListKPIs(ctx, ports.KPIFilter{Year: &year, Quarter: &quarter})
}

// UpdateKPI applies the provided fields only
func (s *KPIService) UpdateKPI(ctx context.Context, id string, req ports.UpdateKPIRequest) (*entities.KPI, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := ports.Document{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.TargetValue != nil {
		patch["targetValue"] = *req.TargetValue
	}
	if req.CurrentValue != nil {
		patch["currentValue"] = *req.CurrentValue
	}
	if req.Unit != nil {
		patch["unit"] = *req.Unit
	}
	if req.Quarter != nil {
		patch["quarter"] = *req.Quarter
	}
	if req.Year != nil {
		patch["year"] = *req.Year
	}
	if req.Assignee != nil {
		patch["assignee"] = *req.Assignee
	}
	if len(patch) == 0 {
		return s.GetKPI(ctx, id)
	}

	kpi, err := s.kpiRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update kpi: %w", err)
	}

	s.logger.Infow("KPI updated successfully", "kpi_id", id)

	return kpi, nil
}

// DeleteKPI deletes a KPI
func (s *KPIService) DeleteKPI(ctx context.Context, id string) error {
	if err := s.kpiRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete kpi: %w", err)
	}

	s.logger.Infow("KPI deleted successfully", "kpi_id", id)

	return nil
}

// Summary aggregates the KPIs matching filter
func (s *KPIService) Summary(ctx context.Context, filter ports.KPIFilter) (*aggregate.KPISummary, error) {
	kpis, err := s.ListKPIs(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := aggregate.SummarizeKPIs(kpis)
	return &summary, nil
}
