package services

import (
	"context"
	"fmt"

	"github.com/teamboard/core/internal/domain/aggregate"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// ReelSummary is the engagement overview of the reels log
type ReelSummary struct {
	Totals aggregate.EngagementTotals `json:"totals"`
	Series []aggregate.SeriesPoint    `json:"series"`
}

// ReelService handles the Instagram reels engagement log
type ReelService struct {
	reelRepo ports.Repository[entities.InstagramReel]
	logger   *logger.Logger
}

// NewReelService creates a new reel service
func NewReelService(reelRepo ports.Repository[entities.InstagramReel], logger *logger.Logger) *ReelService {
	return &ReelService{
		reelRepo: reelRepo,
		logger:   logger,
	}
}

// CreateReel records a posted reel
func (s *ReelService) CreateReel(ctx context.Context, req ports.CreateReelRequest) (*entities.InstagramReel, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	reel := &entities.InstagramReel{
		Title:    req.Title,
		PostDate: req.PostDate,
		Views:    req.Views,
		Shares:   req.Shares,
		Comments: req.Comments,
		URL:      req.URL,
	}
	if err := reel.Validate(); err != nil {
		return nil, err
	}

	created, err := s.reelRepo.Create(ctx, reel)
	if err != nil {
		return nil, fmt.Errorf("failed to create reel: %w", err)
	}

	s.logger.Infow("Reel recorded successfully", "reel_id", created.ID, "post_date", created.PostDate)

	return created, nil
}

// GetReel retrieves a reel by ID
func (s *ReelService) GetReel(ctx context.Context, id string) (*entities.InstagramReel, error) {
	reel, err := s.reelRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reel not found: %w", err)
	}
	return reel, nil
}

// ListReels returns reels by post date, newest first, optionally within a date range
func (s *ReelService) ListReels(ctx context.Context, filter ports.ReelFilter) ([]entities.InstagramReel, error) {
	q := ports.Query{}.Desc("postDate")
	if filter.From != nil {
		q = q.Where("postDate", ports.OpGte, *filter.From)
	}
	if filter.To != nil {
		q = q.Where("postDate", ports.OpLte, *filter.To)
	}

	reels, err := s.reelRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reels: %w", err)
	}
	return reels, nil
}

// UpdateReel applies the provided fields only
func (s *ReelService) UpdateReel(ctx context.Context, id string, req ports.UpdateReelRequest) (*entities.InstagramReel, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := ports.Document{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.PostDate != nil {
		patch["postDate"] = *req.PostDate
	}
	if req.Views != nil {
		patch["views"] = *req.Views
	}
	if req.Shares != nil {
		patch["shares"] = *req.Shares
	}
	if req.Comments != nil {
		patch["comments"] = *req.Comments
	}
	if req.URL != nil {
		patch["url"] = *req.URL
	}
	if len(patch) == 0 {
		return s.GetReel(ctx, id)
	}

	reel, err := s.reelRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update reel: %w", err)
	}

	s.logger.Infow("Reel updated successfully", "reel_id", id)

	return reel, nil
}

// DeleteReel deletes a reel
func (s *ReelService) DeleteReel(ctx context.Context, id string) error {
	if err := s.reelRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reel: %w", err)
	}

	s.logger.Infow("Reel deleted successfully", "reel_id", id)

	return nil
}

// Summary totals the reels in filter and builds the chart series in post order
func (s *ReelService) Summary(ctx context.Context, filter ports.ReelFilter) (*ReelSummary, error) {
	reels, err := s.ListReels(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReelSummary{
		Totals: aggregate.Engagement(reels),
		Series: aggregate.EngagementSeries(reels),
	}, nil
}
