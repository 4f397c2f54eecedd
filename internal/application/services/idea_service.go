package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// IdeaService handles the idea board
type IdeaService struct {
	ideaRepo    ports.Repository[entities.Idea]
	commentRepo ports.Repository[entities.IdeaComment]
	files       ports.ObjectStore
	clock       TeamClock
	logger      *logger.Logger
}

// NewIdeaService creates a new idea service
func NewIdeaService(
	ideaRepo ports.Repository[entities.Idea],
	commentRepo ports.Repository[entities.IdeaComment],
	files ports.ObjectStore,
	clock TeamClock,
	logger *logger.Logger,
) *IdeaService {
	return &IdeaService{
		ideaRepo:    ideaRepo,
		commentRepo: commentRepo,
		files:       files,
		clock:       clock,
		logger:      logger,
	}
}

// CreateIdea posts an idea dated today
func (s *IdeaService) CreateIdea(ctx context.Context, author string, req ports.CreateIdeaRequest) (*entities.Idea, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.Create(ctx, &entities.Idea{
		Date:        s.clock.TodayString(),
		Topic:       req.Topic,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		Author:      author,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	s.logger.Infow("Idea created successfully", "idea_id", idea.ID, "author", author)

	return idea, nil
}

// GetIdea retrieves an idea by ID
func (s *IdeaService) GetIdea(ctx context.Context, id string) (*entities.Idea, error) {
	idea, err := s.ideaRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("idea not found: %w", err)
	}
	return idea, nil
}

// ListIdeas returns ideas newest first
func (s *IdeaService) ListIdeas(ctx context.Context) ([]entities.Idea, error) {
	ideas, err := s.ideaRepo.List(ctx, ports.Query{}.Desc(ports.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, nil
}

// UpdateIdea applies the provided fields only
func (s *IdeaService) UpdateIdea(ctx context.Context, id string, req ports.UpdateIdeaRequest) (*entities.Idea, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	patch := ports.Document{}
	if req.Topic != nil {
		patch["topic"] = strings.TrimSpace(*req.Topic)
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.ImageURL != nil {
		patch["imageUrl"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		patch["linkUrl"] = *req.LinkURL
	}
	if len(patch) == 0 {
		return s.GetIdea(ctx, id)
	}

	idea, err := s.ideaRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}

	s.logger.Infow("Idea updated successfully", "idea_id", id)

	return idea, nil
}

// DeleteIdea deletes an idea
func (s *IdeaService) DeleteIdea(ctx context.Context, id string) error {
	if err := s.ideaRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}

	s.logger.Infow("Idea deleted successfully", "idea_id", id)

	return nil
}

// UploadImage stores an image for the idea and points imageUrl at it
func (s *IdeaService) UploadImage(ctx context.Context, id, name string, r io.Reader) (*entities.Idea, error) {
	if _, err := s.ideaRepo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("idea not found: %w", err)
	}

	url, err := s.files.Upload(ctx, r, objectPath("ideas", name, s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	idea, err := s.ideaRepo.Update(ctx, id, ports.Document{"imageUrl": url})
	if err != nil {
		return nil, fmt.Errorf("failed to set idea image: %w", err)
	}

	s.logger.Infow("Idea image uploaded", "idea_id", id, "url", url)

	return idea, nil
}

// ListComments returns an idea's comments oldest first
func (s *IdeaService) ListComments(ctx context.Context, ideaID string) ([]entities.IdeaComment, error) {
	comments, err := s.commentRepo.List(ctx, ports.Query{}.
		Where("ideaId", ports.OpEq, ideaID).
		Asc(ports.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list idea comments: %w", err)
	}
	return comments, nil
}

// AddComment comments on an existing idea as author
func (s *IdeaService) AddComment(ctx context.Context, author, ideaID string, req ports.AddCommentRequest) (*entities.IdeaComment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.ideaRepo.Get(ctx, ideaID); err != nil {
		return nil, fmt.Errorf("idea not found: %w", err)
	}

	comment, err := s.commentRepo.Create(ctx, &entities.IdeaComment{IdeaID: ideaID, Author: author, Content: req.Content})
	if err != nil {
		return nil, fmt.Errorf("failed to add idea comment: %w", err)
	}

	s.logger.Infow("Idea comment added", "idea_id", ideaID, "comment_id", comment.ID)

	return comment, nil
}

// DeleteComment removes a comment. Only its author may do so.
func (s *IdeaService) DeleteComment(ctx context.Context, requester, ideaID, commentID string) error {
	comment, err := s.commentRepo.Get(ctx, commentID)
	if err != nil {
		return fmt.Errorf("comment not found: %w", err)
	}
	if comment.IdeaID != ideaID {
		return fmt.Errorf("comment not found: %w", entities.ErrRecordNotFound)
	}
	if comment.Author != requester {
		return fmt.Errorf("%w: only %s can delete this comment", entities.ErrForbidden, comment.Author)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return fmt.Errorf("comment not found: %w", err)
		}
		return fmt.Errorf("failed to delete idea comment: %w", err)
	}

	s.logger.Infow("Idea comment deleted", "idea_id", ideaID, "comment_id", commentID)

	return nil
}
