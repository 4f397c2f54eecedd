package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// MemberService manages the team roster
type MemberService struct {
	memberRepo ports.Repository[entities.Member]
	fallback   []string
	logger     *logger.Logger
}

// NewMemberService creates a member service. fallback names are used while the roster
// collection is empty.
func NewMemberService(memberRepo ports.Repository[entities.Member], fallback []string, logger *logger.Logger) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		fallback:   fallback,
		logger:     logger,
	}
}

// ListMembers returns the roster ordered by name
func (s *MemberService) ListMembers(ctx context.Context) ([]entities.Member, error) {
	members, err := s.memberRepo.List(ctx, ports.Query{}.Asc("name"))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// Names returns the known member names, or the configured team list when none are stored.
func (s *MemberService) Names(ctx context.Context) ([]string, error) {
	members, err := s.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return append([]string{}, s.fallback...), nil
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names, nil
}

// CreateMember adds a member; names are unique
func (s *MemberService) CreateMember(ctx context.Context, req ports.CreateMemberRequest) (*entities.Member, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.memberRepo.List(ctx, ports.Query{}.Where("name", ports.OpEq, req.Name).Take(1))
	if err != nil {
		return nil, fmt.Errorf("failed to check member: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: member %q already exists", entities.ErrValidation, req.Name)
	}

	member, err := s.memberRepo.Create(ctx, &entities.Member{Name: req.Name, Role: req.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.logger.Infow("Member created successfully", "member_id", member.ID, "name", member.Name)

	return member, nil
}

// DeleteMember removes a member. Tasks keep the name they were assigned.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	s.logger.Infow("Member deleted successfully", "member_id", id)

	return nil
}
