package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// DefaultClientID is used when a client does not identify itself
const DefaultClientID = "default"

// SessionService remembers which member each client acts as
type SessionService struct {
	prefs   ports.PreferenceStore
	members *MemberService
	logger  *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(prefs ports.PreferenceStore, members *MemberService, logger *logger.Logger) *SessionService {
	return &SessionService{
		prefs:   prefs,
		members: members,
		logger:  logger,
	}
}

func memberKey(clientID string) string {
	if clientID == "" {
		clientID = DefaultClientID
	}
	return "member:" + clientID
}

// CurrentMember returns the member the client selected, falling back to the first known
// member. It is empty only when no members are known at all.
func (s *SessionService) CurrentMember(ctx context.Context, clientID string) (string, error) {
	name, ok, err := s.prefs.Get(ctx, memberKey(clientID))
	if err != nil {
		return "", fmt.Errorf("failed to read current member: %w", err)
	}
	if ok && name != "" {
		return name, nil
	}

	known, err := s.members.Names(ctx)
	if err != nil {
		return "", err
	}
	if len(known) == 0 {
		return "", nil
	}
	return known[0], nil
}

// SetCurrentMember switches the client to a known member
func (s *SessionService) SetCurrentMember(ctx context.Context, clientID, name string) error {
	known, err := s.members.Names(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(known, name) {
		return fmt.Errorf("%w: %q", entities.ErrUnknownMember, name)
	}

	if err := s.prefs.Set(ctx, memberKey(clientID), name); err != nil {
		return fmt.Errorf("failed to save current member: %w", err)
	}

	s.logger.LogMemberAction(name, "select_member", map[string]interface{}{"client_id": clientID})

	return nil
}

// Describe returns the client's member together with the selectable names
func (s *SessionService) Describe(ctx context.Context, clientID string) (*ports.CurrentMemberResponse, error) {
	if clientID == "" {
		clientID = DefaultClientID
	}
	name, err := s.CurrentMember(ctx, clientID)
	if err != nil {
		return nil, err
	}
	known, err := s.members.Names(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.CurrentMemberResponse{ClientID: clientID, Name: name, Known: known}, nil
}
