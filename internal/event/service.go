// AngelaMos | 2026
// service.go

package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/policy"
)

// RSVPStatusProvider reports the caller's own RSVP status for an event,
// or nil when none exists.
type RSVPStatusProvider interface {
	StatusFor(ctx context.Context, userID, eventID string) (*string, error)
}

type Service struct {
	repo  Repository
	rsvps RSVPStatusProvider
}

func NewService(repo Repository, rsvps RSVPStatusProvider) *Service {
	return &Service{repo: repo, rsvps: rsvps}
}

// Create inserts a new event hosted by the actor. Premium users can only
// publish premium-tier events; admins choose the tier freely.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Actor,
	req CreateEventRequest,
) (*Event, error) {
	if !policy.CanCreateEvent(actor) {
		return nil, fmt.Errorf("create event: %w", core.ErrForbidden)
	}

	premiumOnly := false
	if req.PremiumOnly != nil {
		premiumOnly = *req.PremiumOnly
	}
	if actor.Role == policy.RolePremiumUser {
		premiumOnly = true
	}

	description := req.Description
	if description == "" {
		description = DefaultDescription
	}

	imagePath := req.ImagePath
	if imagePath == "" {
		imagePath = DefaultImagePath
	}

	event := &Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: description,
		Date:        req.Date,
		Location:    req.Location,
		HostID:      actor.UserID,
		ImagePath:   imagePath,
		PremiumOnly: premiumOnly,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, event.ID)
}

// Update applies a partial patch. Non-admin actors who are not the host get
// the same NotFound as a missing event, so existence is never leaked.
func (s *Service) Update(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
	req UpdateEventRequest,
) (*Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !policy.CanEditEvent(actor, event.Info()) {
		return nil, fmt.Errorf("update event: %w", core.ErrNotFound)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.ImagePath != nil {
		event.ImagePath = *req.ImagePath
	}
	if req.PremiumOnly != nil {
		event.PremiumOnly = *req.PremiumOnly
	}

	// A premium host can never demote an event to the public tier.
	if actor.Role == policy.RolePremiumUser {
		event.PremiumOnly = true
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, eventID)
}

func (s *Service) Delete(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) error {
	if !policy.CanDeleteEvent(actor) {
		return fmt.Errorf("delete event: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, eventID)
}

func (s *Service) List(
	ctx context.Context,
	actor policy.Actor,
	params ListEventsParams,
) ([]Event, int, error) {
	params.Normalize()

	includePremium := actor.Role == policy.RoleAdmin ||
		actor.Role == policy.RolePremiumUser

	return s.repo.List(ctx, includePremium, params)
}

func (s *Service) ListHosted(
	ctx context.Context,
	actor policy.Actor,
) ([]Event, error) {
	return s.repo.ListByHost(ctx, actor.UserID)
}

// MakePublic flips a premium event to the public tier. Re-publishing an
// already-public event is a conflict, not a no-op.
func (s *Service) MakePublic(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) (*Event, error) {
	if actor.Role != policy.RoleAdmin {
		return nil, fmt.Errorf("make event public: %w", core.ErrForbidden)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.PremiumOnly {
		return nil, fmt.Errorf("make event public: %w", core.ErrConflict)
	}

	if err := s.repo.MakePublic(ctx, eventID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, eventID)
}

// Detail returns the event together with whether the caller hosts it and
// the caller's own RSVP status. Premium events stay invisible to guests.
func (s *Service) Detail(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) (*EventDetailResponse, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !policy.CanListEvent(actor, event.Info()) &&
		event.HostID != actor.UserID {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}

	status, err := s.rsvps.StatusFor(ctx, actor.UserID, eventID)
	if err != nil {
		return nil, err
	}

	return &EventDetailResponse{
		Event:      ToEventResponse(event),
		IsHost:     event.HostID == actor.UserID,
		RSVPStatus: status,
	}, nil
}

// Get returns the raw event without visibility gating. Internal callers
// only; handlers go through Detail.
func (s *Service) Get(ctx context.Context, eventID string) (*Event, error) {
	return s.repo.GetByID(ctx, eventID)
}
