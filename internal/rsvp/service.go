// AngelaMos | 2026
// service.go

package rsvp

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/event"
	"github.com/carterperez-dev/eventhub/internal/policy"
)

// EventProvider supplies events for visibility and permission checks.
type EventProvider interface {
	Get(ctx context.Context, eventID string) (*event.Event, error)
}

type Service struct {
	repo   Repository
	events EventProvider
}

func NewService(repo Repository, events EventProvider) *Service {
	return &Service{repo: repo, events: events}
}

// Upsert records the actor's RSVP for an event, overwriting any previous
// status for the same pair. Events the actor cannot see behave as absent.
func (s *Service) Upsert(
	ctx context.Context,
	actor policy.Actor,
	eventID, status string,
) (*RSVP, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"upsert rsvp: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	ev, err := s.visibleEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	return s.repo.Upsert(ctx, actor.UserID, ev.ID, status)
}

func (s *Service) Remove(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) error {
	return s.repo.Delete(ctx, actor.UserID, eventID)
}

// RemoveUser lets a host or admin drop another user's RSVP.
func (s *Service) RemoveUser(
	ctx context.Context,
	actor policy.Actor,
	eventID, targetUserID string,
) error {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		return err
	}

	if !policy.CanRemoveOthersRSVP(actor, ev.Info()) {
		return fmt.Errorf("remove user rsvp: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, targetUserID, eventID)
}

// GuestList partitions every RSVP for the event by status, for the host
// or an admin.
func (s *Service) GuestList(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) (*GuestListResponse, error) {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !policy.CanViewRoster(actor, ev.Info()) {
		return nil, fmt.Errorf("guest list: %w", core.ErrForbidden)
	}

	guests, err := s.repo.ListGuestsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &GuestListResponse{
		Going:    []GuestEntry{},
		Maybe:    []GuestEntry{},
		NotGoing: []GuestEntry{},
	}
	for _, g := range guests {
		switch g.Status {
		case StatusGoing:
			resp.Going = append(resp.Going, g)
		case StatusMaybe:
			resp.Maybe = append(resp.Maybe, g)
		case StatusNotGoing:
			resp.NotGoing = append(resp.NotGoing, g)
		}
	}

	return resp, nil
}

// MyEvents partitions the actor's own RSVPs by status, each carrying an
// event summary.
func (s *Service) MyEvents(
	ctx context.Context,
	actor policy.Actor,
) (*MyRSVPEventsResponse, error) {
	summaries, err := s.repo.ListEventSummariesForUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	resp := &MyRSVPEventsResponse{
		Going:    []EventSummary{},
		Maybe:    []EventSummary{},
		NotGoing: []EventSummary{},
	}
	for _, sum := range summaries {
		switch sum.Status {
		case StatusGoing:
			resp.Going = append(resp.Going, sum)
		case StatusMaybe:
			resp.Maybe = append(resp.Maybe, sum)
		case StatusNotGoing:
			resp.NotGoing = append(resp.NotGoing, sum)
		}
	}

	return resp, nil
}

// StatusFor implements the status lookup the event detail view needs.
func (s *Service) StatusFor(
	ctx context.Context,
	userID, eventID string,
) (*string, error) {
	return s.repo.StatusFor(ctx, userID, eventID)
}

func (s *Service) visibleEvent(
	ctx context.Context,
	actor policy.Actor,
	eventID string,
) (*event.Event, error) {
	ev, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !policy.CanListEvent(actor, ev.Info()) && ev.HostID != actor.UserID {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}

	return ev, nil
}

var _ event.RSVPStatusProvider = (*Service)(nil)
