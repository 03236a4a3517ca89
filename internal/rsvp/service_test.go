// AngelaMos | 2026
// service_test.go

package rsvp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/event"
	"github.com/carterperez-dev/eventhub/internal/policy"
)

type fakeRepo struct {
	rows   map[string]*RSVP // keyed user|event
	guests map[string][]GuestEntry
	mine   map[string][]EventSummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rows:   map[string]*RSVP{},
		guests: map[string][]GuestEntry{},
		mine:   map[string][]EventSummary{},
	}
}

func rowKey(userID, eventID string) string {
	return userID + "|" + eventID
}

func (r *fakeRepo) Upsert(
	_ context.Context,
	userID, eventID, status string,
) (*RSVP, error) {
	key := rowKey(userID, eventID)
	if existing, ok := r.rows[key]; ok {
		existing.Status = status
		cp := *existing
		return &cp, nil
	}

	rsvp := &RSVP{
		ID:      fmt.Sprintf("rsvp-%d", len(r.rows)+1),
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}
	r.rows[key] = rsvp
	cp := *rsvp
	return &cp, nil
}

func (r *fakeRepo) StatusFor(
	_ context.Context,
	userID, eventID string,
) (*string, error) {
	if rsvp, ok := r.rows[rowKey(userID, eventID)]; ok {
		status := rsvp.Status
		return &status, nil
	}
	return nil, nil
}

func (r *fakeRepo) Delete(
	_ context.Context,
	userID, eventID string,
) error {
	key := rowKey(userID, eventID)
	if _, ok := r.rows[key]; !ok {
		return fmt.Errorf("delete rsvp: %w", core.ErrNotFound)
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeRepo) ListGuestsForEvent(
	_ context.Context,
	eventID string,
) ([]GuestEntry, error) {
	return r.guests[eventID], nil
}

func (r *fakeRepo) ListEventSummariesForUser(
	_ context.Context,
	userID string,
) ([]EventSummary, error) {
	return r.mine[userID], nil
}

func (r *fakeRepo) ListGoingEmails(
	_ context.Context,
	_ core.DBTX,
	_ string,
) ([]string, error) {
	return nil, nil
}

type fakeEvents struct {
	events map[string]*event.Event
}

func (f *fakeEvents) Get(
	_ context.Context,
	eventID string,
) (*event.Event, error) {
	ev, ok := f.events[eventID]
	if !ok {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	return ev, nil
}

var (
	adminActor   = policy.Actor{UserID: "admin-1", Role: policy.RoleAdmin}
	premiumActor = policy.Actor{UserID: "prem-1", Role: policy.RolePremiumUser}
	guestActor   = policy.Actor{UserID: "guest-1", Role: policy.RoleGuest}
)

func newTestService(repo *fakeRepo) *Service {
	events := &fakeEvents{events: map[string]*event.Event{
		"ev-public": {
			ID:     "ev-public",
			HostID: premiumActor.UserID,
		},
		"ev-premium": {
			ID:          "ev-premium",
			HostID:      premiumActor.UserID,
			PremiumOnly: true,
		},
	}}
	return NewService(repo, events)
}

func TestUpsertRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Upsert(context.Background(), guestActor, "ev-public", "attending")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("Upsert() error = %v, want ErrInvalidInput", err)
	}
}

func TestUpsertMissingEvent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Upsert(context.Background(), guestActor, "no-such", StatusGoing)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Upsert() error = %v, want ErrNotFound", err)
	}
}

func TestUpsertPremiumEventHiddenFromGuests(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Upsert(context.Background(), guestActor, "ev-premium", StatusGoing)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("guest Upsert() on premium event error = %v, want ErrNotFound",
			err)
	}
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, guestActor, "ev-public", StatusGoing)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	second, err := svc.Upsert(ctx, guestActor, "ev-public", StatusMaybe)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want exactly 1 per (user, event)", len(repo.rows))
	}
	if second.ID != first.ID {
		t.Error("overwrite must reuse the existing row")
	}
	if second.Status != StatusMaybe {
		t.Errorf("Status = %q, want maybe", second.Status)
	}
}

func TestRemoveMissingRSVP(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.Remove(context.Background(), guestActor, "ev-public")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Remove() error = %v, want ErrNotFound", err)
	}
}

func TestRemoveUserPermissions(t *testing.T) {
	otherGuest := policy.Actor{UserID: "guest-2", Role: policy.RoleGuest}

	tests := []struct {
		name    string
		actor   policy.Actor
		wantErr error
	}{
		{"stranger is denied", otherGuest, core.ErrForbidden},
		{"host may remove", premiumActor, nil},
		{"admin may remove", adminActor, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.rows[rowKey(guestActor.UserID, "ev-public")] = &RSVP{
				ID:      "rsvp-1",
				UserID:  guestActor.UserID,
				EventID: "ev-public",
				Status:  StatusGoing,
			}
			svc := newTestService(repo)

			err := svc.RemoveUser(
				context.Background(),
				tt.actor,
				"ev-public",
				guestActor.UserID,
			)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RemoveUser() error = %v, want %v", err, tt.wantErr)
				}
				if len(repo.rows) != 1 {
					t.Error("denied removal must leave the RSVP unchanged")
				}
				return
			}

			if err != nil {
				t.Fatalf("RemoveUser() error = %v", err)
			}
			if len(repo.rows) != 0 {
				t.Error("RSVP should have been removed")
			}
		})
	}
}

func TestGuestListPartition(t *testing.T) {
	repo := newFakeRepo()
	repo.guests["ev-public"] = []GuestEntry{
		{UserID: "u1", Username: "ann", Email: "ann@example.com", Status: StatusGoing},
		{UserID: "u2", Username: "bob", Email: "bob@example.com", Status: StatusMaybe},
		{UserID: "u3", Username: "cat", Email: "cat@example.com", Status: StatusNotGoing},
		{UserID: "u4", Username: "dee", Email: "dee@example.com", Status: StatusGoing},
	}
	svc := newTestService(repo)

	resp, err := svc.GuestList(context.Background(), premiumActor, "ev-public")
	if err != nil {
		t.Fatalf("GuestList() error = %v", err)
	}

	if len(resp.Going) != 2 || len(resp.Maybe) != 1 || len(resp.NotGoing) != 1 {
		t.Errorf("partition = %d/%d/%d, want 2/1/1",
			len(resp.Going), len(resp.Maybe), len(resp.NotGoing))
	}
}

func TestGuestListForbiddenForStrangers(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GuestList(context.Background(), guestActor, "ev-public")
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("GuestList() error = %v, want ErrForbidden", err)
	}
}

func TestMyEventsPartition(t *testing.T) {
	date := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.mine[guestActor.UserID] = []EventSummary{
		{EventID: "e1", Title: "A", Date: date, Status: StatusGoing},
		{EventID: "e2", Title: "B", Date: date, Status: StatusMaybe},
	}
	svc := newTestService(repo)

	resp, err := svc.MyEvents(context.Background(), guestActor)
	if err != nil {
		t.Fatalf("MyEvents() error = %v", err)
	}

	if len(resp.Going) != 1 || len(resp.Maybe) != 1 || len(resp.NotGoing) != 0 {
		t.Errorf("partition = %d/%d/%d, want 1/1/0",
			len(resp.Going), len(resp.Maybe), len(resp.NotGoing))
	}
}
