// AngelaMos | 2026
// service_test.go

package event

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/policy"
)

type fakeRepo struct {
	events map[string]*Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[string]*Event{}}
}

func (r *fakeRepo) Create(_ context.Context, event *Event) error {
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	cp := *ev
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, event *Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return fmt.Errorf("update event: %w", core.ErrNotFound)
	}
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}
	delete(r.events, id)
	return nil
}

func (r *fakeRepo) List(
	_ context.Context,
	includePremium bool,
	_ ListEventsParams,
) ([]Event, int, error) {
	var out []Event
	for _, ev := range r.events {
		if ev.PremiumOnly && !includePremium {
			continue
		}
		out = append(out, *ev)
	}
	return out, len(out), nil
}

func (r *fakeRepo) ListByHost(
	_ context.Context,
	hostID string,
) ([]Event, error) {
	var out []Event
	for _, ev := range r.events {
		if ev.HostID == hostID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeRepo) MakePublic(_ context.Context, id string) error {
	ev, ok := r.events[id]
	if !ok || !ev.PremiumOnly {
		return fmt.Errorf("make event public: %w", core.ErrConflict)
	}
	ev.PremiumOnly = false
	return nil
}

func (r *fakeRepo) FindDueReminders(
	_ context.Context,
	_ core.DBTX,
	_, _ time.Time,
) ([]Event, error) {
	return nil, nil
}

func (r *fakeRepo) MarkReminderSent(
	_ context.Context,
	_ core.DBTX,
	_ string,
) (bool, error) {
	return false, nil
}

type fakeStatusProvider struct {
	statuses map[string]string
}

func (p *fakeStatusProvider) StatusFor(
	_ context.Context,
	userID, eventID string,
) (*string, error) {
	if status, ok := p.statuses[userID+"|"+eventID]; ok {
		return &status, nil
	}
	return nil, nil
}

var (
	adminActor   = policy.Actor{UserID: "admin-1", Role: policy.RoleAdmin}
	premiumActor = policy.Actor{UserID: "prem-1", Role: policy.RolePremiumUser}
	guestActor   = policy.Actor{UserID: "guest-1", Role: policy.RoleGuest}
)

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &fakeStatusProvider{statuses: map[string]string{}})
}

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Title:    "Launch Party",
		Date:     time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Location: "Atlanta",
	}
}

func TestCreateEventPermissions(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), guestActor, validCreateRequest())
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("guest Create() error = %v, want ErrForbidden", err)
	}
}

func TestCreateEventPremiumForcedTier(t *testing.T) {
	svc := newTestService(newFakeRepo())

	public := false
	req := validCreateRequest()
	req.PremiumOnly = &public

	ev, err := svc.Create(context.Background(), premiumActor, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !ev.PremiumOnly {
		t.Error("premium host must always produce a premium-only event")
	}
	if ev.HostID != premiumActor.UserID {
		t.Errorf("HostID = %q, want actor", ev.HostID)
	}
}

func TestCreateEventDefaults(t *testing.T) {
	svc := newTestService(newFakeRepo())

	ev, err := svc.Create(context.Background(), adminActor, validCreateRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ev.Description != DefaultDescription {
		t.Errorf("Description = %q, want default", ev.Description)
	}
	if ev.ImagePath != DefaultImagePath {
		t.Errorf("ImagePath = %q, want default", ev.ImagePath)
	}
	if ev.PremiumOnly {
		t.Error("admin-created event defaults to public")
	}
}

func TestUpdateEventHidesOthersEvents(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{
		ID:     "ev-1",
		Title:  "Private Dinner",
		HostID: "someone-else",
	}
	svc := newTestService(repo)

	title := "Hijacked"
	_, err := svc.Update(
		context.Background(),
		premiumActor,
		"ev-1",
		UpdateEventRequest{Title: &title},
	)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound (no existence leak)",
			err)
	}
	if repo.events["ev-1"].Title != "Private Dinner" {
		t.Error("event was mutated despite permission failure")
	}
}

func TestUpdateEventPartialPatch(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{
		ID:          "ev-1",
		Title:       "Old Title",
		Location:    "Atlanta",
		HostID:      premiumActor.UserID,
		PremiumOnly: true,
	}
	svc := newTestService(repo)

	title := "New Title"
	ev, err := svc.Update(
		context.Background(),
		premiumActor,
		"ev-1",
		UpdateEventRequest{Title: &title},
	)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if ev.Title != "New Title" {
		t.Errorf("Title = %q, want New Title", ev.Title)
	}
	if ev.Location != "Atlanta" {
		t.Errorf("Location = %q, untouched fields must survive", ev.Location)
	}
}

func TestDeleteEventAdminOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", HostID: premiumActor.UserID}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), premiumActor, "ev-1")
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("host Delete() error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), adminActor, "ev-1"); err != nil {
		t.Errorf("admin Delete() error = %v", err)
	}
}

func TestMakePublic(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", PremiumOnly: true}
	repo.events["ev-2"] = &Event{ID: "ev-2", PremiumOnly: false}
	svc := newTestService(repo)

	if _, err := svc.MakePublic(context.Background(), premiumActor, "ev-1"); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("non-admin MakePublic() error = %v, want ErrForbidden", err)
	}

	ev, err := svc.MakePublic(context.Background(), adminActor, "ev-1")
	if err != nil {
		t.Fatalf("MakePublic() error = %v", err)
	}
	if ev.PremiumOnly {
		t.Error("event should be public after MakePublic")
	}

	if _, err := svc.MakePublic(context.Background(), adminActor, "ev-2"); !errors.Is(err, core.ErrConflict) {
		t.Errorf("already-public MakePublic() error = %v, want ErrConflict",
			err)
	}
}

func TestListEventsVisibility(t *testing.T) {
	repo := newFakeRepo()
	repo.events["pub"] = &Event{ID: "pub", PremiumOnly: false}
	repo.events["prem"] = &Event{ID: "prem", PremiumOnly: true}
	svc := newTestService(repo)

	tests := []struct {
		name  string
		actor policy.Actor
		want  int
	}{
		{"guest sees public only", guestActor, 1},
		{"premium sees all", premiumActor, 2},
		{"admin sees all", adminActor, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, total, err := svc.List(
				context.Background(),
				tt.actor,
				ListEventsParams{},
			)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(events) != tt.want || total != tt.want {
				t.Errorf("List() = %d events (total %d), want %d",
					len(events), total, tt.want)
			}
		})
	}
}

func TestEventDetail(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{
		ID:     "ev-1",
		Title:  "Members Gala",
		HostID: premiumActor.UserID,
	}
	status := &fakeStatusProvider{statuses: map[string]string{
		"admin-1|ev-1": "going",
	}}
	svc := NewService(repo, status)

	detail, err := svc.Detail(context.Background(), premiumActor, "ev-1")
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if !detail.IsHost {
		t.Error("host detail must report IsHost = true")
	}
	if detail.RSVPStatus != nil {
		t.Errorf("RSVPStatus = %v, want nil for non-RSVPed host",
			*detail.RSVPStatus)
	}

	detail, err = svc.Detail(context.Background(), adminActor, "ev-1")
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}
	if detail.IsHost {
		t.Error("non-host detail must report IsHost = false")
	}
	if detail.RSVPStatus == nil || *detail.RSVPStatus != "going" {
		t.Errorf("RSVPStatus = %v, want going", detail.RSVPStatus)
	}
}

func TestEventDetailPremiumHiddenFromGuests(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{
		ID:          "ev-1",
		HostID:      premiumActor.UserID,
		PremiumOnly: true,
	}
	svc := newTestService(repo)

	_, err := svc.Detail(context.Background(), guestActor, "ev-1")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("guest Detail() on premium event error = %v, want ErrNotFound",
			err)
	}
}
