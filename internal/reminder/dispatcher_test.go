// AngelaMos | 2026
// dispatcher_test.go

package reminder

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/carterperez-dev/eventhub/internal/event"
)

type fakeStore struct {
	due     []event.Event
	emails  map[string][]string
	claimed map[string]bool
}

func (s *fakeStore) FindDue(
	_ context.Context,
	_, _ time.Time,
) ([]event.Event, error) {
	return s.due, nil
}

func (s *fakeStore) ClaimAndSend(
	_ context.Context,
	eventID string,
	send func(emails []string) error,
) error {
	if s.claimed[eventID] {
		return ErrAlreadySent
	}

	emails := s.emails[eventID]
	if len(emails) == 0 {
		return ErrNoGoingGuests
	}

	if err := send(emails); err != nil {
		return err
	}

	if s.claimed == nil {
		s.claimed = map[string]bool{}
	}
	s.claimed[eventID] = true
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent    []sentMail
	failFor string
}

func (s *fakeSender) Send(
	_ context.Context,
	to, subject, body string,
) error {
	if s.failFor != "" && to == s.failFor {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testEvent(id, title string, date time.Time) event.Event {
	return event.Event{ID: id, Title: title, Date: date}
}

func newTestDispatcher(store Store, sender *fakeSender) *Dispatcher {
	d := NewDispatcher(store, sender, slog.New(slog.DiscardHandler))
	d.now = func() time.Time {
		return time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)
	}
	return d
}

func TestDispatchSendsToGoingGuests(t *testing.T) {
	eventDate := time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC)
	store := &fakeStore{
		due: []event.Event{testEvent("ev-1", "Go Meetup", eventDate)},
		emails: map[string][]string{
			"ev-1": {"a@example.com", "b@example.com"},
		},
	}
	sender := &fakeSender{}

	stats, err := newTestDispatcher(store, sender).Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if stats.Sent != 1 || stats.Failed != 0 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 1 sent", stats)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d mails, want 2", len(sender.sent))
	}

	wantSubject := "Reminder: Event 'Go Meetup' is happening tomorrow!"
	if sender.sent[0].subject != wantSubject {
		t.Errorf("subject = %q, want %q", sender.sent[0].subject, wantSubject)
	}
	if !strings.Contains(
		sender.sent[0].body,
		"Saturday, September 05, 2026 at 07:30 PM",
	) {
		t.Errorf("body = %q, missing formatted date", sender.sent[0].body)
	}
	if !store.claimed["ev-1"] {
		t.Error("event was not marked as sent")
	}
}

func TestDispatchIsIdempotent(t *testing.T) {
	eventDate := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{
		due:    []event.Event{testEvent("ev-1", "Brunch", eventDate)},
		emails: map[string][]string{"ev-1": {"a@example.com"}},
	}
	sender := &fakeSender{}
	d := newTestDispatcher(store, sender)

	for range 2 {
		if _, err := d.Dispatch(context.Background()); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
	}

	if len(sender.sent) != 1 {
		t.Errorf("sent %d mails across two runs, want exactly 1",
			len(sender.sent))
	}
}

func TestDispatchSkipsEventsWithNoGoingGuests(t *testing.T) {
	eventDate := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{
		due: []event.Event{testEvent("ev-1", "Quiet Event", eventDate)},
	}
	sender := &fakeSender{}

	stats, err := newTestDispatcher(store, sender).Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if stats.Skipped != 1 || stats.Sent != 0 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
	if store.claimed["ev-1"] {
		t.Error("event with no guests must stay unclaimed")
	}
}

func TestDispatchContinuesAfterSendFailure(t *testing.T) {
	eventDate := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{
		due: []event.Event{
			testEvent("ev-1", "Broken", eventDate),
			testEvent("ev-2", "Fine", eventDate),
		},
		emails: map[string][]string{
			"ev-1": {"down@example.com"},
			"ev-2": {"ok@example.com"},
		},
	}
	sender := &fakeSender{failFor: "down@example.com"}

	stats, err := newTestDispatcher(store, sender).Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if stats.Failed != 1 || stats.Sent != 1 {
		t.Errorf("stats = %+v, want 1 failed and 1 sent", stats)
	}
	if store.claimed["ev-1"] {
		t.Error("failed event must stay unclaimed for the next run")
	}
	if !store.claimed["ev-2"] {
		t.Error("healthy event should have been claimed")
	}
}

func TestTomorrowWindow(t *testing.T) {
	tests := []struct {
		now       string
		wantStart string
		wantEnd   string
	}{
		{"2026-09-04T00:00:00Z", "2026-09-05T00:00:00Z", "2026-09-06T00:00:00Z"},
		{"2026-09-04T23:59:59Z", "2026-09-05T00:00:00Z", "2026-09-06T00:00:00Z"},
		{"2026-12-31T12:00:00Z", "2027-01-01T00:00:00Z", "2027-01-02T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			now, _ := time.Parse(time.RFC3339, tt.now)
			start, end := tomorrowWindow(now)

			if got := start.Format(time.RFC3339); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format(time.RFC3339); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}
