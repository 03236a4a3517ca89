// AngelaMos | 2026
// store.go

package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/event"
	"github.com/carterperez-dev/eventhub/internal/rsvp"
)

var (
	// ErrAlreadySent means another run claimed the event first.
	ErrAlreadySent = errors.New("reminder already sent")
	// ErrNoGoingGuests means the event had nobody to notify; the claim is
	// rolled back so the event is re-offered once an RSVP arrives.
	ErrNoGoingGuests = errors.New("no going guests")
)

// Store is the reminder job's view of the datastore. Each claim runs as
// its own transaction so a killed batch never loses or double-sends.
type Store interface {
	FindDue(ctx context.Context, from, to time.Time) ([]event.Event, error)
	ClaimAndSend(
		ctx context.Context,
		eventID string,
		send func(emails []string) error,
	) error
}

type sqlStore struct {
	db     *sqlx.DB
	events event.Repository
	rsvps  rsvp.Repository
}

func NewStore(
	db *sqlx.DB,
	events event.Repository,
	rsvps rsvp.Repository,
) Store {
	return &sqlStore{db: db, events: events, rsvps: rsvps}
}

func (s *sqlStore) FindDue(
	ctx context.Context,
	from, to time.Time,
) ([]event.Event, error) {
	return s.events.FindDueReminders(ctx, s.db, from, to)
}

// ClaimAndSend claims the event's reminder flag with a conditional update,
// reads the "going" addresses inside the same transaction, and invokes the
// send callback. Any error (including a failed send) rolls the claim back,
// leaving the event eligible for the next run.
func (s *sqlStore) ClaimAndSend(
	ctx context.Context,
	eventID string,
	send func(emails []string) error,
) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		claimed, err := s.events.MarkReminderSent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadySent
		}

		emails, err := s.rsvps.ListGoingEmails(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if len(emails) == 0 {
			return ErrNoGoingGuests
		}

		if err := send(emails); err != nil {
			return fmt.Errorf("send reminder: %w", err)
		}

		return nil
	})
}
