// AngelaMos | 2026
// dispatcher.go

package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/eventhub/internal/mailer"
)

// dateLayout renders the event time the way the reminder email shows it,
// e.g. "Saturday, September 05, 2026 at 07:30 PM".
const dateLayout = "Monday, January 02, 2006 at 03:04 PM"

// Stats summarizes one dispatch run.
type Stats struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Dispatcher finds events happening tomorrow and emails every "going"
// attendee exactly once per event. Safe to run concurrently and repeatedly:
// the claim on reminder_sent is conditional, and a failed send rolls the
// claim back so the next run retries.
type Dispatcher struct {
	store  Store
	mailer mailer.Sender
	logger *slog.Logger
	now    func() time.Time
}

func NewDispatcher(
	store Store,
	sender mailer.Sender,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		store:  store,
		mailer: sender,
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch processes every eligible event. One event's failure is logged
// and the batch continues; the returned error covers only the initial scan.
func (d *Dispatcher) Dispatch(ctx context.Context) (Stats, error) {
	from, to := tomorrowWindow(d.now())

	events, err := d.store.FindDue(ctx, from, to)
	if err != nil {
		return Stats{}, fmt.Errorf("scan due reminders: %w", err)
	}

	stats := Stats{Scanned: len(events)}

	for _, ev := range events {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		err := d.store.ClaimAndSend(ctx, ev.ID, func(emails []string) error {
			return d.sendAll(ctx, ev.Title, ev.Date, emails)
		})

		switch {
		case err == nil:
			stats.Sent++
			d.logger.Info("reminder dispatched",
				"event_id", ev.ID,
				"title", ev.Title,
			)
		case errors.Is(err, ErrAlreadySent), errors.Is(err, ErrNoGoingGuests):
			stats.Skipped++
		default:
			stats.Failed++
			d.logger.Error("reminder dispatch failed",
				"event_id", ev.ID,
				"error", err,
			)
		}
	}

	return stats, nil
}

func (d *Dispatcher) sendAll(
	ctx context.Context,
	title string,
	date time.Time,
	emails []string,
) error {
	subject := fmt.Sprintf(
		"Reminder: Event '%s' is happening tomorrow!", title)
	body := fmt.Sprintf(
		"Don't forget! The event '%s' is happening tomorrow, %s.",
		title,
		date.Format(dateLayout),
	)

	for _, to := range emails {
		if err := d.mailer.Send(ctx, to, subject, body); err != nil {
			return err
		}
	}

	return nil
}

// tomorrowWindow returns the UTC calendar day one day after now.
func tomorrowWindow(now time.Time) (time.Time, time.Time) {
	utc := now.UTC()
	start := time.Date(
		utc.Year(), utc.Month(), utc.Day(),
		0, 0, 0, 0, time.UTC,
	).AddDate(0, 0, 1)
	return start, start.AddDate(0, 0, 1)
}
