// AngelaMos | 2026
// repository.go

package rsvp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/eventhub/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, userID, eventID, status string) (*RSVP, error)
	StatusFor(ctx context.Context, userID, eventID string) (*string, error)
	Delete(ctx context.Context, userID, eventID string) error
	ListGuestsForEvent(ctx context.Context, eventID string) ([]GuestEntry, error)
	ListEventSummariesForUser(
		ctx context.Context,
		userID string,
	) ([]EventSummary, error)
	ListGoingEmails(
		ctx context.Context,
		db core.DBTX,
		eventID string,
	) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert writes the status atomically against the (user_id, event_id)
// uniqueness constraint, so two concurrent calls can never leave two rows
// for the same pair.
func (r *repository) Upsert(
	ctx context.Context,
	userID, eventID, status string,
) (*RSVP, error) {
	query := `
		INSERT INTO rsvps (id, user_id, event_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, event_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, user_id, event_id, status, created_at, updated_at`

	var rsvp RSVP
	err := r.db.GetContext(ctx, &rsvp, query,
		uuid.New().String(),
		userID,
		eventID,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert rsvp: %w", err)
	}

	return &rsvp, nil
}

func (r *repository) StatusFor(
	ctx context.Context,
	userID, eventID string,
) (*string, error) {
	query := `
		SELECT status FROM rsvps
		WHERE user_id = $1 AND event_id = $2`

	var status string
	err := r.db.GetContext(ctx, &status, query, userID, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rsvp status: %w", err)
	}

	return &status, nil
}

func (r *repository) Delete(
	ctx context.Context,
	userID, eventID string,
) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM rsvps WHERE user_id = $1 AND event_id = $2",
		userID, eventID)
	if err != nil {
		return fmt.Errorf("delete rsvp: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rsvp: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete rsvp: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListGuestsForEvent(
	ctx context.Context,
	eventID string,
) ([]GuestEntry, error) {
	query := `
		SELECT u.id AS user_id, u.username, u.email, r.status
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY u.username, u.id`

	var guests []GuestEntry
	if err := r.db.SelectContext(ctx, &guests, query, eventID); err != nil {
		return nil, fmt.Errorf("list event guests: %w", err)
	}

	return guests, nil
}

func (r *repository) ListEventSummariesForUser(
	ctx context.Context,
	userID string,
) ([]EventSummary, error) {
	query := `
		SELECT e.id AS event_id, e.title, e.date, e.location, r.status
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY e.date ASC, e.id`

	var summaries []EventSummary
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, fmt.Errorf("list rsvp events: %w", err)
	}

	return summaries, nil
}

// ListGoingEmails runs on the caller's connection so the reminder job can
// read inside its claim transaction.
func (r *repository) ListGoingEmails(
	ctx context.Context,
	db core.DBTX,
	eventID string,
) ([]string, error) {
	query := `
		SELECT u.email
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status = 'going' AND u.is_active = true
		ORDER BY u.email`

	var emails []string
	if err := db.SelectContext(ctx, &emails, query, eventID); err != nil {
		return nil, fmt.Errorf("list going emails: %w", err)
	}

	return emails, nil
}
