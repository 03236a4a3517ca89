// AngelaMos | 2026
// repository.go

package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/eventhub/internal/core"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	List(
		ctx context.Context,
		includePremium bool,
		params ListEventsParams,
	) ([]Event, int, error)
	ListByHost(ctx context.Context, hostID string) ([]Event, error)
	MakePublic(ctx context.Context, id string) error
	FindDueReminders(
		ctx context.Context,
		db core.DBTX,
		from, to time.Time,
	) ([]Event, error)
	MarkReminderSent(ctx context.Context, db core.DBTX, id string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const eventColumns = `
	e.id, e.title, e.description, e.date, e.location, e.host_id,
	u.username AS host_username, e.image_path, e.premium_only,
	e.reminder_sent, e.created_at, e.updated_at`

const eventFrom = `events e JOIN users u ON u.id = e.host_id`

func (r *repository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (
			id, title, description, date, location, host_id,
			image_path, premium_only
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, event, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.HostID,
		event.ImagePath,
		event.PremiumOnly,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE e.id = $1",
		eventColumns,
		eventFrom,
	)

	var event Event
	err := r.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &event, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5,
		    image_path = $6, premium_only = $7, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.ImagePath,
		event.PremiumOnly,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update event: %w", core.ErrNotFound)
	}

	return nil
}

// Delete removes the event; its RSVPs go with it via the FK cascade.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete event: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	includePremium bool,
	params ListEventsParams,
) ([]Event, int, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if !includePremium {
		conditions = append(conditions, "e.premium_only = false")
	}

	if params.Date != "" {
		conditions = append(conditions,
			fmt.Sprintf("e.date::date = $%d::date", argIdx))
		args = append(args, params.Date)
		argIdx++
	}

	if params.Location != "" {
		conditions = append(conditions,
			fmt.Sprintf("e.location ILIKE $%d", argIdx))
		args = append(args, "%"+core.EscapeLike(params.Location)+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s",
		eventFrom,
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY e.date ASC, e.id
		LIMIT $%d OFFSET $%d`,
		eventColumns, eventFrom, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var events []Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	return events, total, nil
}

func (r *repository) ListByHost(
	ctx context.Context,
	hostID string,
) ([]Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE e.host_id = $1
		ORDER BY e.date ASC, e.id`, eventColumns, eventFrom)

	var events []Event
	if err := r.db.SelectContext(ctx, &events, query, hostID); err != nil {
		return nil, fmt.Errorf("list hosted events: %w", err)
	}

	return events, nil
}

func (r *repository) MakePublic(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET premium_only = false, updated_at = NOW()
		WHERE id = $1 AND premium_only = true`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("make event public: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("make event public: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("make event public: %w", core.ErrConflict)
	}

	return nil
}

// FindDueReminders returns unnotified events whose date falls inside the
// given window. Runs on the caller's connection so the reminder job can
// scope it to a transaction.
func (r *repository) FindDueReminders(
	ctx context.Context,
	db core.DBTX,
	from, to time.Time,
) ([]Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE e.date >= $1
			AND e.date < $2
			AND e.reminder_sent = false
		ORDER BY e.date ASC, e.id`, eventColumns, eventFrom)

	var events []Event
	if err := db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("find due reminders: %w", err)
	}

	return events, nil
}

// MarkReminderSent flips the flag only when it is still false, so two
// overlapping reminder runs cannot both claim the same event.
func (r *repository) MarkReminderSent(
	ctx context.Context,
	db core.DBTX,
	id string,
) (bool, error) {
	query := `
		UPDATE events
		SET reminder_sent = true, updated_at = NOW()
		WHERE id = $1 AND reminder_sent = false`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}

	return rows > 0, nil
}
