// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/eventhub/internal/core"
)

// PlatformCounts is the admin dashboard's one-row summary of the platform.
type PlatformCounts struct {
	TotalUsers       int `db:"total_users"        json:"total_users"`
	PremiumUsers     int `db:"premium_users"      json:"premium_users"`
	Admins           int `db:"admins"             json:"admins"`
	TotalEvents      int `db:"total_events"       json:"total_events"`
	PremiumEvents    int `db:"premium_events"     json:"premium_events"`
	PendingReminders int `db:"pending_reminders"  json:"pending_reminders"`
	TotalRSVPs       int `db:"total_rsvps"        json:"total_rsvps"`
	GoingRSVPs       int `db:"going_rsvps"        json:"going_rsvps"`
}

type Repository interface {
	Counts(ctx context.Context) (*PlatformCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*PlatformCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users)                                          AS total_users,
			(SELECT COUNT(*) FROM users  WHERE role = 'premium_user')             AS premium_users,
			(SELECT COUNT(*) FROM users  WHERE role = 'admin')                    AS admins,
			(SELECT COUNT(*) FROM events)                                         AS total_events,
			(SELECT COUNT(*) FROM events WHERE premium_only = true)               AS premium_events,
			(SELECT COUNT(*) FROM events WHERE reminder_sent = false
				AND date > NOW())                                                 AS pending_reminders,
			(SELECT COUNT(*) FROM rsvps)                                          AS total_rsvps,
			(SELECT COUNT(*) FROM rsvps  WHERE status = 'going')                  AS going_rsvps`

	var counts PlatformCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}

	return &counts, nil
}
