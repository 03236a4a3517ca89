// AngelaMos | 2026
// entity.go

package event

import (
	"time"

	"github.com/carterperez-dev/eventhub/internal/policy"
)

const (
	DefaultDescription = "No description available"
	DefaultImagePath   = "event_images/default_event.jpg"
)

type Event struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Date         time.Time `db:"date"`
	Location     string    `db:"location"`
	HostID       string    `db:"host_id"`
	HostUsername string    `db:"host_username"`
	ImagePath    string    `db:"image_path"`
	PremiumOnly  bool      `db:"premium_only"`
	ReminderSent bool      `db:"reminder_sent"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (e *Event) Info() policy.EventInfo {
	return policy.EventInfo{
		HostID:      e.HostID,
		PremiumOnly: e.PremiumOnly,
	}
}
