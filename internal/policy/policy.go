// AngelaMos | 2026
// policy.go

// Package policy holds every access-control decision for the platform as a
// pure function. Handlers and services consult these instead of checking
// roles inline, so the rules live in exactly one place.
package policy

const (
	RoleGuest       = "guest"
	RolePremiumUser = "premium_user"
	RoleAdmin       = "admin"
)

// Actor is the authenticated identity every decision is made against.
type Actor struct {
	UserID string
	Role   string
}

// EventInfo is the slice of an event that policy decisions depend on.
type EventInfo struct {
	HostID      string
	PremiumOnly bool
}

func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RolePremiumUser, RoleAdmin:
		return true
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsPremium() bool {
	return a.Role == RolePremiumUser
}

// CanListEvent reports whether the actor may see the event in listings and
// detail views. Premium-only events are visible to admins and premium users.
func CanListEvent(actor Actor, event EventInfo) bool {
	if !event.PremiumOnly {
		return true
	}
	return actor.IsAdmin() || actor.IsPremium()
}

// CanCreateEvent reports whether the actor may create events at all.
// Guests cannot host.
func CanCreateEvent(actor Actor) bool {
	return actor.IsAdmin() || actor.IsPremium()
}

// CanEditEvent allows the host or an admin; either alone is sufficient.
func CanEditEvent(actor Actor, event EventInfo) bool {
	return actor.IsAdmin() || actor.UserID == event.HostID
}

// CanDeleteEvent is admin-only; even the host cannot delete.
func CanDeleteEvent(actor Actor) bool {
	return actor.IsAdmin()
}

// CanViewRoster allows the host or an admin to see who has RSVPed,
// including contact details.
func CanViewRoster(actor Actor, event EventInfo) bool {
	return actor.IsAdmin() || actor.UserID == event.HostID
}

// CanRemoveOthersRSVP follows the same rule as roster viewing.
func CanRemoveOthersRSVP(actor Actor, event EventInfo) bool {
	return CanViewRoster(actor, event)
}

// CanCreateAdmin restricts admin account creation to existing admins.
func CanCreateAdmin(actor Actor) bool {
	return actor.IsAdmin()
}
