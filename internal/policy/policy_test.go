// AngelaMos | 2026
// policy_test.go

package policy

import "testing"

var (
	admin   = Actor{UserID: "u-admin", Role: RoleAdmin}
	premium = Actor{UserID: "u-premium", Role: RolePremiumUser}
	guest   = Actor{UserID: "u-guest", Role: RoleGuest}
)

func TestCanListEvent(t *testing.T) {
	publicEvent := EventInfo{HostID: "u-host", PremiumOnly: false}
	premiumEvent := EventInfo{HostID: "u-host", PremiumOnly: true}

	tests := []struct {
		name  string
		actor Actor
		event EventInfo
		want  bool
	}{
		{"guest sees public", guest, publicEvent, true},
		{"guest blocked from premium", guest, premiumEvent, false},
		{"premium sees premium", premium, premiumEvent, true},
		{"admin sees premium", admin, premiumEvent, true},
		{"admin sees public", admin, publicEvent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanListEvent(tt.actor, tt.event); got != tt.want {
				t.Errorf("CanListEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateEvent(t *testing.T) {
	if CanCreateEvent(guest) {
		t.Error("guest should not be able to create events")
	}
	if !CanCreateEvent(premium) {
		t.Error("premium user should be able to create events")
	}
	if !CanCreateEvent(admin) {
		t.Error("admin should be able to create events")
	}
}

func TestCanEditEvent(t *testing.T) {
	event := EventInfo{HostID: premium.UserID}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"host can edit", premium, true},
		{"admin can edit any", admin, true},
		{"other user cannot edit", guest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditEvent(tt.actor, event); got != tt.want {
				t.Errorf("CanEditEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteEvent(t *testing.T) {
	if CanDeleteEvent(premium) {
		t.Error("host role alone must not allow deletion")
	}
	if !CanDeleteEvent(admin) {
		t.Error("admin must be able to delete")
	}
}

func TestRosterRules(t *testing.T) {
	event := EventInfo{HostID: premium.UserID}

	// Roster viewing and removing another user's RSVP share one rule:
	// host OR admin, either alone is sufficient.
	for _, actor := range []Actor{admin, premium} {
		if !CanViewRoster(actor, event) {
			t.Errorf("actor %s should view roster", actor.UserID)
		}
		if !CanRemoveOthersRSVP(actor, event) {
			t.Errorf("actor %s should remove others' RSVPs", actor.UserID)
		}
	}

	if CanViewRoster(guest, event) {
		t.Error("non-host non-admin must not view roster")
	}
	if CanRemoveOthersRSVP(guest, event) {
		t.Error("non-host non-admin must not remove others' RSVPs")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleGuest, RolePremiumUser, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("superuser") {
		t.Error(`ValidRole("superuser") = true, want false`)
	}
}
