// AngelaMos | 2026
// reset_test.go

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/carterperez-dev/eventhub/internal/config"
	"github.com/carterperez-dev/eventhub/internal/core"
)

func newTestResetManager(ttl time.Duration) *ResetTokenManager {
	return NewResetTokenManager(config.ResetConfig{
		Secret:      "test-secret",
		TokenExpire: ttl,
	})
}

func TestResetTokenRoundTrip(t *testing.T) {
	m := newTestResetManager(time.Hour)

	token := m.Issue("user-1", "argon-hash-abc")

	userID, err := m.Verify(token, func(uid string) (string, error) {
		if uid != "user-1" {
			t.Fatalf("lookup called with %q, want user-1", uid)
		}
		return "argon-hash-abc", nil
	})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Verify() userID = %q, want user-1", userID)
	}
}

func TestResetTokenExpired(t *testing.T) {
	m := newTestResetManager(-time.Minute)

	token := m.Issue("user-1", "argon-hash-abc")

	_, err := m.Verify(token, func(string) (string, error) {
		return "argon-hash-abc", nil
	})
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestResetTokenDiesWithPasswordChange(t *testing.T) {
	m := newTestResetManager(time.Hour)

	token := m.Issue("user-1", "old-hash")

	// The password changed after the token was issued, so the signature
	// no longer matches.
	_, err := m.Verify(token, func(string) (string, error) {
		return "new-hash", nil
	})
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestResetTokenMalformed(t *testing.T) {
	m := newTestResetManager(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"missing parts", "abc.123"},
		{"bad base64", "!!!.123.sig"},
		{"bad expiry", "dXNlcg.notanumber.sig"},
		{"tampered signature", m.Issue("user-1", "hash") + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token, func(string) (string, error) {
				return "hash", nil
			})
			if !errors.Is(err, core.ErrTokenInvalid) {
				t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid",
					tt.token, err)
			}
		})
	}
}

func TestResetTokenWrongSecret(t *testing.T) {
	issuer := newTestResetManager(time.Hour)
	verifier := NewResetTokenManager(config.ResetConfig{
		Secret:      "different-secret",
		TokenExpire: time.Hour,
	})

	token := issuer.Issue("user-1", "hash")

	_, err := verifier.Verify(token, func(string) (string, error) {
		return "hash", nil
	})
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}
