// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	valid, err := VerifyPassword("hunter2hunter2", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !valid {
		t.Error("correct password did not verify")
	}

	valid, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if valid {
		t.Error("wrong password verified")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=65536"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyPassword("password", tt.hash); err == nil {
				t.Errorf("VerifyPassword(%q) expected an error", tt.hash)
			}
		})
	}
}

func TestVerifyPasswordTimingSafeUnknownUser(t *testing.T) {
	// No stored hash means the caller is probing an unknown email; the
	// dummy verification must still run and the answer must be false.
	valid, newHash, err := VerifyPasswordTimingSafe("password", nil)
	if err != nil {
		t.Fatalf("VerifyPasswordTimingSafe(nil) error = %v", err)
	}
	if valid || newHash != "" {
		t.Errorf("VerifyPasswordTimingSafe(nil) = (%v, %q), want (false, \"\")",
			valid, newHash)
	}

	empty := ""
	valid, _, err = VerifyPasswordTimingSafe("password", &empty)
	if err != nil {
		t.Fatalf("VerifyPasswordTimingSafe(empty) error = %v", err)
	}
	if valid {
		t.Error("empty stored hash must never verify")
	}
}

func TestVerifyPasswordWithRehashUpgradesLegacyParams(t *testing.T) {
	password := "hunter2hunter2"
	legacySalt := []byte("0123456789abcdef")
	legacyMemory := uint32(32 * 1024)

	digest := argon2.IDKey(
		[]byte(password),
		legacySalt,
		argonTime,
		legacyMemory,
		argonThreads,
		argonKeyLen,
	)
	legacyHash := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		legacyMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(legacySalt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	valid, newHash, err := VerifyPasswordWithRehash(password, legacyHash)
	if err != nil {
		t.Fatalf("VerifyPasswordWithRehash() error = %v", err)
	}
	if !valid {
		t.Fatal("legacy hash did not verify")
	}
	if newHash == "" {
		t.Fatal("expected a rehash for outdated cost parameters")
	}

	valid, newHash, err = VerifyPasswordWithRehash(password, newHash)
	if err != nil {
		t.Fatalf("VerifyPasswordWithRehash() on upgraded hash error = %v", err)
	}
	if !valid {
		t.Error("upgraded hash did not verify")
	}
	if newHash != "" {
		t.Error("current-parameter hash must not trigger another rehash")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-a")
	c := HashToken("token-b")

	if a != b {
		t.Error("hashing the same token twice must be deterministic")
	}
	if a == c {
		t.Error("distinct tokens must not collide")
	}
	if len(a) != 64 {
		t.Errorf("HashToken() length = %d, want 64 hex chars", len(a))
	}
}
