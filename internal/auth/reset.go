// AngelaMos | 2026
// reset.go

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/eventhub/internal/config"
	"github.com/carterperez-dev/eventhub/internal/core"
)

// ResetTokenManager issues stateless password-reset tokens. The HMAC covers
// the user ID, the expiry, and the current password hash, so a token dies
// the moment the password changes and nothing needs to be stored server-side.
type ResetTokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewResetTokenManager(cfg config.ResetConfig) *ResetTokenManager {
	return &ResetTokenManager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenExpire,
	}
}

// Issue returns a token of the form base64url(userID).expiryUnix.signature.
func (m *ResetTokenManager) Issue(userID, passwordHash string) string {
	expiry := time.Now().Add(m.ttl).Unix()

	uidPart := base64.RawURLEncoding.EncodeToString([]byte(userID))
	expiryPart := strconv.FormatInt(expiry, 10)
	sig := m.sign(userID, expiryPart, passwordHash)

	return uidPart + "." + expiryPart + "." + sig
}

// Verify returns the user ID embedded in a valid token. The caller supplies
// a lookup so the signature can be checked against the user's current
// password hash.
func (m *ResetTokenManager) Verify(
	token string,
	lookupHash func(userID string) (string, error),
) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenInvalid)
	}

	uidBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenInvalid)
	}
	userID := string(uidBytes)

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenInvalid)
	}

	if time.Now().Unix() > expiry {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenExpired)
	}

	passwordHash, err := lookupHash(userID)
	if err != nil {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenInvalid)
	}

	expected := m.sign(userID, parts[1], passwordHash)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return "", fmt.Errorf("reset token: %w", core.ErrTokenInvalid)
	}

	return userID, nil
}

func (m *ResetTokenManager) sign(userID, expiry, passwordHash string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(userID))
	mac.Write([]byte{0})
	mac.Write([]byte(expiry))
	mac.Write([]byte{0})
	mac.Write([]byte(passwordHash))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
