// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/eventhub/internal/policy"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == policy.RoleAdmin
}

func (u *User) CanHostEvents() bool {
	return u.Role == policy.RoleAdmin || u.Role == policy.RolePremiumUser
}
