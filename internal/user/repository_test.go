// AngelaMos | 2026
// repository_test.go

package user

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/eventhub/internal/core"
)

func TestDuplicateFieldError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"email unique violation",
			&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			core.ErrEmailTaken,
		},
		{
			"username unique violation",
			&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			core.ErrUsernameTaken,
		},
		{
			"unique violation on an unrecognized constraint",
			&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"},
			core.ErrDuplicateKey,
		},
		{
			"wrapped unique violation",
			fmt.Errorf("create user: %w", &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "users_email_key",
			}),
			core.ErrEmailTaken,
		},
		{
			"foreign key violation passes through",
			&pgconn.PgError{Code: "23503"},
			nil,
		},
		{
			"non-pg error passes through",
			errors.New("connection reset"),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := duplicateFieldError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("duplicateFieldError() = %v, want %v", got, tt.want)
			}
		})
	}
}
