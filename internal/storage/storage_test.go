package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	emailViolation := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "matching constraint",
			err:        emailViolation,
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "wrapped matching constraint",
			err:        fmt.Errorf("insert failed: %w", emailViolation),
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "different constraint",
			err:        emailViolation,
			constraint: "idx_users_nickname",
			want:       false,
		},
		{
			name:       "different sqlstate",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "idx_users_email"},
			constraint: "idx_users_email",
			want:       false,
		},
		{
			name:       "not a pg error",
			err:        errors.New("connection refused"),
			constraint: "idx_users_email",
			want:       false,
		},
		{
			name:       "nil error",
			err:        nil,
			constraint: "idx_users_email",
			want:       false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, uniqueViolation(test.err, test.constraint))
		})
	}
}
