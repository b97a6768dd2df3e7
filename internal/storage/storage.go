// Package storage wraps database access behind narrow interfaces so the
// services can be exercised against in-memory fakes.
package storage

import (
	"errors"

	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateNickname = errors.New("nickname already in use")
)

type UserStore interface {
	// Create inserts the user, relying on the unique constraints on email
	// and nickname. Returns ErrDuplicateEmail or ErrDuplicateNickname when
	// the insert violates one of them.
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByNickname(nickname string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	All() ([]models.User, error)
}

type VerificationStore interface {
	// Upsert replaces the verification row governing the email, so a new
	// request supersedes any previous code for the same address.
	Upsert(v *models.EmailVerification) error
	FindByEmail(email string) (*models.EmailVerification, error)
	MarkVerified(email string) error
}

// uniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505) on the named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
