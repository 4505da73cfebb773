// Package roster manages students and their console credentials.
package roster

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	// ErrNotFound means the student does not exist (or is cached as absent).
	ErrNotFound = errors.New("roster: student not found")
	// ErrDuplicateCode means a generated or supplied code is already taken.
	ErrDuplicateCode = errors.New("roster: student code already in use")
)

// Student is one enrolled student. Code is the system-generated unique
// identifier printed on the QR card and typed at check-in.
type Student struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Group       string    `json:"group"`
	Grade       string    `json:"grade"`
	Phone       string    `json:"phone"`
	ParentPhone string    `json:"parent_phone"`
	CreatedAt   time.Time `json:"created_at"`

	// Never serialized; only the auth service reads it.
	PasswordHash string `json:"-"`
}

// newCode produces a 6-digit student code. Collisions are handled by the
// caller retrying against the unique index.
func newCode(r *rand.Rand) string {
	return fmt.Sprintf("%06d", r.Intn(1000000))
}
