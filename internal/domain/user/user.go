package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMalformedRecord = errors.New("malformed user record")

// User is a record of the external user store. Lookups only ever read it.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository is the read side of the user store. FindAll returns every record
// of the collection in the store's iteration order, which implementations
// must keep deterministic.
type Repository interface {
	FindAll(ctx context.Context) ([]*User, error)
}

// Writer upserts records without overwriting. created is false when a user
// with the same ID already existed.
type Writer interface {
	Save(ctx context.Context, u *User) (created bool, err error)
}

// MatchesDisplayName reports whether the record's display name equals name,
// ignoring case.
func (u *User) MatchesDisplayName(name string) bool {
	return strings.ToLower(u.DisplayName) == strings.ToLower(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeDisplayName(name string) string {
	return strings.TrimSpace(name)
}

// MalformedRecordError describes a record that lacks a usable field.
func MalformedRecordError(id, field string) error {
	return fmt.Errorf("%w: record %q has no valid %s", ErrMalformedRecord, id, field)
}
