// Package store provides access to mentor records in the document database.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a mentor record does not exist.
var ErrNotFound = errors.New("mentor not found")

// Mentor is the slice of a mentor record this service touches. The rest of
// the document is owned by other systems and never read or written here.
type Mentor struct {
	ID                     string    `firestore:"-"`
	StripeAccountID        string    `firestore:"stripeAccountId"`
	StripeAccountUpdatedAt time.Time `firestore:"stripeAccountUpdatedAt"`
}

// MentorStore reads and patches mentor records.
type MentorStore interface {
	// GetMentor returns the mentor record or ErrNotFound.
	GetMentor(ctx context.Context, mentorID string) (*Mentor, error)
	// SetStripeAccountID patches the connected-account id and its update
	// timestamp onto an existing mentor record. It never replaces a
	// non-empty id with a different value.
	SetStripeAccountID(ctx context.Context, mentorID, accountID string) error
}
