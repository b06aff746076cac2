package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrAccountAlreadyLinked is returned when a patch would replace an
// existing connected-account id with a different one.
var ErrAccountAlreadyLinked = errors.New("mentor already linked to a different account")

// FirestoreMentorStore is a MentorStore backed by a Firestore collection.
type FirestoreMentorStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreMentorStore creates a mentor store over the given collection.
func NewFirestoreMentorStore(client *firestore.Client, collection string) *FirestoreMentorStore {
	return &FirestoreMentorStore{
		client:     client,
		collection: collection,
	}
}

func (s *FirestoreMentorStore) GetMentor(ctx context.Context, mentorID string) (*Mentor, error) {
	snap, err := s.client.Collection(s.collection).Doc(mentorID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting mentor %s: %w", mentorID, err)
	}

	var mentor Mentor
	if err := snap.DataTo(&mentor); err != nil {
		return nil, fmt.Errorf("decoding mentor %s: %w", mentorID, err)
	}
	mentor.ID = snap.Ref.ID

	return &mentor, nil
}

func (s *FirestoreMentorStore) SetStripeAccountID(ctx context.Context, mentorID, accountID string) error {
	existing, err := s.GetMentor(ctx, mentorID)
	if err != nil {
		return err
	}
	if existing.StripeAccountID != "" && existing.StripeAccountID != accountID {
		return ErrAccountAlreadyLinked
	}

	// Patch the two fields only; the rest of the document is not ours.
	_, err = s.client.Collection(s.collection).Doc(mentorID).Update(ctx, []firestore.Update{
		{Path: "stripeAccountId", Value: accountID},
		{Path: "stripeAccountUpdatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("updating mentor %s: %w", mentorID, err)
	}

	return nil
}
