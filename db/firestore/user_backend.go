// Package firestore implements a user backend on a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/user"
)

const (
	serviceDoc     = "wordgrid"
	usersPath      = "users"
	countersPath   = "counters"
	usersCounter   = "users"
	seqField       = "seq"
	userIDField    = "user_id"
	emailField     = "email"
	passwordField  = "password_hash"
	createdAtField = "created_at"
)

// UserBackend manages users in a firestore collection keyed by username.
type UserBackend struct {
	client   *firestore.Client
	timeFunc func() int64
	db.Config
}

// NewUserBackend creates a backend for users in the project's firestore database.
func NewUserBackend(ctx context.Context, cfg db.Config, projectID string, timeFunc func() int64) (*UserBackend, error) {
	if timeFunc == nil {
		return nil, fmt.Errorf("creating firestore user backend: time func required")
	}
	// do not timeout the context - the client outlives the call
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	ub := UserBackend{
		client:   client,
		timeFunc: timeFunc,
		Config:   cfg,
	}
	return &ub, nil
}

func (ub *UserBackend) users() *firestore.CollectionRef {
	return ub.client.Collection("services").Doc(serviceDoc).Collection(usersPath)
}

func (ub *UserBackend) counter() *firestore.DocumentRef {
	return ub.client.Collection("services").Doc(serviceDoc).Collection(countersPath).Doc(usersCounter)
}

// Create stores the user, assigning the next id from the counter document.
// The counter increment and the user document commit in one transaction, so
// duplicate usernames and skipped ids cannot happen.
func (ub *UserBackend) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.CreatedAt = ub.timeFunc()
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	err := ub.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counterRef := ub.counter()
		next := int64(1)
		snapshot, err := tx.Get(counterRef)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return fmt.Errorf("reading user id counter: %w", err)
		default:
			seq, err := snapshot.DataAt(seqField)
			if err != nil {
				return fmt.Errorf("reading user id counter value: %w", err)
			}
			next = seq.(int64) + 1
		}
		u.ID = next
		data := map[string]interface{}{
			userIDField:    u.ID,
			emailField:     u.Email,
			passwordField:  u.PasswordHash,
			createdAtField: u.CreatedAt,
		}
		if err := tx.Set(counterRef, map[string]interface{}{seqField: next}); err != nil {
			return fmt.Errorf("updating user id counter: %w", err)
		}
		if err := tx.Create(ub.users().Doc(u.Username), data); err != nil {
			return fmt.Errorf("creating user document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// Read returns the user with the username.
func (ub *UserBackend) Read(ctx context.Context, username string) (*user.User, error) {
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	snapshot, err := ub.users().Doc(username).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, user.ErrIncorrectLogin
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	var document struct {
		UserID       int64  `firestore:"user_id"`
		Email        string `firestore:"email"`
		PasswordHash string `firestore:"password_hash"`
		CreatedAt    int64  `firestore:"created_at"`
	}
	if err := snapshot.DataTo(&document); err != nil {
		return nil, fmt.Errorf("reading user data: %w", err)
	}
	u := user.User{
		ID:           document.UserID,
		Username:     username,
		Email:        document.Email,
		PasswordHash: document.PasswordHash,
		CreatedAt:    document.CreatedAt,
	}
	return &u, nil
}
