package user

import (
	"context"
	"errors"
	"fmt"
)

type (
	// Dao contains the operations to create and authenticate users.
	Dao struct {
		DaoConfig
	}

	// DaoConfig is used to create user daos.
	DaoConfig struct {
		// Backend stores the users.
		Backend Backend
		// PasswordHandler hashes new passwords and checks supplied ones.
		PasswordHandler PasswordHandler
	}

	// Backend stores users.  Implementations exist for postgres, mongo, and firestore.
	Backend interface {
		// Create stores the user, assigning its ID.
		// The username and email must not already be taken.
		Create(ctx context.Context, u User) (*User, error)
		// Read returns the user with the username.
		// ErrIncorrectLogin is returned when no user has the username.
		Read(ctx context.Context, username string) (*User, error)
	}

	// PasswordHandler hashes and checks passwords.
	PasswordHandler interface {
		// Hash computes the hash to store for the password.
		Hash(password string) ([]byte, error)
		// IsCorrect determines if the hashed password matches the supplied password.
		IsCorrect(hashedPassword []byte, password string) (bool, error)
	}
)

// NewDao creates a Dao on the backend.
func (cfg DaoConfig) NewDao() (*Dao, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating user dao: validation: %w", err)
	}
	d := Dao{
		DaoConfig: cfg,
	}
	return &d, nil
}

// validate checks fields to set up the dao.
func (cfg DaoConfig) validate() error {
	switch {
	case cfg.Backend == nil:
		return fmt.Errorf("backend required")
	case cfg.PasswordHandler == nil:
		return fmt.Errorf("password handler required")
	}
	return nil
}

// Create adds a user with the username, email, and password.
func (d *Dao) Create(ctx context.Context, username, email, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hashedPassword, err := d.PasswordHandler.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	u2, err := d.Backend.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u2, nil
}

// Login returns the user with the username if the password is correct.
// ErrIncorrectLogin is returned for a bad username or password so callers
// cannot tell which was wrong.
func (d *Dao) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := d.Backend.Read(ctx, username)
	if err != nil {
		if errors.Is(err, ErrIncorrectLogin) {
			return nil, ErrIncorrectLogin
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	isCorrect, err := d.PasswordHandler.IsCorrect([]byte(u.PasswordHash), password)
	switch {
	case err != nil:
		return nil, fmt.Errorf("checking password: %w", err)
	case !isCorrect:
		return nil, ErrIncorrectLogin
	}
	return u, nil
}
