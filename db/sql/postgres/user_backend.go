// Package postgres implements storage backends using SQL functions on a Postgres database.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/sql"
	"github.com/zlitery/wordgrid/db/user"
)

// UserBackend manages users on a Postgres database.
type UserBackend struct {
	Database db.Database
}

// NewUserBackend creates a backend that manages users on the database.
func NewUserBackend(database db.Database) (*UserBackend, error) {
	if database == nil {
		return nil, fmt.Errorf("creating user backend: database required")
	}
	ub := UserBackend{
		Database: database,
	}
	return &ub, nil
}

// Create stores the user by calling the user_create SQL function.
func (ub *UserBackend) Create(ctx context.Context, u user.User) (*user.User, error) {
	cols := []string{
		"id",
		"created_at",
	}
	q := sql.NewQueryFunction("user_create", cols, u.Username, u.Email, u.PasswordHash)
	row := ub.Database.Query(ctx, q)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// Read queries the database for the user by username.
func (ub *UserBackend) Read(ctx context.Context, username string) (*user.User, error) {
	cols := []string{
		"id",
		"username",
		"email",
		"password_hash",
		"created_at",
	}
	q := sql.NewQueryFunction("user_read", cols, username)
	row := ub.Database.Query(ctx, q)
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrIncorrectLogin
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}
