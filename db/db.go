// Package db defines how the server stores state so it survives restarts.
package db

import (
	"context"
	"io"
	"time"
)

type (
	// Database contains methods to create, read, update, and delete data.
	Database interface {
		// Setup initializes the database by reading the files.
		Setup(ctx context.Context, files []io.Reader) error
		// Query reads a single row from the database without updating it.
		Query(ctx context.Context, q Query) Scanner
		// QueryRows reads multiple rows from the database without updating it.
		QueryRows(ctx context.Context, q Query) (Rows, error)
		// Exec makes a change to existing data, creating/modifying/removing it.
		// All of the queries are run in a single transaction.
		Exec(ctx context.Context, queries ...Query) error
	}

	// Scanner reads a single row of data from the database.
	Scanner interface {
		// Scan reads from the database into the destination array.
		Scan(dest ...interface{}) error
	}

	// Rows reads multiple rows of data from the database.
	Rows interface {
		// Next prepares the next row for scanning, reporting whether there is one.
		Next() bool
		// Scan reads from the current row into the destination array.
		Scan(dest ...interface{}) error
		// Close releases the rows.  It is safe to call after Next returns false.
		Close() error
		// Err returns the error encountered while iterating, if any.
		Err() error
	}

	// Query is a message that is sent to the database.
	Query interface {
		// Cmd is the injection-safe message to send to the database.
		Cmd() string
		// Args are the user-provided properties of the message which should be escaped.
		Args() []interface{}
	}

	// Config contains fields shared by database backends.
	Config struct {
		// QueryPeriod is the amount of time each database operation can take before it is cancelled.
		QueryPeriod time.Duration
	}
)
