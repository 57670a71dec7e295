// Package sql implements a SQL database.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/zlitery/wordgrid/db"
)

type (
	// Database is a SQL implementation of db.Database.
	Database struct {
		db *sql.DB
		DatabaseConfig
	}

	// DatabaseConfig is used to create SQL databases.
	DatabaseConfig struct {
		// DriverName is the name of the registered database/sql driver.
		DriverName string
		// DatabaseURL is the connection URI of the database.
		DatabaseURL string
		db.Config
	}
)

// ErrNoRows is returned by the Scanner when there are no rows to scan.
var ErrNoRows = sql.ErrNoRows

// NewDatabase opens the database from the config.
func (cfg DatabaseConfig) NewDatabase() (*Database, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating database: validation: %w", err)
	}
	sqlDB, err := sql.Open(cfg.DriverName, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	d := Database{
		db:             sqlDB,
		DatabaseConfig: cfg,
	}
	return &d, nil
}

// validate ensures the configuration has no errors.
func (cfg DatabaseConfig) validate() error {
	switch {
	case len(cfg.DriverName) == 0:
		return fmt.Errorf("driver name required")
	case len(cfg.DatabaseURL) == 0:
		return fmt.Errorf("database url required")
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// Setup initializes the database by reading the files and executing their contents as raw queries.
func (d *Database) Setup(ctx context.Context, files []io.Reader) error {
	queries := make([]db.Query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = RawQuery(b)
	}
	if err := d.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries: %w", err)
	}
	return nil
}

// Query reads a single row from the database.
// Errors are deferred until the returned Scanner is used.
func (d *Database) Query(ctx context.Context, q db.Query) db.Scanner {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	return d.db.QueryRowContext(ctx, q.Cmd(), q.Args()...)
}

// QueryRows reads multiple rows from the database.
func (d *Database) QueryRows(ctx context.Context, q db.Query) (db.Rows, error) {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	rows, err := d.db.QueryContext(ctx, q.Cmd(), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	return rows, nil
}

// Exec evaluates the queries in a transaction, ensuring each ExecFunction only updates one row.
func (d *Database) Exec(ctx context.Context, queries ...db.Query) error {
	ctx, cancelFunc := context.WithTimeout(ctx, d.QueryPeriod)
	defer cancelFunc()
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for i, q := range queries {
		result, err := tx.ExecContext(ctx, q.Cmd(), q.Args()...)
		if f, ok := q.(ExecFunction); err == nil && ok {
			var n int64
			n, err = result.RowsAffected()
			if err == nil && n != 1 {
				err = fmt.Errorf("wanted to update 1 row, but updated %d when calling %s", n, f.name)
			}
		}
		if err != nil {
			err = fmt.Errorf("executing query %v: %w", i, err)
			if err2 := tx.Rollback(); err2 != nil {
				return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
