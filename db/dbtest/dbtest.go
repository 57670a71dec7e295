// Package dbtest contains mock databases for testing daos.
package dbtest

import (
	"context"
	"io"

	"github.com/zlitery/wordgrid/db"
)

type (
	// MockDatabase implements the db.Database interface.
	MockDatabase struct {
		// SetupFunc is called by Setup.
		SetupFunc func(ctx context.Context, files []io.Reader) error
		// QueryFunc is called by Query.
		QueryFunc func(ctx context.Context, q db.Query) db.Scanner
		// QueryRowsFunc is called by QueryRows.
		QueryRowsFunc func(ctx context.Context, q db.Query) (db.Rows, error)
		// ExecFunc is called by Exec.
		ExecFunc func(ctx context.Context, queries ...db.Query) error
	}

	// MockScanner implements the db.Scanner interface.
	MockScanner struct {
		// ScanFunc is called by Scan.
		ScanFunc func(dest ...interface{}) error
	}

	// MockRows implements the db.Rows interface over row values supplied as
	// arrays of scan destinations.
	MockRows struct {
		// Values holds one array of column values per row.
		Values [][]interface{}
		// ScanFunc copies the current row's values into the destination array.
		ScanFunc func(src []interface{}, dest ...interface{}) error
		row      int
	}
)

// Setup calls SetupFunc.
func (d MockDatabase) Setup(ctx context.Context, files []io.Reader) error {
	return d.SetupFunc(ctx, files)
}

// Query calls QueryFunc.
func (d MockDatabase) Query(ctx context.Context, q db.Query) db.Scanner {
	return d.QueryFunc(ctx, q)
}

// QueryRows calls QueryRowsFunc.
func (d MockDatabase) QueryRows(ctx context.Context, q db.Query) (db.Rows, error) {
	return d.QueryRowsFunc(ctx, q)
}

// Exec calls ExecFunc.
func (d MockDatabase) Exec(ctx context.Context, queries ...db.Query) error {
	return d.ExecFunc(ctx, queries...)
}

// Scan calls ScanFunc.
func (s MockScanner) Scan(dest ...interface{}) error {
	return s.ScanFunc(dest...)
}

// Next advances to the next row.
func (r *MockRows) Next() bool {
	if r.row >= len(r.Values) {
		return false
	}
	r.row++
	return true
}

// Scan calls ScanFunc with the current row's values.
func (r *MockRows) Scan(dest ...interface{}) error {
	return r.ScanFunc(r.Values[r.row-1], dest...)
}

// Close does nothing.
func (*MockRows) Close() error {
	return nil
}

// Err reports no error.
func (*MockRows) Err() error {
	return nil
}
