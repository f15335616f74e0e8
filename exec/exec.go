// Package exec bridges rendered statements to database/sql. It converts a
// Result's named parameters to the positional form a driver expects and runs
// the statement under a context.
package exec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sqlbind/sqlbind"
)

// Querier is the read/write surface exec needs; *sql.DB, *sql.Tx and
// *sql.Conn all satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Runner pairs a database handle with the positional marker style its driver
// expects.
type Runner struct {
	db     Querier
	marker sqlbind.Marker
}

// New creates a Runner. Pass sqlbind.Question for database/sql drivers such
// as SQLite and MySQL, sqlbind.Dollar for pgx, sqlbind.AtName for
// go-mssqldb.
func New(db Querier, marker sqlbind.Marker) *Runner {
	return &Runner{db: db, marker: marker}
}

// Query runs a row-returning statement.
func (r *Runner) Query(ctx context.Context, res *sqlbind.Result) (*sql.Rows, error) {
	if err := res.Verify(); err != nil {
		return nil, err
	}
	text, args := res.Positional(r.marker)
	return r.db.QueryContext(ctx, text, args...)
}

// QueryRow runs a statement expected to return at most one row.
func (r *Runner) QueryRow(ctx context.Context, res *sqlbind.Result) (*sql.Row, error) {
	if err := res.Verify(); err != nil {
		return nil, err
	}
	text, args := res.Positional(r.marker)
	return r.db.QueryRowContext(ctx, text, args...), nil
}

// Exec runs a statement for its side effects.
func (r *Runner) Exec(ctx context.Context, res *sqlbind.Result) (sql.Result, error) {
	if err := res.Verify(); err != nil {
		return nil, err
	}
	text, args := res.Positional(r.marker)
	return r.db.ExecContext(ctx, text, args...)
}

// Writer executes one template statement repeatedly with per-row value
// maps. The named-to-positional conversion happens once at construction;
// each Write only assembles the argument slice for its row.
type Writer struct {
	db    Querier
	text  string
	names []string
}

// NewWriter prepares a Writer for a template Result. The marker follows the
// same driver conventions as New.
func NewWriter(db Querier, marker sqlbind.Marker, res *sqlbind.Result) *Writer {
	text, names := res.PositionalNames(marker)
	return &Writer{db: db, text: text, names: names}
}

// Write executes the statement with one row's values. Every placeholder
// name must be present in the map.
func (w *Writer) Write(ctx context.Context, row map[string]any) (sql.Result, error) {
	args := make([]any, len(w.names))
	for i, name := range w.names {
		v, ok := row[name]
		if !ok {
			return nil, fmt.Errorf("exec: row is missing a value for %q", name)
		}
		args[i] = v
	}
	return w.db.ExecContext(ctx, w.text, args...)
}

// WriteAll executes the statement once per row and returns the summed
// affected-row count. It stops at the first failing row.
func (w *Writer) WriteAll(ctx context.Context, rows []map[string]any) (int64, error) {
	var total int64
	for i, row := range rows {
		res, err := w.Write(ctx, row)
		if err != nil {
			return total, fmt.Errorf("exec: row %d: %w", i+1, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}
