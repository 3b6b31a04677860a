// Package sqlengine runs learner SQL against a throwaway in-memory SQLite
// database seeded from a lesson schema.
package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// NoRowsMessage is reported for a successful run that produced no result table.
const NoRowsMessage = "Query executed successfully. No rows returned."

// EngineError is an error raised by SQLite while running learner text.
type EngineError struct {
	Statement string
	Err       error
}

func (e *EngineError) Error() string {
	return e.Err.Error()
}

func (e *EngineError) Unwrap() error { return e.Err }

// IsEngineError reports whether err came from the database engine.
func IsEngineError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee)
}

// Options configures a Session.
type Options struct {
	// StatementTimeout bounds each statement. Zero means no limit.
	StatementTimeout time.Duration
	Logger           *zap.Logger
}

// Session owns one live in-memory database. Every Reinit throws the old
// database away and builds a new one from the schema script, so nothing
// written by an earlier query survives.
type Session struct {
	db     *sql.DB
	schema string
	opts   Options
	log    *zap.Logger
}

// Open creates a Session with an empty database.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Session{opts: opts, log: opts.Logger.Named("sqlengine")}
	if err := s.Reinit(ctx, ""); err != nil {
		return nil, err
	}
	return s, nil
}

// Reinit discards the current database and applies schema to a fresh one.
// The schema is remembered so Reset can rebuild the same baseline.
func (s *Session) Reinit(ctx context.Context, schema string) error {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// Each connection to ":memory:" is its own database, so pin the pool
	// to exactly one connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if strings.TrimSpace(schema) != "" {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	s.db = db
	s.schema = schema
	return nil
}

// Reset rebuilds the database from the last applied schema.
func (s *Session) Reset(ctx context.Context) error {
	return s.Reinit(ctx, s.schema)
}

// Schema returns the schema script the current database was built from.
func (s *Session) Schema() string {
	return s.schema
}

// Close releases the database.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Exec runs text, which may hold several statements separated by ';'.
// The first statement that yields columns supplies the result table; the
// remaining statements still run. Execution stops at the first error.
func (s *Session) Exec(ctx context.Context, text string) Result {
	if s.db == nil {
		return Result{Err: errors.New("database is closed")}
	}

	stmts := SplitStatements(text)
	if len(stmts) == 0 {
		return Result{Message: NoRowsMessage}
	}

	var res Result
	haveTable := false
	for _, stmt := range stmts {
		cols, rows, err := s.run(ctx, stmt)
		if err != nil {
			s.log.Debug("statement failed", zap.String("statement", stmt), zap.Error(err))
			return Result{Err: &EngineError{Statement: stmt, Err: err}}
		}
		if !haveTable && len(cols) > 0 {
			res.Columns = cols
			res.Rows = rows
			haveTable = true
		}
	}

	if !haveTable {
		res.Message = NoRowsMessage
	}
	return res
}

func (s *Session) run(ctx context.Context, stmt string) ([]string, [][]any, error) {
	if s.opts.StatementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.StatementTimeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(cols) > 0 && out == nil {
		out = [][]any{}
	}
	return cols, out, nil
}
