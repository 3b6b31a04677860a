// Package grader checks a learner's query against a reference solution.
package grader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/compare"
	"github.com/abhisek/sqlquest/internal/sqlengine"
)

// ErrEmptySubmission is returned when there is no query text to grade.
var ErrEmptySubmission = errors.New("submission is empty")

// ErrReferenceFailed wraps a reference solution or verification query that
// does not run. It is a content defect, not a learner mistake.
var ErrReferenceFailed = errors.New("reference query failed")

// Outcome is the result of grading one submission.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
	UserError
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case UserError:
		return "error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Engine is the part of a database session the grader drives.
type Engine interface {
	Reinit(ctx context.Context, schema string) error
	Exec(ctx context.Context, text string) sqlengine.Result
}

// Submission is one query to grade along with what it is graded against.
type Submission struct {
	Schema   string
	Query    string
	Solution string

	// Verify is run after a data-changing query to observe its effect.
	Verify string

	// OrderSensitive overrides the ORDER BY heuristic when set.
	OrderSensitive *bool
}

// Verdict is the graded outcome together with the results that produced it.
type Verdict struct {
	Outcome Outcome

	// User is what the learner's query itself returned.
	User sqlengine.Result

	// Observed and Expected are the two results that were compared. Without
	// a verification query Observed is the same as User.
	Observed sqlengine.Result
	Expected sqlengine.Result

	Mismatch compare.Mismatch
}

// Grader grades submissions against one database session. It rebuilds the
// database before every run and once more before returning.
type Grader struct {
	engine   Engine
	ledger   Ledger
	recorder Recorder
	log      *zap.Logger
}

// Option configures a Grader.
type Option func(*Grader)

// WithLedger records solved exercises in l.
func WithLedger(l Ledger) Option {
	return func(g *Grader) { g.ledger = l }
}

// WithRecorder appends every exercise attempt to r.
func WithRecorder(r Recorder) Option {
	return func(g *Grader) { g.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Grader) { g.log = l }
}

// New creates a Grader that runs queries on engine.
func New(engine Engine, opts ...Option) *Grader {
	g := &Grader{engine: engine, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("grader")
	return g
}

// Grade runs sub and compares it with the reference solution.
//
// Without a verification query the two query results are compared
// directly. With one, each side runs on its own fresh database, the
// verification query is run after it, and those two results are compared.
func (g *Grader) Grade(ctx context.Context, sub Submission) (v Verdict, err error) {
	if strings.TrimSpace(sub.Query) == "" {
		return Verdict{}, ErrEmptySubmission
	}

	defer func() {
		if rerr := g.engine.Reinit(ctx, sub.Schema); rerr != nil && err == nil {
			err = fmt.Errorf("reset database: %w", rerr)
		}
	}()

	ordered := compare.Resolve(sub.Solution, sub.OrderSensitive)

	if err := g.engine.Reinit(ctx, sub.Schema); err != nil {
		return Verdict{}, fmt.Errorf("reset database: %w", err)
	}
	v.User = g.engine.Exec(ctx, sub.Query)
	if v.User.Failed() {
		v.Outcome = UserError
		v.Mismatch = compare.Mismatch{Kind: compare.ErrorResult, Position: -1}
		return v, nil
	}
	v.Observed = v.User
	if sub.Verify != "" {
		// A failing verification here means the learner broke the table
		// the check reads, which is simply a wrong answer.
		v.Observed = g.engine.Exec(ctx, sub.Verify)
	}

	if err := g.engine.Reinit(ctx, sub.Schema); err != nil {
		return Verdict{}, fmt.Errorf("reset database: %w", err)
	}
	v.Expected = g.engine.Exec(ctx, sub.Solution)
	if v.Expected.Failed() {
		return v, fmt.Errorf("%w: solution: %v", ErrReferenceFailed, v.Expected.Err)
	}
	if sub.Verify != "" {
		v.Expected = g.engine.Exec(ctx, sub.Verify)
		if v.Expected.Failed() {
			return v, fmt.Errorf("%w: verify: %v", ErrReferenceFailed, v.Expected.Err)
		}
	}

	v.Mismatch = compare.Diff(v.Observed, v.Expected, ordered)
	if v.Mismatch.Kind == compare.Match {
		v.Outcome = Correct
	} else {
		v.Outcome = Incorrect
	}

	g.log.Debug("graded",
		zap.Stringer("outcome", v.Outcome),
		zap.String("mismatch", string(v.Mismatch.Kind)),
		zap.Bool("ordered", ordered),
		zap.Bool("verify", sub.Verify != ""),
	)
	return v, nil
}
