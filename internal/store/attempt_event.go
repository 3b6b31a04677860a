package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var attemptColumns = []string{
	"id", "event_id", "sequence", "timestamp", "session_id", "lesson_id",
	"kind", "item_index", "query", "outcome", "mismatch",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns(attemptColumns[1:]...).
		Values(
			uuid.New().String(),
			seqNum,
			toMillis(time.Now()),
			data.SessionID,
			data.LessonID,
			string(data.Kind),
			data.Index,
			data.Query,
			data.Outcome,
			data.Mismatch,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptEventRecord
	for rows.Next() {
		var (
			rec  AttemptEventRecord
			ts   int64
			kind string
		)
		if err := rows.Scan(
			&rec.ID, &rec.EventID, &rec.Sequence, &ts, &rec.SessionID, &rec.LessonID,
			&kind, &rec.Index, &rec.Query, &rec.Outcome, &rec.Mismatch,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Kind = AttemptKind(kind)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) AttemptStatsByLesson(ctx context.Context) ([]LessonAttemptStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"lesson_id",
			entsql.As(entsql.Count("*"), "attempts"),
			"SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END) AS correct",
			"SUM(CASE WHEN kind = 'exercise' THEN 1 ELSE 0 END) AS exercises",
			"SUM(CASE WHEN kind = 'test' THEN 1 ELSE 0 END) AS tests",
		).
		From(entsql.Table(tableAttempts)).
		GroupBy("lesson_id").
		OrderBy("lesson_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var out []LessonAttemptStats
	for rows.Next() {
		var st LessonAttemptStats
		if err := rows.Scan(&st.LessonID, &st.Attempts, &st.Correct, &st.Exercises, &st.Tests); err != nil {
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
