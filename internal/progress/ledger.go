package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/sqlquest/internal/store"
)

// StorageKey is the key the ledger is stored under.
const StorageKey = "sqlquest-progress"

// DefaultPassPercent is the test score, in percent, that completes a lesson.
const DefaultPassPercent = 60

// ErrLessonOutOfRange is returned for a lesson ID outside 1..LessonCount.
var ErrLessonOutOfRange = errors.New("lesson out of range")

// KV is the durable storage the ledger writes through to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Ledger is the in-memory progress record, flushed after every change.
// It is not safe for concurrent use.
type Ledger struct {
	kv          KV
	key         string
	sizes       []int
	passPercent int
	maxScore    int
	log         *zap.Logger

	rec Record
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Ledger) { g.log = l }
}

// WithPassPercent sets the test score that completes a lesson.
func WithPassPercent(p int) Option {
	return func(g *Ledger) { g.passPercent = p }
}

// WithMaxScore caps stored best scores at n, the number of questions in a
// test. Zero leaves scores uncapped.
func WithMaxScore(n int) Option {
	return func(g *Ledger) { g.maxScore = n }
}

// WithKey stores the record under key instead of StorageKey.
func WithKey(key string) Option {
	return func(g *Ledger) { g.key = key }
}

// Load reads the ledger from kv. sizes holds the exercise count of each
// lesson in ID order. A missing, unreadable or incompatible record yields
// the default ledger; only a storage failure is returned as an error.
func Load(ctx context.Context, kv KV, sizes []int, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		kv:          kv,
		key:         StorageKey,
		sizes:       sizes,
		passPercent: DefaultPassPercent,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("progress")

	raw, err := kv.Get(ctx, l.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.rec = Default(sizes)
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("load progress: %w", err)
	}

	l.rec = decode(raw, sizes, l.maxScore, l.log)
	return l, nil
}

// decode parses raw field by field so that one bad field only resets itself.
func decode(raw []byte, sizes []int, maxScore int, log *zap.Logger) Record {
	rec := Default(sizes)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		log.Warn("progress record unreadable, starting fresh", zap.Error(err))
		return rec
	}

	if v, ok := fields["version"]; ok {
		var version string
		if err := json.Unmarshal(v, &version); err != nil || !semver.IsValid(version) {
			log.Warn("progress record has a bad version, starting fresh", zap.ByteString("version", v))
			return rec
		}
		if semver.Major(version) != semver.Major(RecordVersion) {
			log.Warn("progress record version is incompatible, starting fresh",
				zap.String("stored", version), zap.String("current", RecordVersion))
			return rec
		}
	}

	decodeField(fields, "currentLessonId", &rec.CurrentLessonID, log)
	decodeField(fields, "completed", &rec.Completed, log)
	decodeField(fields, "bestScore", &rec.BestScore, log)
	decodeField(fields, "exercisesDone", &rec.ExercisesDone, log)

	rec.normalize(sizes, maxScore)
	return rec
}

func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T, log *zap.Logger) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("progress field unreadable, using default", zap.String("field", name), zap.Error(err))
		return
	}
	*dst = v
}

// Save writes the whole record.
func (l *Ledger) Save(ctx context.Context) error {
	data, err := json.Marshal(l.rec)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := l.kv.Set(ctx, l.key, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Reset restores the default record and erases the stored copy.
func (l *Ledger) Reset(ctx context.Context) error {
	l.rec = Default(l.sizes)
	if err := l.kv.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// SetCurrentLesson remembers which lesson the learner has open.
func (l *Ledger) SetCurrentLesson(ctx context.Context, lessonID int) error {
	if err := checkLesson(lessonID); err != nil {
		return err
	}
	if l.rec.CurrentLessonID == lessonID {
		return nil
	}
	l.rec.CurrentLessonID = lessonID
	return l.Save(ctx)
}

// MarkExerciseDone flags an exercise as solved. Once all total exercises
// of the lesson are solved the lesson is completed.
func (l *Ledger) MarkExerciseDone(ctx context.Context, lessonID, index, total int) error {
	if err := checkLesson(lessonID); err != nil {
		return err
	}
	if index < 0 || index >= total {
		return fmt.Errorf("exercise %d of lesson %d: index out of range", index, lessonID)
	}

	i := lessonID - 1
	row := resizeBools(l.rec.ExercisesDone[i], total)
	row[index] = true
	l.rec.ExercisesDone[i] = row

	if allDone(row, total) && !l.rec.Completed[i] {
		l.rec.Completed[i] = true
		l.log.Info("lesson completed by exercises", zap.Int("lesson", lessonID))
	}
	return l.Save(ctx)
}

// RecordTestScore keeps the best test score for a lesson and completes the
// lesson when the score passes. It reports whether the score passed.
func (l *Ledger) RecordTestScore(ctx context.Context, lessonID, score, total int) (bool, error) {
	if err := checkLesson(lessonID); err != nil {
		return false, err
	}

	i := lessonID - 1
	l.rec.BestScore[i] = max(l.rec.BestScore[i], score)

	passed := Passed(score, total, l.passPercent)
	if passed && !l.rec.Completed[i] {
		l.rec.Completed[i] = true
		l.log.Info("lesson completed by test", zap.Int("lesson", lessonID), zap.Int("score", score), zap.Int("total", total))
	}
	return passed, l.Save(ctx)
}

// PassPercent returns the test score, in percent, that completes a lesson.
func (l *Ledger) PassPercent() int {
	return l.passPercent
}

// Snapshot returns a copy of the current record.
func (l *Ledger) Snapshot() Record {
	return l.rec.Clone()
}

// CurrentLesson returns the lesson the learner last opened.
func (l *Ledger) CurrentLesson() int {
	return l.rec.CurrentLessonID
}

// IsCompleted reports whether a lesson is completed.
func (l *Ledger) IsCompleted(lessonID int) bool {
	if checkLesson(lessonID) != nil {
		return false
	}
	return l.rec.Completed[lessonID-1]
}

// BestScore returns the best test score for a lesson.
func (l *Ledger) BestScore(lessonID int) int {
	if checkLesson(lessonID) != nil {
		return 0
	}
	return l.rec.BestScore[lessonID-1]
}

// ExerciseDone reports whether an exercise has been solved.
func (l *Ledger) ExerciseDone(lessonID, index int) bool {
	if checkLesson(lessonID) != nil {
		return false
	}
	row := l.rec.ExercisesDone[lessonID-1]
	return index >= 0 && index < len(row) && row[index]
}

// ExercisesDoneCount returns how many of the first total exercises are solved.
func (l *Ledger) ExercisesDoneCount(lessonID, total int) int {
	n := 0
	for i := range total {
		if l.ExerciseDone(lessonID, i) {
			n++
		}
	}
	return n
}

// CompletedCount returns the number of completed lessons.
func (l *Ledger) CompletedCount() int {
	n := 0
	for _, c := range l.rec.Completed {
		if c {
			n++
		}
	}
	return n
}

func checkLesson(id int) error {
	if id < 1 || id > LessonCount {
		return fmt.Errorf("%w: %d", ErrLessonOutOfRange, id)
	}
	return nil
}
