// Package session runs an end-of-lesson test: a fixed list of questions
// answered in order, scored, and recorded in the progress ledger.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/store"
)

// Ledger receives finished test scores.
type Ledger interface {
	RecordTestScore(ctx context.Context, lessonID, score, total int) (bool, error)
	PassPercent() int
}

// TestSession is one run through a lesson test. It is not safe for
// concurrent use.
type TestSession struct {
	id        string
	lesson    lessons.Lesson
	questions []lessons.Question

	engine   grader.Engine
	grader   *grader.Grader
	ledger   Ledger
	recorder grader.Recorder
	log      *zap.Logger
	now      func() time.Time

	state    State
	index    int
	score    int
	answers  []AnswerRecord
	started  time.Time
	finished time.Time
}

// Option configures a TestSession.
type Option func(*TestSession)

// WithRecorder appends every answer to the attempt history.
func WithRecorder(r grader.Recorder) Option {
	return func(s *TestSession) { s.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *TestSession) { s.log = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TestSession) { s.now = now }
}

// New creates a session over questions drawn for lesson. A nil ledger
// runs the test without recording the score.
func New(lesson lessons.Lesson, questions []lessons.Question, engine grader.Engine, ledger Ledger, opts ...Option) *TestSession {
	s := &TestSession{
		id:        uuid.New().String(),
		lesson:    lesson,
		questions: slices.Clone(questions),
		engine:    engine,
		ledger:    ledger,
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("session").With(zap.String("session_id", s.id), zap.Int("lesson", lesson.ID))
	s.grader = grader.New(engine, grader.WithLogger(s.log))
	return s
}

// Start builds the lesson database and moves to the first question.
func (s *TestSession) Start(ctx context.Context) error {
	if s.state != NotStarted {
		return fmt.Errorf("start %s session: %w", s.state, ErrInvalidState)
	}
	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	if err := s.engine.Reinit(ctx, s.lesson.Schema); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}

	s.state = InProgress
	s.started = s.now()
	s.log.Info("test started", zap.Int("questions", len(s.questions)))
	return nil
}

// Submit answers the current question and advances. An empty answer
// returns grader.ErrEmptySubmission and changes nothing. A query that the
// engine rejects is scored incorrect and reported as grader.UserError.
func (s *TestSession) Submit(ctx context.Context, a Answer) (AnswerResult, error) {
	if s.state != InProgress {
		return AnswerResult{}, fmt.Errorf("submit to %s session: %w", s.state, ErrInvalidState)
	}

	q := s.questions[s.index]
	if err := checkAnswer(q, a); err != nil {
		return AnswerResult{}, err
	}

	if err := s.engine.Reinit(ctx, s.lesson.Schema); err != nil {
		return AnswerResult{}, fmt.Errorf("reset database: %w", err)
	}

	var res AnswerResult
	if q.Type == lessons.MultipleChoice {
		res.Correct = a.Choice == q.Answer
		res.Outcome = grader.Incorrect
		if res.Correct {
			res.Outcome = grader.Correct
		}
	} else {
		v, err := s.grader.Grade(ctx, q.Submission(s.lesson.Schema, a.Text))
		if err != nil {
			return AnswerResult{}, fmt.Errorf("grade question %d: %w", s.index+1, err)
		}
		res.Verdict = &v
		res.Outcome = v.Outcome
		res.Correct = v.Outcome == grader.Correct
	}

	s.answers = append(s.answers, AnswerRecord{Question: q, Answer: a, Correct: res.Correct, Outcome: res.Outcome})
	if res.Correct {
		s.score++
	}
	s.record(ctx, q, a, res)
	s.index++

	if s.index < len(s.questions) {
		return res, nil
	}

	s.state = Completed
	s.finished = s.now()
	res.Completed = true
	res.Passed = progress.Passed(s.score, len(s.questions), s.passPercent())
	s.log.Info("test completed", zap.Int("score", s.score), zap.Int("total", len(s.questions)), zap.Bool("passed", res.Passed))

	if s.ledger != nil {
		if _, err := s.ledger.RecordTestScore(ctx, s.lesson.ID, s.score, len(s.questions)); err != nil {
			return res, fmt.Errorf("record test score: %w", err)
		}
	}
	return res, nil
}

// Abandon ends the session without recording a score.
func (s *TestSession) Abandon() error {
	if s.state == Completed || s.state == Abandoned {
		return fmt.Errorf("abandon %s session: %w", s.state, ErrInvalidState)
	}
	s.log.Info("test abandoned", zap.Int("answered", len(s.answers)))
	s.state = Abandoned
	s.finished = s.now()
	return nil
}

func checkAnswer(q lessons.Question, a Answer) error {
	if q.Type == lessons.MultipleChoice {
		if a.Choice == NoChoice {
			return grader.ErrEmptySubmission
		}
		if a.Choice < 0 || a.Choice >= len(q.Options) {
			return fmt.Errorf("%w: %d", ErrInvalidChoice, a.Choice)
		}
		return nil
	}
	if strings.TrimSpace(a.Text) == "" {
		return grader.ErrEmptySubmission
	}
	return nil
}

func (s *TestSession) record(ctx context.Context, q lessons.Question, a Answer, res AnswerResult) {
	if s.recorder == nil {
		return
	}
	query := a.Text
	if q.Type == lessons.MultipleChoice {
		query = q.Options[a.Choice]
	}
	data := store.AttemptEventData{
		SessionID: s.id,
		LessonID:  s.lesson.ID,
		Kind:      store.AttemptKindTest,
		Index:     s.index,
		Query:     query,
		Outcome:   res.Outcome.String(),
	}
	if res.Verdict != nil {
		data.Mismatch = string(res.Verdict.Mismatch.Kind)
	}
	if err := s.recorder.AppendAttempt(ctx, data); err != nil {
		s.log.Warn("failed to record attempt", zap.Error(err))
	}
}

func (s *TestSession) passPercent() int {
	if s.ledger != nil {
		return s.ledger.PassPercent()
	}
	return progress.DefaultPassPercent
}

// ID returns the session's unique identifier.
func (s *TestSession) ID() string { return s.id }

// Lesson returns the lesson under test.
func (s *TestSession) Lesson() lessons.Lesson { return s.lesson }

// State returns the lifecycle state.
func (s *TestSession) State() State { return s.state }

// Index returns the zero-based position of the current question.
func (s *TestSession) Index() int { return s.index }

// Current returns the question awaiting an answer. The second result is
// false unless the session is in progress.
func (s *TestSession) Current() (lessons.Question, bool) {
	if s.state != InProgress {
		return lessons.Question{}, false
	}
	return s.questions[s.index], true
}

// Score returns the number of correct answers so far.
func (s *TestSession) Score() int { return s.score }

// Total returns the number of questions.
func (s *TestSession) Total() int { return len(s.questions) }

// Answers returns the answers given so far, in order.
func (s *TestSession) Answers() []AnswerRecord { return slices.Clone(s.answers) }
