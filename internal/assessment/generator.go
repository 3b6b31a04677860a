// Package assessment builds end-of-lesson tests from a lesson's question
// templates, optionally mixing in LLM-generated questions.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/lessons"
)

// ErrEmptyBank is returned for a lesson without question templates.
var ErrEmptyBank = errors.New("lesson has no question templates")

// Config controls test assembly.
type Config struct {
	// QuestionCount is the number of questions in a full test. Lessons
	// with a smaller bank get a shorter test.
	QuestionCount int

	// ShuffleOptions permutes multiple-choice options.
	ShuffleOptions bool

	// LLMQuestions is how many template questions may be swapped for
	// generated ones when a Source is configured.
	LLMQuestions int
}

// DefaultConfig returns the standard five-question configuration.
func DefaultConfig() Config {
	return Config{
		QuestionCount:  5,
		ShuffleOptions: true,
	}
}

// Generator assembles tests. It is not safe for concurrent use because it
// owns its random source.
type Generator struct {
	cfg        Config
	rng        *rand.Rand
	validators []Validator
	extra      Source
	checker    Validator
	log        *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests use a seeded one.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithValidators replaces the validator chain run on every question.
func WithValidators(vs ...Validator) Option {
	return func(g *Generator) { g.validators = vs }
}

// WithSource enables generated questions from src.
func WithSource(src Source) Option {
	return func(g *Generator) { g.extra = src }
}

// WithChecker replaces the execution check applied to generated questions.
func WithChecker(v Validator) Option {
	return func(g *Generator) { g.checker = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator.
func New(cfg Config, opts ...Option) *Generator {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	now := uint64(time.Now().UnixNano())
	g := &Generator{
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(now, now>>32)),
		validators: []Validator{&StructuralValidator{}},
		checker:    &ExecutionValidator{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("assessment")
	return g
}

// Start draws a test for lesson: a random subset of its templates, each
// instantiated with fresh parameters.
func (g *Generator) Start(ctx context.Context, lesson lessons.Lesson) ([]lessons.Question, error) {
	bank := lesson.Templates
	if len(bank) == 0 {
		return nil, fmt.Errorf("lesson %d: %w", lesson.ID, ErrEmptyBank)
	}

	n := min(g.cfg.QuestionCount, len(bank))
	questions := make([]lessons.Question, 0, n)
	for _, i := range g.rng.Perm(len(bank))[:n] {
		q := bank[i](g.rng)
		if verr := g.validate(ctx, &q, lesson, g.validators); verr != nil {
			g.log.Error("template question rejected",
				zap.Int("lesson", lesson.ID),
				zap.Int("template", i),
				zap.Error(verr),
			)
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("lesson %d: no valid questions: %w", lesson.ID, ErrEmptyBank)
	}

	if g.extra != nil && g.cfg.LLMQuestions > 0 {
		g.mixGenerated(ctx, lesson, questions)
	}

	if g.cfg.ShuffleOptions {
		for i := range questions {
			if questions[i].Type == lessons.MultipleChoice {
				questions[i] = g.shuffleOptions(questions[i])
			}
		}
	}
	return questions, nil
}

// mixGenerated replaces questions from the end of the test with generated
// ones. Any failure keeps the template question.
func (g *Generator) mixGenerated(ctx context.Context, lesson lessons.Lesson, questions []lessons.Question) {
	prior := make([]string, len(questions))
	for i, q := range questions {
		prior[i] = q.Prompt
	}

	want := min(g.cfg.LLMQuestions, len(questions))
	for k := range want {
		slot := len(questions) - 1 - k
		q, err := g.extra.Generate(ctx, GenerateInput{Lesson: lesson, PriorQuestions: prior})
		if err != nil {
			g.log.Warn("question generation failed", zap.Int("lesson", lesson.ID), zap.Error(err))
			continue
		}
		chain := append(append([]Validator(nil), g.validators...), g.checker)
		if verr := g.validate(ctx, q, lesson, chain); verr != nil {
			g.log.Info("generated question rejected", zap.Int("lesson", lesson.ID), zap.Error(verr))
			continue
		}
		questions[slot] = *q
		prior = append(prior, q.Prompt)
	}
}

func (g *Generator) validate(ctx context.Context, q *lessons.Question, lesson lessons.Lesson, chain []Validator) *ValidationError {
	for _, v := range chain {
		if v == nil {
			continue
		}
		if verr := v.Validate(ctx, q, lesson); verr != nil {
			return verr
		}
	}
	return nil
}

// shuffleOptions permutes the options of q and remaps its answer index.
func (g *Generator) shuffleOptions(q lessons.Question) lessons.Question {
	answer := q.Answer
	perm := g.rng.Perm(len(q.Options))
	options := make([]string, len(q.Options))
	for i, from := range perm {
		options[i] = q.Options[from]
		if from == answer {
			q.Answer = i
		}
	}
	q.Options = options
	return q
}
