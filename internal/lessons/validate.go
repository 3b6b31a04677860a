package lessons

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/sqlquest/internal/grader"
)

// RecommendedBankSize is the smallest template bank that fills a full test.
const RecommendedBankSize = 5

// validationSeeds drive template sampling during validation.
var validationSeeds = []uint64{1, 2, 3, 5, 8, 13, 21, 34}

// Check reports the first structural defect in q.
func (q Question) Check() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("prompt is empty")
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("needs at least 2 options, has %d", len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		for i, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("option %d is empty", i)
			}
			if seen[o] {
				return fmt.Errorf("option %q is repeated", o)
			}
			seen[o] = true
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("answer index %d out of range", q.Answer)
		}
	case Write, Fix:
		if strings.TrimSpace(q.Solution) == "" {
			return fmt.Errorf("solution is empty")
		}
		if q.Type == Fix && strings.TrimSpace(q.Broken) == "" {
			return fmt.Errorf("fix question has no broken query")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

// Problem is one authoring defect.
type Problem struct {
	LessonID int
	Item     string
	Message  string
	Warning  bool
}

func (p Problem) String() string {
	level := "error"
	if p.Warning {
		level = "warning"
	}
	return fmt.Sprintf("%s: lesson %d %s: %s", level, p.LessonID, p.Item, p.Message)
}

// Report collects the problems found by Validate.
type Report struct {
	Problems []Problem
}

// Errors returns the problems that are not warnings.
func (r Report) Errors() []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if !p.Warning {
			out = append(out, p)
		}
	}
	return out
}

// Warnings returns the warnings.
func (r Report) Warnings() []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if p.Warning {
			out = append(out, p)
		}
	}
	return out
}

// Err combines every error into one, or returns nil.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, p := range errs {
		lines[i] = p.String()
	}
	return fmt.Errorf("lesson validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// Validate checks every lesson in the catalogue against engine.
func Validate(ctx context.Context, engine grader.Engine) (Report, error) {
	return ValidateLessons(ctx, engine, All())
}

// ValidateLessons checks ls for authoring defects: malformed questions,
// solutions that fail or do not grade correct against themselves, and
// data-changing solutions without a verification query. Templates are
// sampled once per validation seed. The returned error is reserved for
// an engine that cannot build a lesson database at all.
func ValidateLessons(ctx context.Context, engine grader.Engine, ls []Lesson) (Report, error) {
	v := &validator{engine: engine, grader: grader.New(engine)}
	for _, l := range ls {
		if err := v.lesson(ctx, l); err != nil {
			return v.report, err
		}
	}
	return v.report, nil
}

type validator struct {
	engine grader.Engine
	grader *grader.Grader
	report Report
}

func (v *validator) add(l Lesson, item, msg string, warning bool) {
	v.report.Problems = append(v.report.Problems, Problem{LessonID: l.ID, Item: item, Message: msg, Warning: warning})
}

func (v *validator) lesson(ctx context.Context, l Lesson) error {
	if strings.TrimSpace(l.Title) == "" {
		v.add(l, "title", "is empty", false)
	}
	if err := v.engine.Reinit(ctx, l.Schema); err != nil {
		v.add(l, "schema", err.Error(), false)
		return nil
	}

	if len(l.Exercises) == 0 {
		v.add(l, "exercises", "lesson has no exercises", false)
	}
	for i, ex := range l.Exercises {
		item := fmt.Sprintf("exercise %d", i+1)
		if strings.TrimSpace(ex.Instruction) == "" {
			v.add(l, item, "instruction is empty", false)
		}
		if strings.TrimSpace(ex.Solution) == "" {
			v.add(l, item, "solution is empty", false)
			continue
		}
		if err := v.selfGrade(ctx, l, item, ex.Solution, ex.Verify, ex.OrderSensitive); err != nil {
			return err
		}
	}

	switch n := len(l.Templates); {
	case n == 0:
		v.add(l, "templates", "template bank is empty", false)
	case n < RecommendedBankSize:
		v.add(l, "templates", fmt.Sprintf("only %d templates, tests will be shorter than %d questions", n, RecommendedBankSize), true)
	}

	graded := make(map[string]bool)
	for i, tpl := range l.Templates {
		for _, seed := range validationSeeds {
			q := tpl(rand.New(rand.NewPCG(seed, uint64(l.ID))))
			item := fmt.Sprintf("template %d (seed %d)", i+1, seed)
			if err := q.Check(); err != nil {
				v.add(l, item, err.Error(), false)
				continue
			}
			if !q.Graded() {
				continue
			}
			key := q.Solution + "\x00" + q.Verify
			if graded[key] {
				continue
			}
			graded[key] = true
			if err := v.selfGrade(ctx, l, item, q.Solution, q.Verify, q.OrderSensitive); err != nil {
				return err
			}
			if q.Type == Fix {
				v.brokenFails(ctx, l, item, q)
			}
		}
	}
	return nil
}

// selfGrade requires a solution to run and to grade correct against itself.
func (v *validator) selfGrade(ctx context.Context, l Lesson, item, solution, verify string, order *bool) error {
	if err := v.engine.Reinit(ctx, l.Schema); err != nil {
		return fmt.Errorf("lesson %d: %w", l.ID, err)
	}
	res := v.engine.Exec(ctx, solution)
	if res.Failed() {
		v.add(l, item, fmt.Sprintf("solution fails: %v", res.Err), false)
		return nil
	}
	if !res.Tabular() && verify == "" {
		v.add(l, item, "solution returns no rows and has no verification query", false)
		return nil
	}

	verdict, err := v.grader.Grade(ctx, grader.Submission{
		Schema:         l.Schema,
		Query:          solution,
		Solution:       solution,
		Verify:         verify,
		OrderSensitive: order,
	})
	switch {
	case err != nil:
		v.add(l, item, err.Error(), false)
	case verdict.Outcome != grader.Correct:
		v.add(l, item, fmt.Sprintf("solution grades %s against itself: %s", verdict.Outcome, verdict.Mismatch.Describe()), false)
	}
	return nil
}

// brokenFails warns when a fix question's broken query already passes.
func (v *validator) brokenFails(ctx context.Context, l Lesson, item string, q Question) {
	verdict, err := v.grader.Grade(ctx, q.Submission(l.Schema, q.Broken))
	if err == nil && verdict.Outcome == grader.Correct {
		v.add(l, item, "broken query already grades correct", true)
	}
}
