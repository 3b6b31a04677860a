package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

var checkCmd = &cobra.Command{
	Use:   "check <lesson> <exercise> <query>",
	Short: "Grade a query against one of a lesson's exercises",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := lessonArg(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(l.Exercises) {
			return fmt.Errorf("lesson %d has exercises 1 to %d, got %q", l.ID, len(l.Exercises), args[1])
		}
		query := strings.Join(args[2:], " ")

		svc, err := openServices(ctx, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		g := grader.New(svc.engine,
			grader.WithLedger(svc.ledger),
			grader.WithRecorder(svc.store.EventRepo()),
			grader.WithLogger(logger),
		)
		wasDone := svc.ledger.IsCompleted(l.ID)
		ex := l.ExerciseRef(n - 1)
		v, err := g.CheckExercise(ctx, ex, query)
		if err != nil {
			return err
		}

		diag := diagnose(ctx, svc.diagnosis, &diagnosis.ClassifyInput{
			Verdict:     v,
			Query:       query,
			Solution:    ex.Solution,
			LessonTitle: l.Title,
			Schema:      l.SchemaDisplay,
			Prompt:      l.Exercises[n-1].Instruction,
		})
		lipgloss.Println(components.VerdictView(v, diag, cliWidth))
		if v.Outcome != grader.UserError {
			lipgloss.Println()
			lipgloss.Println(components.NewResultTable(v.User, cfg.Engine.MaxRows).View(cliWidth))
		}
		if !wasDone && svc.ledger.IsCompleted(l.ID) {
			lipgloss.Println(theme.Correct.Render("Lesson complete! Every exercise is solved."))
		}
		return nil
	},
}

// diagnose classifies a wrong verdict, waiting for the LLM explanation
// when an explainer is configured.
func diagnose(ctx context.Context, svc *diagnosis.Service, input *diagnosis.ClassifyInput) *diagnosis.DiagnosisResult {
	if svc == nil || input.Verdict.Outcome == grader.Correct {
		return nil
	}
	return svc.DiagnoseWait(ctx, input)
}
