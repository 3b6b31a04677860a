package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

var testCmd = &cobra.Command{
	Use:   "test <lesson>",
	Short: "Take a lesson's test, answering on stdin",
	Long: `Take a lesson's test on the command line. Multiple-choice questions take
an option number or letter. Query answers may span lines and end with a line
holding a single ";" or a blank line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := lessonArg(args[0])
		if err != nil {
			return err
		}

		svc, err := openServices(ctx, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		questions, err := svc.generator.Start(ctx, l)
		if err != nil {
			return fmt.Errorf("draw test: %w", err)
		}
		ts := session.New(l, questions, svc.engine, svc.ledger,
			session.WithRecorder(svc.store.EventRepo()),
			session.WithLogger(logger),
		)
		if err := ts.Start(ctx); err != nil {
			return err
		}

		in := bufio.NewReader(cmd.InOrStdin())
		lipgloss.Println(theme.Title.Render(fmt.Sprintf("Lesson %d test: %s", l.ID, l.Title)))
		lipgloss.Println(theme.Hint.Render(l.SchemaDisplay))

		for {
			q, ok := ts.Current()
			if !ok {
				break
			}
			lipgloss.Println()
			lipgloss.Println(components.Heading(fmt.Sprintf("Question %d of %d", ts.Index()+1, ts.Total())))
			lipgloss.Println(q.Prompt)

			answer, err := readAnswer(in, q)
			if errors.Is(err, io.EOF) {
				_ = ts.Abandon()
				return errors.New("test abandoned: input ended")
			}
			if err != nil {
				return err
			}

			res, err := ts.Submit(ctx, answer)
			switch {
			case errors.Is(err, grader.ErrEmptySubmission), errors.Is(err, session.ErrInvalidChoice):
				lipgloss.Println(theme.Warning.Render("Please give an answer."))
				continue
			case err != nil && !res.Completed:
				return err
			case err != nil:
				logger.Error("failed to record test score", zap.Error(err))
				lipgloss.Println(theme.Warning.Render("Your score could not be saved."))
			}
			printAnswerFeedback(cmd, svc, l, q, answer, res)
		}

		printSummary(ts.Summary())
		return nil
	},
}

func readAnswer(in *bufio.Reader, q lessons.Question) (session.Answer, error) {
	if q.Type == lessons.MultipleChoice {
		for i, opt := range q.Options {
			lipgloss.Printf("  %d) %s\n", i+1, opt)
		}
		lipgloss.Print("Answer: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return session.Answer{}, err
		}
		return session.ChoiceAnswer(parseChoice(strings.TrimSpace(line))), nil
	}

	if q.Type == lessons.Fix {
		lipgloss.Println(theme.Code.Render(q.Broken))
	}
	lipgloss.Println(theme.Hint.Render("Enter your query, then a blank line:"))
	var b strings.Builder
	for {
		line, err := in.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && trimmed != ";" {
			b.WriteString(line)
		}
		if err != nil {
			if b.Len() == 0 {
				return session.Answer{}, err
			}
			break
		}
		if (trimmed == "" || trimmed == ";") && b.Len() > 0 {
			break
		}
	}
	return session.TextAnswer(strings.TrimSpace(b.String())), nil
}

// parseChoice reads "2" or "b" as option index 1. Anything else is out
// of range.
func parseChoice(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1
	}
	if len(s) == 1 {
		c := strings.ToLower(s)[0]
		if c >= 'a' && c <= 'z' {
			return int(c - 'a')
		}
	}
	if s == "" {
		return session.NoChoice
	}
	return -2
}

func printAnswerFeedback(cmd *cobra.Command, svc *services, l lessons.Lesson, q lessons.Question, a session.Answer, res session.AnswerResult) {
	if res.Verdict == nil {
		if res.Correct {
			lipgloss.Println(theme.Correct.Render("✓ Correct!"))
		} else {
			lipgloss.Println(theme.Incorrect.Render("✗ Not quite. The answer is " + q.Options[q.Answer] + "."))
		}
		return
	}
	diag := diagnose(cmd.Context(), svc.diagnosis, &diagnosis.ClassifyInput{
		Verdict:     *res.Verdict,
		Query:       a.Text,
		Solution:    q.Solution,
		LessonTitle: l.Title,
		Schema:      l.SchemaDisplay,
		Prompt:      q.Prompt,
	})
	lipgloss.Println(components.VerdictView(*res.Verdict, diag, cliWidth))
}

func printSummary(sum session.Summary) {
	lipgloss.Println()
	score := fmt.Sprintf("Score: %d/%d", sum.Score, sum.Total)
	if sum.Passed {
		lipgloss.Println(theme.Correct.Render("✓ Passed!  " + score))
	} else {
		lipgloss.Println(theme.Incorrect.Render("✗ Not passed.  " + score))
	}
	lipgloss.Println(theme.Hint.Render(sum.PassNote()))
	for i, item := range sum.Review {
		lipgloss.Printf("%s %d. %s: %s\n", components.Mark(item.Correct), i+1, item.Kind(), item.Prompt)
		if item.Expected != "" {
			lipgloss.Println(theme.Hint.Render("   Expected: " + item.Expected))
		}
	}
}
