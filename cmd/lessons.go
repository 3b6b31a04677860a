package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons with your progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer svc.Close()

		current := svc.ledger.CurrentLesson()
		rows := make([][]string, 0, lessons.Count())
		for _, l := range lessons.All() {
			mark := " "
			if svc.ledger.IsCompleted(l.ID) {
				mark = "✓"
			}
			id := strconv.Itoa(l.ID)
			if l.ID == current {
				id = "▸" + id
			}
			best := "-"
			if b := svc.ledger.BestScore(l.ID); b > 0 {
				best = strconv.Itoa(b)
			}
			rows = append(rows, []string{
				mark, id, l.Title,
				fmt.Sprintf("%d/%d", svc.ledger.ExercisesDoneCount(l.ID, len(l.Exercises)), len(l.Exercises)),
				best,
			})
		}

		lipgloss.Println(cliTable([]string{"", "#", "Lesson", "Exercises", "Best"}, rows))
		lipgloss.Printf("%d of %d lessons completed\n", svc.ledger.CompletedCount(), lessons.Count())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <lesson>",
	Short: "Show a lesson's tables and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := lessonArg(args[0])
		if err != nil {
			return err
		}
		showSolutions, _ := cmd.Flags().GetBool("solutions")

		lipgloss.Println(theme.Title.Render(fmt.Sprintf("Lesson %d: %s", l.ID, l.Title)))
		lipgloss.Println(theme.Hint.Render(l.Theme))
		lipgloss.Println()
		lipgloss.Println(theme.Subtitle.Render("Tables"))
		lipgloss.Println(l.SchemaDisplay)
		lipgloss.Println()
		lipgloss.Println(theme.Subtitle.Render("Exercises"))
		for i, ex := range l.Exercises {
			lipgloss.Printf("%d. %s\n", i+1, ex.Instruction)
			if ex.Hint != "" {
				lipgloss.Println(theme.Hint.Render("   Hint: " + ex.Hint))
			}
			if showSolutions {
				lipgloss.Println(theme.Code.Render("   " + ex.Solution))
			}
		}
		lipgloss.Println()
		lipgloss.Println(theme.Hint.Render(fmt.Sprintf("Test bank: %d question templates", len(l.Templates))))
		return nil
	},
}

// cliTable renders rows with the theme's table styling.
func cliTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		String()
}

func init() {
	showCmd.Flags().Bool("solutions", false, "Also print exercise solutions")
}
