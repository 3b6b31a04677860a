package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent graded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		lesson, _ := cmd.Flags().GetInt("lesson")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.EventRepo().QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit, LessonID: lesson})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		rows := make([][]string, len(attempts))
		for i, a := range attempts {
			rows[i] = []string{
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				strconv.Itoa(a.LessonID),
				fmt.Sprintf("%s %d", a.Kind, a.Index+1),
				a.Outcome,
				session.Truncate(strings.Join(strings.Fields(a.Query), " "), 60),
			}
		}
		lipgloss.Println(cliTable([]string{"Time", "Lesson", "Item", "Outcome", "Query"}, rows))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().IntP("lesson", "l", 0, "Only show attempts for this lesson")
}
