package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer svc.Close()

		stats, err := svc.store.EventRepo().AttemptStatsByLesson(cmd.Context())
		if err != nil {
			return fmt.Errorf("query attempt stats: %w", err)
		}
		byLesson := make(map[int]store.LessonAttemptStats, len(stats))
		var attempts, correct int
		for _, st := range stats {
			byLesson[st.LessonID] = st
			attempts += st.Attempts
			correct += st.Correct
		}

		rows := make([][]string, 0, lessons.Count())
		for _, l := range lessons.All() {
			st := byLesson[l.ID]
			status := ""
			if svc.ledger.IsCompleted(l.ID) {
				status = "✓"
			}
			rows = append(rows, []string{
				strconv.Itoa(l.ID), l.Title, status,
				fmt.Sprintf("%d/%d", svc.ledger.ExercisesDoneCount(l.ID, len(l.Exercises)), len(l.Exercises)),
				strconv.Itoa(svc.ledger.BestScore(l.ID)),
				strconv.Itoa(st.Exercises), strconv.Itoa(st.Tests), accuracy(st.Correct, st.Attempts),
			})
		}

		lipgloss.Println(cliTable([]string{"#", "Lesson", "Done", "Exercises", "Best", "Checks", "Answers", "Accuracy"}, rows))
		lipgloss.Printf("Completed %d of %d lessons. %d graded attempts, %s correct.\n",
			svc.ledger.CompletedCount(), lessons.Count(), attempts, accuracy(correct, attempts))
		return nil
	},
}

func accuracy(correct, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(correct)/float64(total)*100)
}
