package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/llm"
	"github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/store"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		if purpose != "" {
			// Filter before limiting.
			opts.Limit = 0
		}
		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}

		var rows [][]string
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if limit > 0 && len(rows) == limit {
				break
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				session.Truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				components.Mark(e.Success),
			})
		}
		if len(rows) == 0 {
			lipgloss.Println("No LLM requests logged.")
			return nil
		}
		lipgloss.Println(cliTable([]string{"ID", "Time", "Purpose", "Model", "In", "Out", "ms", "OK"}, rows))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one logged request with its prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid request id %q", args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no LLM request with id %d", id)
		}

		field := func(name, value string) {
			lipgloss.Println(theme.Hint.Render(fmt.Sprintf("%-10s", name)) + value)
		}
		field("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field("Provider", e.Provider)
		field("Model", e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
		if p, ok := llm.PriceOf(e.Model); ok {
			field("Cost", usd(p.Cost(e.InputTokens, e.OutputTokens)))
		}
		field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
		if e.Success {
			field("Result", theme.Correct.Render("ok"))
		} else {
			field("Result", theme.Incorrect.Render(e.ErrorMessage))
		}

		for _, part := range []struct{ title, body string }{
			{"Request", e.RequestBody},
			{"Response", e.ResponseBody},
		} {
			lipgloss.Println()
			lipgloss.Println(components.Heading(part.title))
			if part.body == "" {
				lipgloss.Println(theme.Hint.Render("(empty)"))
				continue
			}
			lipgloss.Println(strings.TrimRight(part.body, "\n"))
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			lipgloss.Println("No LLM usage recorded yet.")
			return nil
		}
		rows := make([][]string, len(byPurpose))
		for i, u := range byPurpose {
			rows[i] = []string{
				u.Purpose, strconv.Itoa(u.Calls),
				strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
				fmt.Sprintf("%dms", u.AvgLatencyMs),
			}
		}
		lipgloss.Println(cliTable([]string{"Purpose", "Calls", "In", "Out", "Avg latency"}, rows))

		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		var total float64
		var unpriced []string
		rows = rows[:0]
		for _, u := range byModel {
			cost := "?"
			if p, ok := llm.PriceOf(u.Model); ok {
				c := p.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = usd(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			rows = append(rows, []string{u.Model, strconv.Itoa(u.Calls), cost})
		}
		lipgloss.Println(cliTable([]string{"Model", "Calls", "Est. cost"}, rows))

		summary := "Estimated total: " + usd(total)
		if len(unpriced) > 0 {
			summary += " (no price for " + strings.Join(unpriced, ", ") + ")"
		}
		lipgloss.Println(theme.Hint.Render(summary))
		return nil
	},
}

func usd(v float64) string {
	if v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (explain or question-gen)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
