package cmd

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/ui/components"
)

// cliWidth is the width result tables are fitted to on stdout.
const cliWidth = 120

var runCmd = &cobra.Command{
	Use:   "run <lesson> <query>",
	Short: "Run a query against a fresh copy of a lesson's database",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := lessonArg(args[0])
		if err != nil {
			return err
		}
		query := strings.Join(args[1:], " ")

		svc, err := openServices(ctx, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.engine.Reinit(ctx, l.Schema); err != nil {
			return err
		}
		res := svc.engine.Exec(ctx, query)
		lipgloss.Println(components.NewResultTable(res, cfg.Engine.MaxRows).View(cliWidth))
		return nil
	},
}
