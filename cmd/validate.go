package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/sqlengine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every lesson's exercises and question bank for authoring errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		engine, err := sqlengine.Open(ctx, sqlengine.Options{
			StatementTimeout: cfg.Engine.StatementTimeout,
			Logger:           logger,
		})
		if err != nil {
			return err
		}
		defer engine.Close()

		report, err := lessons.Validate(ctx, engine)
		if err != nil {
			return err
		}
		for _, p := range report.Warnings() {
			fmt.Fprintln(cmd.ErrOrStderr(), p)
		}
		if err := report.Err(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d lessons OK (%d warnings)\n", lessons.Count(), len(report.Warnings()))
		return nil
	},
}
