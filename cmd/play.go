package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlquest/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the lessons in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := openServices(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer svc.Close()

	return app.Run(svc.deps())
}
