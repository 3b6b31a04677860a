package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/config"
	"github.com/abhisek/sqlquest/internal/logging"
	"github.com/abhisek/sqlquest/internal/store"
)

var (
	cfg        *config.Config
	logger     = zap.NewNop()
	closeLog   = func() error { return nil }
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "sqlquest",
	Short: "Learn SQL in your terminal",
	Long:  "SQLQuest: twenty hands-on SQL lessons with a sandbox, graded exercises and end-of-lesson tests.",
	// Errors are printed once by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		log, closer, err := logging.New(logging.Options{
			File:    c.Log.File,
			Level:   c.Log.Level,
			Verbose: c.Log.Verbose,
		})
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		logger, closeLog = log, closer
		logger.Debug("command started", zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a sqlquest.yaml config file")
	pf.String("db", "", "Path to SQLite database file (overrides SQLQUEST_DB env var)")
	pf.BoolP("verbose", "v", false, "Also log to stderr")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path from --db, SQLQUEST_DB or the
// config file, falling back to the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the durable store at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
