package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Spaced-repetition practice in the terminal",
	Long:  "drill schedules practice items with SM-2, builds review queues, tracks streaks and runs timed focus sessions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which stops foreground commands such as timer run and events.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides DRILL_DB env var)")
	pf.String("backend", "", "Storage backend: sqlite, redis or memory (overrides DRILL_BACKEND)")
	pf.String("prefix", "", "Record namespace, one per course (overrides DRILL_PREFIX)")
	pf.String("course", "", "Course manifest, .yaml or .xlsx (overrides DRILL_COURSE)")
	pf.String("env-file", "", "Environment file to load (default .env)")
	pf.String("module", "", "Restrict practice to one course module")
	pf.Int("size", 0, "Target queue size for weakest and mixed queues")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(weakestCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(strengthCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, envOptions{tui: true})
	if err != nil {
		return err
	}
	defer e.close()
	e.log.Info("tui started", "backend", e.cfg.Backend, "prefix", e.cfg.Prefix)
	return app.Run(e.deps)
}
