package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/report"
	"github.com/abhisek/drill/internal/ui/theme"
)

var exportCmd = &cobra.Command{
	Use:   "export <path.xlsx>",
	Short: "Export schedule, strength and activity to a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return withEnv(cmd, func(e *env) error {
			ctx := cmd.Context()
			now := e.deps.Scheduler.Now()
			d := report.Data{
				GeneratedAt: now,
				Entries:     e.deps.Scheduler.All(ctx),
				Concepts:    e.deps.Strength.Concepts(ctx),
				Streak:      e.deps.Ledger.State(ctx),
			}
			if days > 0 {
				d.Days = e.deps.Ledger.ActivityBetween(ctx, now.AddDate(0, 0, 1-days), now)
			}
			if err := report.WriteFile(args[0], d); err != nil {
				return err
			}
			lipgloss.Fprintf(cmd.OutOrStdout(), "%s %d items to %s\n",
				theme.Correct.Render("Exported"), len(d.Entries), args[0])
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().Int("days", 30, "Days of activity history to include")
}
