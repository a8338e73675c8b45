package cmd

import (
	"errors"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/theme"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all practice data under the current prefix",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset deletes schedule, streak, timer and progress records; pass --yes to confirm")
		}
		return withEnv(cmd, func(e *env) error {
			if err := store.Reset(cmd.Context(), e.port); err != nil {
				return err
			}
			e.log.Info("data reset", "prefix", e.port.Prefix())
			lipgloss.Fprintf(cmd.OutOrStdout(), "%s %q\n", theme.Incorrect.Render("Reset"), e.port.Prefix())
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
