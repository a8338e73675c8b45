package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/notify"
	"github.com/abhisek/drill/internal/ui/theme"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Stream item-rated notifications from the Redis channel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			if e.channel == nil {
				return errors.New("no notify channel configured; set DRILL_NOTIFY_CHANNEL and DRILL_REDIS_ADDR")
			}
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			err := e.channel.Listen(ctx, func(ev notify.ItemRated) {
				lipgloss.Fprintln(w, formatEvent(ev))
			})
			if err != nil {
				return err
			}
			lipgloss.Fprintln(w, theme.Hint.Render(fmt.Sprintf("Listening on %s. Ctrl+C to stop.", e.cfg.NotifyChannel)))
			<-ctx.Done()
			return nil
		})
	},
}

func formatEvent(ev notify.ItemRated) string {
	name := ev.Label
	if name == "" {
		name = ev.Key
	}
	return fmt.Sprintf("%s  %s  q=%d  next %s (%s)",
		theme.Hint.Render(ev.At.Format("15:04:05")),
		name,
		ev.Quality,
		ev.NextReview.Format("2006-01-02"),
		days(ev.Interval),
	)
}
