package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/phase"
	"github.com/abhisek/drill/internal/ui/theme"
)

var errNoTimer = errors.New("no timer session; run `drill timer start`")

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Control the timed practice session",
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a fresh session, beginning with prep",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			printPhase(cmd.OutOrStdout(), e.deps.Timer, e.deps.Timer.Start(cmd.Context()))
			return nil
		})
	},
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	Args:  cobra.NoArgs,
	RunE: timerUpdate(func(ctx context.Context, en *phase.Engine) (phase.State, bool) {
		return en.Pause(ctx)
	}),
}

var timerResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	Args:  cobra.NoArgs,
	RunE: timerUpdate(func(ctx context.Context, en *phase.Engine) (phase.State, bool) {
		return en.Resume(ctx)
	}),
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current phase and time left",
	Args:  cobra.NoArgs,
	RunE: timerUpdate(func(ctx context.Context, en *phase.Engine) (phase.State, bool) {
		return en.State(ctx)
	}),
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			e.deps.Timer.Reset(cmd.Context())
			lipgloss.Fprintln(cmd.OutOrStdout(), theme.Hint.Render("Timer reset."))
			return nil
		})
	},
}

var timerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the session in the foreground until it pauses or Ctrl+C",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remind, _ := cmd.Flags().GetDuration("remind")
		return withEnv(cmd, func(e *env) error {
			ctx := cmd.Context()
			en := e.deps.Timer
			w := cmd.OutOrStdout()

			s, ok := en.State(ctx)
			if !ok {
				s = en.Start(ctx)
			} else if s.Status != phase.StatusRunning {
				s, _ = en.Resume(ctx)
			}
			printPhase(w, en, s)

			last := s.Phase
			en.OnChange(func(s phase.State) {
				if s.Phase != last {
					last = s.Phase
					printPhase(w, en, s)
				}
			})

			if remind == 0 {
				remind = e.cfg.Timer.RemindEvery
			}
			opts := []phase.DriverOption{phase.WithDriverLogger(e.log)}
			if remind > 0 {
				opts = append(opts, phase.WithReminder(remind, func(ctx context.Context) {
					if n := e.deps.Scheduler.Stats(ctx).Due; n > 0 {
						lipgloss.Fprintln(w, theme.Hint.Render(fmt.Sprintf("%d items due for review.", n)))
					}
				}))
			}

			err := phase.NewDriver(en, opts...).Run(ctx)
			if errors.Is(err, context.Canceled) {
				// Leave the session resumable.
				en.Hide(context.WithoutCancel(ctx))
				return nil
			}
			return err
		})
	},
}

func init() {
	timerRunCmd.Flags().Duration("remind", 0, "Print the due count at this interval (overrides DRILL_REMIND_EVERY)")

	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerPauseCmd)
	timerCmd.AddCommand(timerResumeCmd)
	timerCmd.AddCommand(timerStatusCmd)
	timerCmd.AddCommand(timerResetCmd)
	timerCmd.AddCommand(timerRunCmd)
}

func timerUpdate(fn func(context.Context, *phase.Engine) (phase.State, bool)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			s, ok := fn(cmd.Context(), e.deps.Timer)
			if !ok {
				return errNoTimer
			}
			printPhase(cmd.OutOrStdout(), e.deps.Timer, s)
			return nil
		})
	}
}

func printPhase(w io.Writer, en *phase.Engine, s phase.State) {
	r := s.Report(en.Now())
	style := theme.Focus
	switch r.Phase {
	case phase.PhasePrep:
		style = theme.Prep
	case phase.PhaseBreak, phase.PhaseLongBreak:
		style = theme.Rest
	}
	lipgloss.Fprintf(w, "%s %s  %s  %s\n",
		style.Render(string(r.Phase)),
		clock(r.Remaining),
		theme.Hint.Render(fmt.Sprintf("%s, %d cycles", r.Status, r.CompletedCycles)),
		r.Message,
	)
}

func clock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
