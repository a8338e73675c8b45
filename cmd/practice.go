package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/queue"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/theme"
)

var reviewCmd = &cobra.Command{
	Use:   "review <key>",
	Short: "Record a review outcome for one item",
	Long: `Record a review for an item and reschedule it.

Pass --quality directly (0-5), or describe the outcome with --rating
(1 solved, 2 struggled, 3 needed the solution) plus --hint and --solution.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := reviewQuality(cmd)
		if err != nil {
			return err
		}
		return withEnv(cmd, func(e *env) error {
			ctx := cmd.Context()
			detach := e.deps.Ledger.Attach(ctx, e.bus)
			defer detach()

			key := args[0]
			label := ""
			if e.course != nil {
				label = e.course.Label(key)
			}
			entry := e.deps.Scheduler.RecordReview(ctx, key, q, label)
			now := e.deps.Scheduler.Now()

			w := cmd.OutOrStdout()
			lipgloss.Fprintf(w, "%s %s (quality %d)\n",
				theme.Correct.Render("Reviewed"), entry.DisplayName(), entry.LastQuality)
			lipgloss.Fprintf(w, "Next review %s, ease %.2f, streak %s\n",
				nextReview(entry, now), entry.EaseFactor, days(e.deps.Ledger.Current(ctx)))
			return nil
		})
	},
}

func init() {
	f := reviewCmd.Flags()
	f.Int("quality", -1, "Quality score 0-5")
	f.Int("rating", 0, "Self-rating: 1 solved, 2 struggled, 3 needed solution")
	f.Bool("hint", false, "Hints were used")
	f.Bool("solution", false, "The solution was viewed")
}

// reviewQuality resolves the quality from --quality or the outcome flags.
func reviewQuality(cmd *cobra.Command) (int, error) {
	f := cmd.Flags()
	q, _ := f.GetInt("quality")
	rating, _ := f.GetInt("rating")
	hint, _ := f.GetBool("hint")
	solution, _ := f.GetBool("solution")

	if f.Changed("quality") {
		if f.Changed("rating") || hint || solution {
			return 0, errors.New("--quality cannot be combined with --rating, --hint or --solution")
		}
		if q < 0 || q > 5 {
			return 0, fmt.Errorf("quality must be between 0 and 5, got %d", q)
		}
		return q, nil
	}
	if rating < 0 || rating > 3 {
		return 0, fmt.Errorf("rating must be 1, 2 or 3, got %d", rating)
	}
	return spacedrep.DeriveQuality(spacedrep.Outcome{
		SelfRating:     rating,
		HintsUsed:      hint,
		SolutionViewed: solution,
	}), nil
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for review, most overdue first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *env) error {
			due := e.deps.BuildQueue(queue.ModeReview)
			w := cmd.OutOrStdout()
			if len(due) == 0 {
				printEmpty(w, "Nothing due. Come back later.")
				return nil
			}
			printTable(w, entryTable(due, e.deps.Scheduler.Now()))
			return nil
		})
	},
}

var weakestCmd = &cobra.Command{
	Use:   "weakest",
	Short: "List the weakest items by ease factor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")
		return withEnv(cmd, func(e *env) error {
			var weak []spacedrep.ScheduleEntry
			for _, en := range e.deps.Scheduler.WeakestExercises(cmd.Context(), n) {
				if e.deps.Filter.Accept(en.Key) {
					weak = append(weak, en)
				}
			}
			w := cmd.OutOrStdout()
			if len(weak) == 0 {
				printEmpty(w, "No weak items.")
				return nil
			}
			printTable(w, entryTable(weak, e.deps.Scheduler.Now()))
			return nil
		})
	},
}

func init() {
	weakestCmd.Flags().Int("limit", 10, "Maximum number of items")
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Build a practice queue",
	Long: `Build the practice queue for a mode: review, weakest, mixed or discover.
Without --mode the recommended mode is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		return withEnv(cmd, func(e *env) error {
			mode, err := resolveMode(e, modeFlag)
			if err != nil {
				return err
			}
			q := e.deps.BuildQueue(mode)

			w := cmd.OutOrStdout()
			lipgloss.Fprintln(w, theme.Selected.Render(fmt.Sprintf("%s queue", mode))+
				theme.Hint.Render(fmt.Sprintf(" (%d)", len(q))))
			if len(q) == 0 {
				printEmpty(w, "The queue is empty.")
				return nil
			}
			printTable(w, entryTable(q, e.deps.Scheduler.Now()))
			return nil
		})
	},
}

func init() {
	queueCmd.Flags().String("mode", "", "Queue mode: review, weakest, mixed or discover")
}

// resolveMode parses flag, or falls back to the recommended mode. Discover
// without a course degrades to review.
func resolveMode(e *env, flag string) (queue.Mode, error) {
	if flag != "" {
		mode, err := queue.ParseMode(flag)
		if err != nil {
			return "", err
		}
		if mode == queue.ModeDiscover && e.course == nil {
			return "", errors.New("discover mode needs a course (--course or DRILL_COURSE)")
		}
		return mode, nil
	}
	mode := e.deps.Queue.PreselectBestMode(e.deps.Context(), e.deps.Filter)
	if mode == queue.ModeDiscover && e.course == nil {
		mode = queue.ModeReview
	}
	return mode, nil
}
