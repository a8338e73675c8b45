package cmd

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetBool("week")
		return withEnv(cmd, func(e *env) error {
			ctx := cmd.Context()
			now := e.deps.Scheduler.Now()
			st := e.deps.Scheduler.Stats(ctx)
			ledger := e.deps.Ledger

			t := newTable("Stat", "Value").Rows(
				[]string{"Items scheduled", strconv.Itoa(st.Total)},
				[]string{"Due now", strconv.Itoa(st.Due)},
				[]string{"Learning", strconv.Itoa(st.Learning)},
				[]string{"Mature", strconv.Itoa(st.Mature)},
				[]string{"Current streak", days(ledger.Current(ctx))},
				[]string{"Longest streak", days(ledger.Longest(ctx))},
				[]string{"Completed today", strconv.Itoa(ledger.ActivityOn(ctx, now))},
				[]string{"Completed total", strconv.Itoa(ledger.TotalItems(ctx))},
			)
			w := cmd.OutOrStdout()
			printTable(w, t)

			if week {
				act := newTable("Date", "Items")
				for _, d := range ledger.ActivityBetween(ctx, now.AddDate(0, 0, -6), now) {
					act.Row(d.Date, strconv.Itoa(d.Items))
				}
				printTable(w, act)
			}
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().Bool("week", false, "Also show activity for the last seven days")
}

var strengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Show concept strength from average ease",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modules, _ := cmd.Flags().GetBool("modules")
		return withEnv(cmd, func(e *env) error {
			w := cmd.OutOrStdout()
			if e.course == nil {
				printEmpty(w, "Concept strength needs a course (--course or DRILL_COURSE).")
				return nil
			}
			ctx := cmd.Context()
			rows := e.deps.Strength.Concepts(ctx)
			if modules {
				rows = e.deps.Strength.Modules(ctx)
			}
			if len(rows) == 0 {
				printEmpty(w, "No reviews yet.")
				return nil
			}
			lipgloss.Fprintln(w, strengthTable(rows, modules).String())
			return nil
		})
	},
}

func init() {
	strengthCmd.Flags().Bool("modules", false, "Aggregate by module instead of concept")
}

func strengthTable(rows []mastery.ConceptStrength, modules bool) *table.Table {
	headers := []string{"Module", "Concept", "Avg ease", "Samples", "Strength"}
	if modules {
		headers = []string{"Module", "Avg ease", "Samples", "Strength"}
	}
	t := newTable(headers...)
	for _, r := range rows {
		cells := []string{r.Module}
		if !modules {
			cells = append(cells, r.Concept)
		}
		cells = append(cells,
			strconv.FormatFloat(r.AvgEase, 'f', 2, 64),
			strconv.Itoa(r.SampleCount),
			r.Label.String(),
		)
		t.Row(cells...)
	}

	last := len(headers) - 1
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == last && row < len(rows):
			return cellStyle.Inherit(theme.ForStrength(string(rows[row].Label)))
		}
		return cellStyle
	})
}
