package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/theme"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// newTable returns a bordered table with the drill header style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// entryTable renders schedule entries as of now.
func entryTable(entries []spacedrep.ScheduleEntry, now time.Time) *table.Table {
	t := newTable("Key", "Label", "Ease", "Interval", "Reps", "Next review", "Status")
	for _, e := range entries {
		t.Row(
			e.Key,
			e.DisplayName(),
			strconv.FormatFloat(e.EaseFactor, 'f', 2, 64),
			days(e.Interval),
			strconv.Itoa(e.Repetitions),
			nextReview(e, now),
			string(e.Status(now)),
		)
	}
	return t
}

func nextReview(e spacedrep.ScheduleEntry, now time.Time) string {
	if e.IsDue(now) {
		if n := int(e.OverdueDays(now)); n > 0 {
			return fmt.Sprintf("overdue %s", days(n))
		}
		return "now"
	}
	return "in " + days(e.DaysUntilReview(now))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// printEmpty writes a dim one-line notice.
func printEmpty(w io.Writer, msg string) {
	lipgloss.Fprintln(w, theme.Hint.Render(msg))
}

func printTable(w io.Writer, t *table.Table) {
	lipgloss.Fprintln(w, t.String())
}
