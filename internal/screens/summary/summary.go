package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary  session.Summary
	reviewed []spacedrep.ScheduleEntry
	streak   int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. reviewed holds the schedule entries
// written during the run, in the order they were rated.
func New(summary session.Summary, reviewed []spacedrep.ScheduleEntry, streak int) *SummaryScreen {
	return &SummaryScreen{summary: summary, reviewed: reviewed, streak: streak}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d    Streak: %d", mins, secs, s.streak)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Items: %d        Completed: %d        Skipped: %d",
		sum.Total, sum.Completed, sum.Skipped)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Self-ratings")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, r := range []int{spacedrep.RatingSolved, spacedrep.RatingStruggled, spacedrep.RatingNeededSolution} {
		line := fmt.Sprintf("%-18s %d", ratingName(r), sum.Ratings[r])
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(ratingColor(r)).Render(line)))
		b.WriteString("\n")
	}
	if sum.Unrated > 0 {
		line := fmt.Sprintf("%-18s %d", "Unrated", sum.Unrated)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}

	if len(s.reviewed) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Next reviews")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, e := range s.reviewed {
			line := fmt.Sprintf("  %-32s in %d %s   ease %.2f",
				truncate(e.DisplayName(), 32), e.Interval, plural(e.Interval), e.EaseFactor)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if e.IsWeak() {
				style = style.Foreground(theme.Error)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func ratingName(r int) string {
	switch r {
	case spacedrep.RatingSolved:
		return "Solved"
	case spacedrep.RatingStruggled:
		return "Struggled"
	case spacedrep.RatingNeededSolution:
		return "Needed solution"
	}
	return "Unrated"
}

func ratingColor(r int) color.Color {
	switch r {
	case spacedrep.RatingSolved:
		return theme.Success
	case spacedrep.RatingStruggled:
		return theme.Accent
	case spacedrep.RatingNeededSolution:
		return theme.Error
	}
	return theme.Text
}

func plural(days int) string {
	if days == 1 {
		return "day"
	}
	return "days"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
