package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/spacedrep"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/theme"
)

// renderItemView renders the item being practised.
func (s *SessionScreen) renderItemView(width, height int) string {
	var b strings.Builder

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Mode: %s", s.mode))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Item %d/%d  %s %d  %s %d:%02d",
			s.index+1, s.total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			len(s.reviewed),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("T"),
			mins, secs,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(s.itemCard(), cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.last != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s: next review in %d %s",
				s.last.DisplayName(), s.last.Interval, days(s.last.Interval))))
	}

	return b.String()
}

func (s *SessionScreen) itemCard() string {
	e := s.current
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.DisplayName()))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(e.Key))
	if s.deps.Course != nil {
		if it, ok := s.deps.Course.Item(e.Key); ok && it.Concept != "" {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  ·  %s / %s", it.Module, it.Concept)))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(statusLine(e, s.deps.Scheduler.Now))

	var flags []string
	if s.outcome.HintsUsed {
		flags = append(flags, lipgloss.NewStyle().Foreground(theme.Accent).Render("hint used"))
	}
	if s.outcome.SolutionViewed {
		flags = append(flags, lipgloss.NewStyle().Foreground(theme.Error).Render("solution viewed"))
	}
	if len(flags) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(flags, "   "))
	}
	return b.String()
}

func statusLine(e spacedrep.ScheduleEntry, now func() time.Time) string {
	if e.ReviewCount == 0 {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("New item")
	}
	t := now()
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if e.IsWeak() {
		style = style.Foreground(theme.Error)
	}
	line := fmt.Sprintf("Reviewed %d times   ease %.2f   interval %d %s",
		e.ReviewCount, e.EaseFactor, e.Interval, days(e.Interval))
	if d := int(e.OverdueDays(t)); d > 0 {
		line += fmt.Sprintf("   overdue %d %s", d, days(d))
	}
	return style.Render(line)
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End session early?"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Rated items are already scheduled."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your session...")
}

// renderError renders a message that ends the screen.
func renderError(width, height int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", msg))
}
