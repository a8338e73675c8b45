package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 20

	var sections []string
	if h.deps.Course != nil && !compact {
		title := h.deps.Course.Title
		if title == "" {
			title = h.deps.Course.ID
		}
		sections = append(sections, theme.Title.Width(cw).Render(title))
	}
	sections = append(sections, h.renderStats(cw, compact))
	if len(h.weakest) > 0 && !compact {
		sections = append(sections, h.renderWeakest(cw))
	}
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return components.Frame(content, width, height)
}

func (h *HomeScreen) renderStats(cw int, compact bool) string {
	num := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	dueStyle := dim
	if h.stats.Due > 0 {
		dueStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}

	line1 := fmt.Sprintf("%s  %s  %s  %s",
		dueStyle.Render(fmt.Sprintf("%d due", h.stats.Due)),
		dim.Render(fmt.Sprintf("%d items", h.stats.Total)),
		dim.Render(fmt.Sprintf("%d learning", h.stats.Learning)),
		dim.Render(fmt.Sprintf("%d mature", h.stats.Mature)),
	)
	if compact {
		return line1
	}
	line2 := fmt.Sprintf("%s %s   %s %s   %s %s",
		num.Render(fmt.Sprintf("★ %d", h.streak.Current)), dim.Render("day streak"),
		num.Render(fmt.Sprintf("%d", h.streak.Longest)), dim.Render("longest"),
		num.Render(fmt.Sprintf("%d", h.today)), dim.Render("done today"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line1 + "\n" + line2)
}

func (h *HomeScreen) renderWeakest(cw int) string {
	parts := make([]string, 0, len(h.weakest))
	for _, c := range h.weakest {
		name := c.Concept
		if name == "" {
			name = c.Module
		}
		parts = append(parts, name)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Weak.Render("Needs work: ") + theme.Hint.Render(strings.Join(parts, ", ")))
}
