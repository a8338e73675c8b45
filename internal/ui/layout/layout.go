// Package layout composes the frame around every screen: a header with
// the due count and streak, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("drill needs at least %dx%d.\nThis terminal is %dx%d.",
			MinWidth, MinHeight, width, height))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// RenderHeader renders the title bar: app name left, screen title centred,
// due count and streak right.
func RenderHeader(title string, due, streak int, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("drill")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	dueStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if due > 0 {
		dueStyle = dueStyle.Foreground(theme.Accent).Bold(true)
	}
	right := dueStyle.Render(fmt.Sprintf("%d due", due)) + "   " +
		lipgloss.NewStyle().Foreground(theme.Highlight).
			Render(fmt.Sprintf("★ %d %s", streak, plural(streak, "day", "days")))

	// bar border and padding take four columns
	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar.Width(width).Render(
		left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(parts, desc.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, sizing content to fill
// the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
