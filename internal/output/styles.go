package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	ColorCyan    = lipgloss.Color("14")
	ColorGreen   = lipgloss.Color("10")
	ColorBoldRed = lipgloss.Color("204")
)

var (
	// StyleNoun styles identifiable nouns (file paths, class names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome and skipped steps.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Step statuses as printed to the terminal.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Glyph returns the single-character marker for a step status.
func Glyph(status string) string {
	switch status {
	case StatusOK:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "–"
	}
}

// StatusStyle returns the style for a step status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return StyleDim
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStatus renders "<glyph> <msg>" with the glyph colored by status.
// A non-empty detail is appended after a colon.
func FormatStatus(status, msg, detail string) string {
	line := StatusStyle(status).Render(Glyph(status)) + " " + msg
	if detail != "" {
		line += StyleDim.Render(": " + detail)
	}
	return line
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	return FormatStatus(StatusOK, msg, "")
}
