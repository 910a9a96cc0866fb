package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors for the UI theme - Muted Professional Palette
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple (Lavender 400)
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan (Cyan 400)
	ColorSuccess   = lipgloss.Color("#059669") // Emerald 600 (muted green)
	ColorWarning   = lipgloss.Color("#D97706") // Amber 600 (muted amber)
	ColorError     = lipgloss.Color("#DC2626") // Red 600 (muted red)
	ColorMuted     = lipgloss.Color("#9CA3AF") // Neutral Gray (Gray 400)
	ColorText      = lipgloss.Color("#F1F5F9") // Soft White (Slate 100)

	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate Border
	ColorHighlight = lipgloss.Color("#E9D5FF") // Soft Purple (Purple 200)
	ColorDim       = lipgloss.Color("#6B7280") // Gray 500
	ColorAccent    = lipgloss.Color("#F472B6") // Pink Accent (Pink 400)
	ColorRunning   = lipgloss.Color("#60A5FA") // Sky Blue (Blue 400)
)

// Styles holds the lipgloss styles used across the TUI.
type Styles struct {
	Title    lipgloss.Style
	Category lipgloss.Style
	Checked  lipgloss.Style
	Cursor   lipgloss.Style
	Label    lipgloss.Style
	Hint     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Skip     lipgloss.Style
	Running  lipgloss.Style
	LogPanel lipgloss.Style
	Focused  lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Padding(0, 1),
		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),
		Checked: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Cursor: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(ColorText),
		Hint: lipgloss.NewStyle().
			Foreground(ColorDim),
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Skip: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Running: lipgloss.NewStyle().
			Foreground(ColorRunning),
		LogPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
	}
}
