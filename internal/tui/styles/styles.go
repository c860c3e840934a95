package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	LoofahGreen = lipgloss.Color("#84CC16")
	SlateDark   = lipgloss.Color("#1F2937")
	SlateLight  = lipgloss.Color("#374151")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Green       = lipgloss.Color("#10B981")
	Amber       = lipgloss.Color("#F59E0B")
	Red         = lipgloss.Color("#EF4444")
	Blue        = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(LoofahGreen)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(LoofahGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Tab styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(LoofahGreen).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	NewBadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(LoofahGreen).
			Padding(0, 1)
)

// Match highlight styles for search terms
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(LoofahGreen).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(LoofahGreen).
					Background(SlateLight).
					Bold(true)
)

// Sync button styles
var (
	SyncButtonStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(LoofahGreen).
			Padding(0, 1)

	SyncBusyStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(LoofahGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Chart styles
var (
	BarStyle = lipgloss.NewStyle().
			Foreground(LoofahGreen)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(SlateLight)
)

// Input styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(LoofahGreen).
				Bold(true)
)

// Truncate shortens s to fit width terminal cells, adding an ellipsis.
// Wide (CJK) runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString("…")
	return b.String()
}

// Pad right-pads s with spaces to width cells
func Pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderBar renders a horizontal bar of value/max scaled to width cells
func RenderBar(value, max, width int) string {
	if width < 1 {
		return ""
	}
	filled := 0
	if max > 0 {
		filled = value * width / max
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return BarStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}
