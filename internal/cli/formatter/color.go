package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CaseStatusPill returns a colored indicator for a case status.
func CaseStatusPill(status string) string {
	switch strings.ToLower(status) {
	case "open", "active":
		return StyleGreen.Render("● " + status)
	case "pending", "on hold":
		return StyleYellow.Render("○ " + status)
	case "closed":
		return StyleDim.Render("✔ " + status)
	case "unknown", "":
		return StyleDim.Render("● Unknown")
	default:
		return StyleFg.Render(status)
	}
}

// RoleBadge returns a capitalized, purple-styled role label.
func RoleBadge(role string) string {
	if role == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(role[:1]) + role[1:]
	return StylePurple.Render(label)
}

// SourceBadge colors the record source so mixed row sets read at a glance.
func SourceBadge(source string) string {
	switch source {
	case "billable":
		return StyleGreen.Render(source)
	case "invoice":
		return StyleBlue.Render(source)
	case "unbilled":
		return StyleYellow.Render(source)
	default:
		return StyleDim.Render(source)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
