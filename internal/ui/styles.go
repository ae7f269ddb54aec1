package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rasiler/academy-graphql1/internal/blog"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
	ColorBlue      = lipgloss.Color("#3B82F6") // Blue
)

// Category text styles for table output.
var categoryStyles = map[blog.Category]lipgloss.Style{
	blog.CategoryMeteor:    lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	blog.CategoryProduct:   lipgloss.NewStyle().Foreground(ColorBlue).Bold(true),
	blog.CategoryUserStory: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
	blog.CategoryOther:     lipgloss.NewStyle().Foreground(ColorSecondary),
}

// Text styles
var (
	Muted  = lipgloss.NewStyle().Foreground(ColorMuted)
	Title  = lipgloss.NewStyle().Bold(true)
	Header = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// RenderCategory renders a category name with its color, or a muted dash
// for posts without one.
func RenderCategory(c blog.Category) string {
	if c == "" {
		return Muted.Render("-")
	}
	if style, ok := categoryStyles[c]; ok {
		return style.Render(string(c))
	}
	return string(c)
}
