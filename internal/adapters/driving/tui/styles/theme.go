// Package styles provides the fixed palette and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary marks set titles and section headers.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for synopses and hints.
	Muted lipgloss.Color

	// Featured marks featured sets on the home page.
	Featured lipgloss.Color

	// Error indicates failed loads.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#C2410C"), // Burnt orange
		Secondary:  lipgloss.Color("#0F766E"), // Teal
		Foreground: lipgloss.Color("#E7E5E4"), // Stone
		Muted:      lipgloss.Color("#78716C"), // Warm gray
		Featured:   lipgloss.Color("#EAB308"), // Gold
		Error:      lipgloss.Color("#DC2626"), // Red
		Border:     lipgloss.Color("#44403C"), // Dark stone
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the page header.
	Title lipgloss.Style

	// Subtitle style for set names and list headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for synopses and hints.
	Muted lipgloss.Style

	// Selected style for the card under the cursor.
	Selected lipgloss.Style

	// Highlighted style for the card of the article being read.
	Highlighted lipgloss.Style

	// Featured style for the featured marker.
	Featured lipgloss.Style

	// Error style for failure messages.
	Error lipgloss.Style

	// InputField style for the search box.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Lightbox style for the media overlay.
	Lightbox lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Highlighted: lipgloss.NewStyle().
			Underline(true).
			Foreground(theme.Secondary),

		Featured: lipgloss.NewStyle().
			Foreground(theme.Featured),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#1C1917")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Lightbox: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
