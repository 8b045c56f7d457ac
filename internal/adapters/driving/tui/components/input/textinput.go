// Package input provides the search box component for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput with search-specific styling.
// It starts blurred; the page decides when the search box takes focus.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a new search box.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search lore..."
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the search box.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Keys are ignored unless focused.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search box.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("lore ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// Submitted returns the trimmed text and whether there is anything to submit.
func (s *SearchInput) Submitted() (string, bool) {
	text := strings.TrimSpace(s.textinput.Value())
	return text, text != ""
}

// SetValue replaces the text and moves the cursor to its end.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
}

// Focus sets focus on the search box.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the search box.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the search box is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the search box.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// label and border
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}
