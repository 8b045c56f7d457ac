// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
)

// State represents what the current page is doing.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateFailed  State = "failed"
	StateInput   State = "input"
)

// Bar displays page status, history availability and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	page       string
	message    string
	count      int
	canBack    bool
	canForward bool
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var parts []string
	if s.page != "" {
		parts = append(parts, s.styles.Normal.Render(s.page))
	}
	parts = append(parts, s.renderHistory())

	switch s.state {
	case StateLoading:
		parts = append(parts, s.styles.Muted.Render("Loading..."))
	case StateFailed:
		if s.message != "" {
			parts = append(parts, s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message)))
		} else {
			parts = append(parts, s.styles.Error.Render("Error"))
		}
	case StateInput:
		parts = append(parts, s.styles.Muted.Render("Type to search"))
	case StateReady:
		if s.count > 0 {
			parts = append(parts, s.styles.Muted.Render(fmt.Sprintf("%d items", s.count)))
		}
	}
	return strings.Join(parts, " ")
}

func (s *Bar) renderHistory() string {
	back, forward := "‹", "›"
	if !s.canBack {
		back = " "
	}
	if !s.canForward {
		forward = " "
	}
	return s.styles.Muted.Render(back + forward)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	switch s.state {
	case StateInput:
		bindings = s.keymap.InputHelp()
	case StateReady:
		if s.count > 0 {
			bindings = s.keymap.ListHelp()
		}
	case StateLoading, StateFailed:
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetPage sets the page label.
func (s *Bar) SetPage(page string) {
	s.page = page
}

// Page returns the page label.
func (s *Bar) Page() string {
	return s.page
}

// SetMessage sets the failure message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCount sets the number of items on the page.
func (s *Bar) SetCount(count int) {
	s.count = count
}

// Count returns the number of items on the page.
func (s *Bar) Count() int {
	return s.count
}

// SetHistory sets whether back and forward are available.
func (s *Bar) SetHistory(canBack, canForward bool) {
	s.canBack = canBack
	s.canForward = canForward
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
}
