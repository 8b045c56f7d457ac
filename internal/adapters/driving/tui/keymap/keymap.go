// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Back returns to the previous page.
	Back key.Binding

	// Forward moves to the next page in history.
	Forward key.Binding

	// Home jumps to the home page.
	Home key.Binding

	// Focus moves focus to the search box.
	Focus key.Binding

	// Search submits the search box.
	Search key.Binding

	// Up navigates up in a list or scrolls an article.
	Up key.Binding

	// Down navigates down in a list or scrolls an article.
	Down key.Binding

	// Select opens the highlighted card.
	Select key.Binding

	// Cancel leaves the search box or closes the lightbox.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "["),
			key.WithHelp("esc", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("H", "home"),
			key.WithHelp("H", "home"),
		),
		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Back, k.Quit, k.Help}
}

// ListHelp returns keybindings for pages showing a list of cards.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Focus, k.Back}
}

// InputHelp returns keybindings while the search box has focus.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Search, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help overlay.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Focus, k.Search, k.Cancel},
		{k.Back, k.Forward, k.Home},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
