// Package list provides the card list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lore/internal/core/domain"
)

// nearEndThreshold is how close to the last card the cursor must be
// before the list asks for more.
const nearEndThreshold = 2

// CardList displays content items in a navigable list.
// Items are appended as pages of results arrive.
type CardList struct {
	title     string
	items     []*domain.ContentRef
	selected  int
	highlight *domain.ContentRef
	styles    *styles.Styles
	width     int
	height    int
}

// NewCardList creates a new card list component.
func NewCardList(s *styles.Styles, title string) *CardList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CardList{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the card list.
func (l *CardList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *CardList) Update(msg tea.Msg) (*CardList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the card list.
func (l *CardList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("Nothing here yet")
	}

	lines := make([]string, 0, len(l.items)+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items)))
	lines = append(lines, header, "")

	// Each card takes two lines.
	visibleCount := (l.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderCard(i, l.items[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *CardList) renderCard(index int, item *domain.ContentRef) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := truncate(item.Title, l.width-8)
	if title == "" {
		title = "(Untitled)"
	}
	if item.Featured {
		title += " " + l.styles.Featured.Render("★")
	}

	var titleLine string
	switch {
	case index == l.selected:
		titleLine = l.styles.Selected.Render(indicator + title)
	case l.highlight != nil && item.ID == l.highlight.ID:
		titleLine = l.styles.Highlighted.Render(indicator + title)
	default:
		titleLine = l.styles.Normal.Render(indicator + title)
	}

	synopsis := truncate(item.Synopsis, l.width-6)
	return titleLine + "\n" + l.styles.Muted.Render("    "+synopsis)
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// SetTitle sets the list header.
func (l *CardList) SetTitle(title string) {
	l.title = title
}

// Title returns the list header.
func (l *CardList) Title() string {
	return l.title
}

// Clear empties the list.
func (l *CardList) Clear() {
	l.items = nil
	l.selected = 0
}

// Append adds items after the ones already shown. The cursor stays put.
func (l *CardList) Append(items []*domain.ContentRef) {
	l.items = append(l.items, items...)
}

// Items returns the items shown.
func (l *CardList) Items() []*domain.ContentRef {
	return l.items
}

// Selected returns the index of the card under the cursor.
func (l *CardList) Selected() int {
	return l.selected
}

// SetSelected moves the cursor. Out of range indexes are ignored.
func (l *CardList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the item under the cursor, or nil if none.
func (l *CardList) SelectedItem() *domain.ContentRef {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return l.items[l.selected]
}

// SetHighlight marks the card of the article being read. Nil clears it.
func (l *CardList) SetHighlight(item *domain.ContentRef) {
	l.highlight = item
}

// Highlight returns the highlighted item.
func (l *CardList) Highlight() *domain.ContentRef {
	return l.highlight
}

// MoveUp moves the cursor up.
func (l *CardList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *CardList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// NearEnd reports whether the cursor is close enough to the last card
// that another page should be requested.
func (l *CardList) NearEnd() bool {
	return len(l.items) > 0 && l.selected >= len(l.items)-1-nearEndThreshold
}

// SetDimensions sets the component dimensions.
func (l *CardList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *CardList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *CardList) Height() int {
	return l.height
}

// Count returns the number of items.
func (l *CardList) Count() int {
	return len(l.items)
}
