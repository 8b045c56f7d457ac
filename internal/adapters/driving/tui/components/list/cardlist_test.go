package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lore/internal/core/domain"
)

func sampleItems() []*domain.ContentRef {
	return []*domain.ContentRef{
		{ID: "1", Title: "Lions", Synopsis: "Big cats of the savanna"},
		{ID: "2", Title: "Tigers", Synopsis: "Striped and solitary"},
		{ID: "3", Title: "Leopards", Synopsis: "Spotted climbers"},
	}
}

func TestNewCardList(t *testing.T) {
	list := NewCardList(styles.DefaultStyles(), "Results")

	require.NotNil(t, list)
	assert.Equal(t, "Results", list.Title())
	assert.Equal(t, 0, list.Count())
	assert.Nil(t, list.SelectedItem())
	assert.Nil(t, list.Init())
}

func TestNewCardList_NilStyles(t *testing.T) {
	list := NewCardList(nil, "")

	assert.NotNil(t, list.styles)
	assert.Equal(t, 80, list.Width())
	assert.Equal(t, 10, list.Height())
}

func TestCardList_AppendKeepsCursor(t *testing.T) {
	list := NewCardList(nil, "Results")
	list.Append(sampleItems()[:2])
	list.SetSelected(1)

	list.Append(sampleItems()[2:])

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, 1, list.Selected())
	assert.Equal(t, "Tigers", list.SelectedItem().Title)
}

func TestCardList_Clear(t *testing.T) {
	list := NewCardList(nil, "Results")
	list.Append(sampleItems())
	list.SetSelected(2)

	list.Clear()

	assert.Equal(t, 0, list.Count())
	assert.Equal(t, 0, list.Selected())
}

func TestCardList_SetSelected_OutOfRange(t *testing.T) {
	list := NewCardList(nil, "")
	list.Append(sampleItems())

	list.SetSelected(99)
	assert.Equal(t, 0, list.Selected())

	list.SetSelected(-1)
	assert.Equal(t, 0, list.Selected())
}

func TestCardList_MoveBounds(t *testing.T) {
	list := NewCardList(nil, "")
	list.Append(sampleItems())

	list.MoveUp()
	assert.Equal(t, 0, list.Selected())

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	assert.Equal(t, 2, list.Selected())
}

func TestCardList_Update_Keys(t *testing.T) {
	list := NewCardList(nil, "")
	list.Append(sampleItems())

	updated, cmd := list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Same(t, list, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Selected())
}

func TestCardList_NearEnd(t *testing.T) {
	list := NewCardList(nil, "")
	assert.False(t, list.NearEnd())

	items := make([]*domain.ContentRef, 10)
	for i := range items {
		items[i] = &domain.ContentRef{ID: string(rune('a' + i))}
	}
	list.Append(items)

	assert.False(t, list.NearEnd())
	list.SetSelected(6)
	assert.False(t, list.NearEnd())
	list.SetSelected(7)
	assert.True(t, list.NearEnd())
}

func TestCardList_View_Empty(t *testing.T) {
	list := NewCardList(nil, "Results")

	assert.Contains(t, list.View(), "Nothing here yet")
}

func TestCardList_View_WithItems(t *testing.T) {
	list := NewCardList(nil, "Results")
	list.Append(sampleItems())

	view := list.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "Lions")
	assert.Contains(t, view, "Big cats of the savanna")
	assert.Contains(t, view, ">")
}

func TestCardList_View_FeaturedAndUntitled(t *testing.T) {
	list := NewCardList(nil, "Sets")
	list.Append([]*domain.ContentRef{
		{ID: "1", Title: "Animals", Featured: true},
		{ID: "2"},
	})

	view := list.View()

	assert.Contains(t, view, "★")
	assert.Contains(t, view, "(Untitled)")
}

func TestCardList_View_LongTitle(t *testing.T) {
	list := NewCardList(nil, "")
	list.SetDimensions(30, 10)
	list.Append([]*domain.ContentRef{{ID: "1", Title: strings.Repeat("x", 100)}})

	assert.Contains(t, list.View(), "...")
}

func TestCardList_Highlight(t *testing.T) {
	list := NewCardList(nil, "")
	items := sampleItems()
	list.Append(items)

	list.SetHighlight(items[1])
	assert.Same(t, items[1], list.Highlight())
	assert.Contains(t, list.View(), "Tigers")

	list.SetHighlight(nil)
	assert.Nil(t, list.Highlight())
}

func TestCardList_SetDimensions(t *testing.T) {
	list := NewCardList(nil, "")

	list.SetDimensions(100, 20)

	assert.Equal(t, 100, list.Width())
	assert.Equal(t, 20, list.Height())
}
