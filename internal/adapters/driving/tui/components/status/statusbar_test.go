package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Count())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilDependencies(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Setters(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateLoading)
	bar.SetPage("search")
	bar.SetMessage("boom")
	bar.SetCount(42)
	bar.SetWidth(120)

	assert.Equal(t, StateLoading, bar.State())
	assert.Equal(t, "search", bar.Page())
	assert.Equal(t, "boom", bar.Message())
	assert.Equal(t, 42, bar.Count())
	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		contains []string
	}{
		{
			name:     "loading",
			setup:    func(b *Bar) { b.SetState(StateLoading) },
			contains: []string{"Loading..."},
		},
		{
			name: "failed with message",
			setup: func(b *Bar) {
				b.SetState(StateFailed)
				b.SetMessage("index unavailable")
			},
			contains: []string{"Error: index unavailable"},
		},
		{
			name:     "failed without message",
			setup:    func(b *Bar) { b.SetState(StateFailed) },
			contains: []string{"Error"},
		},
		{
			name:     "input",
			setup:    func(b *Bar) { b.SetState(StateInput) },
			contains: []string{"Type to search", "enter: search"},
		},
		{
			name: "ready with items",
			setup: func(b *Bar) {
				b.SetPage("section")
				b.SetCount(3)
			},
			contains: []string{"section", "3 items", "enter: open"},
		},
		{
			name:     "history available",
			setup:    func(b *Bar) { b.SetHistory(true, true) },
			contains: []string{"‹›"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)

			view := bar.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
		})
	}
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateFailed)
	bar.SetMessage("error message")
	bar.SetCount(10)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Count())
}
