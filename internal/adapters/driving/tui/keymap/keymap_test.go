package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_HistoryBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Back.Keys(), "backspace")
	assert.Contains(t, km.Forward.Keys(), "]")
	assert.Contains(t, km.Home.Keys(), "H")
}

func TestDefaultKeyMap_SearchBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Focus.Keys(), "/")
	assert.Contains(t, km.Search.Keys(), "enter")
	assert.Contains(t, km.Cancel.Keys(), "esc")
}

func TestDefaultKeyMap_ListBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Select.Keys(), "enter")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 4)
	assert.Equal(t, km.Quit, bindings[2])
	assert.Equal(t, km.Help, bindings[3])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[2], 3) // Back, Forward, Home
	assert.Len(t, bindings[3], 2) // Help, Quit
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("[", km.Back))
	assert.True(t, Matches("/", km.Focus))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Forward", km.Forward},
		{"Home", km.Home},
		{"Focus", km.Focus},
		{"Search", km.Search},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Select", km.Select},
		{"Cancel", km.Cancel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
