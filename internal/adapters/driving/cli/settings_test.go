package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Browse]")
	assert.Contains(t, out, "Results per page: 10")
	assert.Contains(t, out, "Layout: Article only")
	assert.Contains(t, out, "Backend: In-memory catalog")
	assert.Contains(t, out, "Rate limit: off")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetThenShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", "browse.layout", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "Set browse.layout to B")

	_, err = execute(t, "settings", "set", "index.rate", "2.5")
	require.NoError(t, err)

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Layout: Article with its list")
	assert.Contains(t, out, "Rate limit: 2.5/s (burst 1)")
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", "browse.layout", "C")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "browse.layout")
	assert.Error(t, err)
}

func TestSettingsCmd_Keys(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "keys")

	require.NoError(t, err)
	assert.Equal(t, settingsService.Keys(), strings.Fields(out))
}

func TestSettingsCmd_Reset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, settingsService.Set("browse.results_size", "3"))

	out, err := execute(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultResultsSize, settings.Browse.ResultsSize)
}

func TestSettingsCmd_Wizard(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	in := strings.NewReader("2\n/srv/lore\n2\n")
	out, err := executeWithInput(t, in, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.IndexBackendSQLite, settings.Index.Backend)
	assert.Equal(t, "/srv/lore", settings.Index.DataDir)
	assert.Equal(t, domain.LayoutB, settings.Browse.Layout)
}

func TestSettingsCmd_WizardKeepsCurrentOnEmptyInput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.Set("browse.layout", "B"))

	_, err := executeWithInput(t, strings.NewReader("\n\n\n"), "settings", "wizard")
	require.NoError(t, err)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.IndexBackendMemory, settings.Index.Backend)
	assert.Equal(t, domain.LayoutB, settings.Browse.Layout)
	assert.Empty(t, settings.Index.CatalogPath)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	for _, args := range [][]string{
		{"settings"},
		{"settings", "set", "a", "b"},
		{"settings", "keys"},
		{"settings", "reset"},
		{"settings", "wizard"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errNoSettings, args)
	}
}
