package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".lore", "config.toml"), store.Path())
	assert.DirExists(t, filepath.Join(home, ".lore"))
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[browse\n"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("browse.layout", "B"))
	require.NoError(t, store.Set("browse.results_size", 25))
	require.NoError(t, store.Set("index.rate", 1.5))
	require.NoError(t, store.Set("index.watch", false))
	require.NoError(t, store.Set("app.id", "org.example"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "B", reopened.GetString("browse.layout"))
	assert.Equal(t, 25, reopened.GetInt("browse.results_size"))
	assert.InDelta(t, 1.5, reopened.GetFloat("index.rate"), 0.0001)
	assert.False(t, reopened.GetBool("index.watch"))
	_, ok := reopened.Get("index.watch")
	assert.True(t, ok)
	assert.Equal(t, []string{"app.id", "browse.layout", "browse.results_size", "index.rate", "index.watch"}, reopened.Keys())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("browse.layout", "B"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[browse]"), string(data))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[index]\nbackend = \"sqlite\"\nrate = 2\nburst = 3\n\n[metrics]\nenabled = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.GetString("index.backend"))
	assert.InDelta(t, 2.0, store.GetFloat("index.rate"), 0.0001, "integers widen")
	assert.Equal(t, 3, store.GetInt("index.burst"))
	assert.True(t, store.GetBool("metrics.enabled"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Equal(t, 0, store.GetInt("k"))
	assert.Equal(t, 0.0, store.GetFloat("k"))
	assert.False(t, store.GetBool("k"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_SetFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("browse.layout", "A"))

	// A directory where the file should be makes every write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("browse.layout", "B"))
	assert.Equal(t, "A", store.GetString("browse.layout"))

	assert.Error(t, store.Set("new.key", 1))
	_, ok := store.Get("new.key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("browse.results_size", n)
			_ = store.GetInt("browse.results_size")
		}(i)
	}
	wg.Wait()

	require.NoError(t, store.Load())
	assert.Contains(t, store.Keys(), "browse.results_size")
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d.e": 3,
		"c.f":   4,
	}

	nested := nestMap(flat)

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, 2, nested["a.b"], "conflicting key stays dotted")
	assert.Equal(t, map[string]any{"d": map[string]any{"e": 3}, "f": 4}, nested["c"])
	assert.Equal(t, flat, flattenMap(nested, ""))
}
