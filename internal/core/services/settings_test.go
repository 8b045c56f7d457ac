package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lore/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("browse.results_size", 25)
	_ = store.Set("browse.layout", "B")
	_ = store.Set("index.backend", "sqlite")
	_ = store.Set("index.watch", false)
	_ = store.Set("index.rate", 2.5)
	_ = store.Set("metrics.enabled", true)
	_ = store.Set("metrics.path", "/tmp/metrics.jsonl")

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 25, settings.Browse.ResultsSize)
	assert.Equal(t, domain.LayoutB, settings.Browse.Layout)
	assert.Equal(t, domain.IndexBackendSQLite, settings.Index.Backend)
	assert.False(t, settings.Index.Watch)
	assert.InDelta(t, 2.5, settings.Index.Rate, 0.001)
	assert.True(t, settings.Metrics.Enabled)
	assert.Equal(t, "/tmp/metrics.jsonl", settings.Metrics.Path)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("browse.layout", "Z")
	_ = store.Set("index.backend", "postgres")
	_ = store.Set("browse.results_size", -3)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Browse.Layout, settings.Browse.Layout)
	assert.Equal(t, defaults.Index.Backend, settings.Index.Backend)
	assert.Equal(t, defaults.Browse.ResultsSize, settings.Browse.ResultsSize)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Browse.Layout = domain.LayoutB
	settings.Index.CatalogPath = "/data/catalog.toml"
	settings.Index.Burst = 4

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *retrieved)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Browse.ResultsSize = 0

	err := service.Save(&settings)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Mock config store that always fails on Set
type failingConfigStore struct {
	*memory.ConfigStore
	failOn string
}

func (f *failingConfigStore) Set(key string, value any) error {
	if f.failOn == "" || key == f.failOn {
		return assert.AnError
	}
	return f.ConfigStore.Set(key, value)
}

func TestSettingsService_Save_Errors(t *testing.T) {
	for _, key := range settingKeys {
		t.Run(key, func(t *testing.T) {
			store := &failingConfigStore{
				ConfigStore: memory.NewConfigStore(),
				failOn:      key,
			}
			service := NewSettingsService(store)

			settings := domain.DefaultAppSettings()
			err := service.Save(&settings)

			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"app.id", "org.example.app", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "org.example.app", s.AppID)
		}},
		{"browse.results_size", "30", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 30, s.Browse.ResultsSize)
		}},
		{"browse.layout", "B", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.LayoutB, s.Browse.Layout)
		}},
		{"index.backend", "sqlite", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.IndexBackendSQLite, s.Index.Backend)
		}},
		{"index.catalog", "/c.toml", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/c.toml", s.Index.CatalogPath)
		}},
		{"index.data_dir", "/data", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/data", s.Index.DataDir)
		}},
		{"index.watch", "false", func(t *testing.T, s *domain.AppSettings) {
			assert.False(t, s.Index.Watch)
		}},
		{"index.rate", "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 0.5, s.Index.Rate, 0.001)
		}},
		{"index.burst", "3", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 3, s.Index.Burst)
		}},
		{"metrics.enabled", "true", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Metrics.Enabled)
		}},
		{"metrics.path", "/m.jsonl", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/m.jsonl", s.Metrics.Path)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"unknown.key", "x"},
		{"browse.results_size", "many"},
		{"browse.results_size", "0"},
		{"browse.layout", "Z"},
		{"index.backend", "postgres"},
		{"index.watch", "maybe"},
		{"index.rate", "fast"},
		{"index.burst", "-1"},
		{"metrics.enabled", "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Len(t, keys, 11)
	assert.Contains(t, keys, "browse.layout")

	keys[0] = "mutated"
	assert.NotEqual(t, "mutated", service.Keys()[0])
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
