package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAppID          = "app.id"
	keyResultsSize    = "browse.results_size"
	keyLayout         = "browse.layout"
	keyIndexBackend   = "index.backend"
	keyIndexCatalog   = "index.catalog"
	keyIndexDataDir   = "index.data_dir"
	keyIndexWatch     = "index.watch"
	keyIndexRate      = "index.rate"
	keyIndexBurst     = "index.burst"
	keyMetricsEnabled = "metrics.enabled"
	keyMetricsPath    = "metrics.path"
)

var settingKeys = []string{
	keyAppID,
	keyResultsSize,
	keyLayout,
	keyIndexBackend,
	keyIndexCatalog,
	keyIndexDataDir,
	keyIndexWatch,
	keyIndexRate,
	keyIndexBurst,
	keyMetricsEnabled,
	keyMetricsPath,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		AppID: s.getString(keyAppID, defaults.AppID),
		Browse: domain.BrowseSettings{
			ResultsSize: s.getInt(keyResultsSize, defaults.Browse.ResultsSize),
			Layout:      s.getLayout(defaults.Browse.Layout),
		},
		Index: domain.IndexSettings{
			Backend:     s.getBackend(defaults.Index.Backend),
			CatalogPath: s.configStore.GetString(keyIndexCatalog),
			DataDir:     s.configStore.GetString(keyIndexDataDir),
			Watch:       s.getBool(keyIndexWatch, defaults.Index.Watch),
			Rate:        s.configStore.GetFloat(keyIndexRate),
			Burst:       s.getInt(keyIndexBurst, defaults.Index.Burst),
		},
		Metrics: domain.MetricsSettings{
			Enabled: s.getBool(keyMetricsEnabled, defaults.Metrics.Enabled),
			Path:    s.configStore.GetString(keyMetricsPath),
		},
	}

	if settings.Browse.ResultsSize < 0 {
		settings.Browse.ResultsSize = defaults.Browse.ResultsSize
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAppID, settings.AppID},
		{keyResultsSize, settings.Browse.ResultsSize},
		{keyLayout, settings.Browse.Layout.String()},
		{keyIndexBackend, settings.Index.Backend.String()},
		{keyIndexCatalog, settings.Index.CatalogPath},
		{keyIndexDataDir, settings.Index.DataDir},
		{keyIndexWatch, settings.Index.Watch},
		{keyIndexRate, settings.Index.Rate},
		{keyIndexBurst, settings.Index.Burst},
		{keyMetricsEnabled, settings.Metrics.Enabled},
		{keyMetricsPath, settings.Metrics.Path},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyAppID:
		settings.AppID = value
	case keyResultsSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Browse.ResultsSize = n
	case keyLayout:
		settings.Browse.Layout = domain.Layout(value)
	case keyIndexBackend:
		settings.Index.Backend = domain.IndexBackend(value)
	case keyIndexCatalog:
		settings.Index.CatalogPath = value
	case keyIndexDataDir:
		settings.Index.DataDir = value
	case keyIndexWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Index.Watch = b
	case keyIndexRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Index.Rate = f
	case keyIndexBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Index.Burst = n
	case keyMetricsEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Metrics.Enabled = b
	case keyMetricsPath:
		settings.Metrics.Path = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// Keys lists the config keys Set accepts.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getLayout(defaultVal domain.Layout) domain.Layout {
	layout := domain.Layout(s.configStore.GetString(keyLayout))
	if !layout.IsValid() {
		return defaultVal
	}
	return layout
}

func (s *SettingsService) getBackend(defaultVal domain.IndexBackend) domain.IndexBackend {
	backend := domain.IndexBackend(s.configStore.GetString(keyIndexBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
