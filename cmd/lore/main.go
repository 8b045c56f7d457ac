// Command lore browses offline content catalogs from the terminal.
package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/lore/internal/adapters/driven/catalog"
	"github.com/custodia-labs/lore/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lore/internal/adapters/driven/metrics"
	"github.com/custodia-labs/lore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lore/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lore/internal/adapters/driven/storage/throttle"
	"github.com/custodia-labs/lore/internal/adapters/driving/cli"
	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/services"
	"github.com/custodia-labs/lore/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	homeDir, err := file.DefaultDir()
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	configStore, err := file.NewConfigStore(homeDir)
	if err != nil {
		logger.Error("loading config: %v", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)
	cli.SetSettingsService(settingsService)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("reading settings: %v", err)
		return 1
	}
	paths := resolvePaths(homeDir, settings)

	cli.SetImporterFactory(func() (cli.Importer, error) {
		store, err := sqlite.NewStore(paths.dataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	})

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warn("shutdown: %v", err)
			}
		}
	}()

	config, closer, err := openIndex(settings, paths)
	if err != nil {
		// Settings and import still work without an index.
		logger.Error("opening content index: %v", err)
	} else {
		if closer != nil {
			closers = append(closers, closer)
		}
		if settings.Metrics.Enabled {
			recorder, err := metrics.NewFileRecorder(paths.metrics)
			if err != nil {
				logger.Error("metrics disabled: %v", err)
			} else {
				config.Metrics = recorder
				closers = append(closers, recorder)
			}
		}
		cli.SetBrowseConfig(config)
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

type lorePaths struct {
	catalog string
	dataDir string
	metrics string
}

// resolvePaths fills unset paths with locations under the lore home directory.
func resolvePaths(homeDir string, settings *domain.AppSettings) lorePaths {
	p := lorePaths{
		catalog: settings.Index.CatalogPath,
		dataDir: settings.Index.DataDir,
		metrics: settings.Metrics.Path,
	}
	if p.catalog == "" {
		p.catalog = filepath.Join(homeDir, "catalog.toml")
	}
	if p.dataDir == "" {
		p.dataDir = filepath.Join(homeDir, "data")
	}
	if p.metrics == "" {
		p.metrics = filepath.Join(homeDir, "metrics.jsonl")
	}
	return p
}

// openIndex builds the configured content index. The closer is nil when
// the index holds no resources.
func openIndex(settings *domain.AppSettings, paths lorePaths) (*cli.BrowseConfig, io.Closer, error) {
	config := &cli.BrowseConfig{Settings: *settings}

	var (
		index  driven.ContentIndex
		closer io.Closer
	)
	switch settings.Index.Backend {
	case domain.IndexBackendSQLite:
		store, err := sqlite.NewStore(paths.dataDir)
		if err != nil {
			return nil, nil, err
		}
		index, closer = store, store
	default:
		items, err := catalog.LoadPath(paths.catalog)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		if err != nil {
			logger.Warn("no catalog at %s, starting empty", paths.catalog)
		}
		mem := memory.NewIndex(items)
		index = mem
		if settings.Index.Watch && !isDir(paths.catalog) {
			config.CatalogPath = paths.catalog
			config.Reload = mem.Replace
		}
	}

	config.Index = throttle.Wrap(index, settings.Index.Rate, settings.Index.Burst)
	return config, closer, nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
