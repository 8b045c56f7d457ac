// Package cli provides the lore command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/ports/driving"
	"github.com/custodia-labs/lore/internal/logger"
)

var (
	version = "dev"
	verbose bool
)

// Services wired in by main.
var (
	settingsService driving.SettingsService
	browseConfig    *BrowseConfig
	openImporter    func() (Importer, error)
)

// errNotConfigured is returned when a command runs without its services.
var errNotConfigured = errors.New("content index not configured")

// BrowseConfig holds what the browsing commands need to build a
// navigation controller.
type BrowseConfig struct {
	// Index answers content queries.
	Index driven.ContentIndex

	// Metrics is optional.
	Metrics driven.MetricsRecorder

	// Settings are the resolved application settings.
	Settings domain.AppSettings

	// CatalogPath is watched for changes while browsing when Reload is set.
	CatalogPath string

	// Reload receives the catalog items after the file changed.
	Reload func(items []*domain.ContentRef)
}

// Importer loads catalog items into a persistent index.
type Importer interface {
	Import(ctx context.Context, items []*domain.ContentRef) (int, error)
	Count(ctx context.Context) (int, error)
	Path() string
	Close() error
}

var rootCmd = &cobra.Command{
	Use:   "lore",
	Short: "Browse an offline knowledge catalog",
	Long: `Lore is a terminal browser for offline content catalogs.

Browse sets of articles from the home page, search the catalog, and follow
links between articles with back and forward history.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runBrowse,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service used by the settings command.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBrowseConfig sets the configuration for the browsing commands.
func SetBrowseConfig(config *BrowseConfig) {
	browseConfig = config
}

// SetImporterFactory sets how the import command opens its target index.
func SetImporterFactory(open func() (Importer, error)) {
	openImporter = open
}
