package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lore/internal/adapters/driven/catalog"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/services"
	"github.com/custodia-labs/lore/internal/logger"
)

var (
	browseSearch string
	browseOpen   string
	browseQuery  string
)

// isTerminal reports whether the UI can take over stdout.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive browser",
	Long: `Launch the interactive terminal browser.

Starts on the home page unless --search or --open is given.

Controls:
  ↑/k, ↓/j - Move through cards
  Enter    - Open / Search
  /        - Focus the search box
  Esc, [   - Back
  ]        - Forward
  H        - Home
  1-9      - Follow an article link
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseSearch, "search", "s", "", "start on the results for a query")
	browseCmd.Flags().StringVar(&browseOpen, "open", "", "start on the item with this ID")
	browseCmd.Flags().StringVar(&browseQuery, "query", "", "search context for --open")
	browseCmd.MarkFlagsMutuallyExclusive("search", "open")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if browseConfig == nil || browseConfig.Index == nil {
		return errNotConfigured
	}
	if !isTerminal() {
		return errors.New("browse needs a terminal, use search or open instead")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startCatalogWatcher(ctx, browseConfig)

	var ctrl *services.NavigationController
	factory := func(r driven.Renderer, e driven.Executor) (*tui.Ports, error) {
		ctrl = services.NewNavigationController(services.NavigationConfig{
			Index:    browseConfig.Index,
			Renderer: r,
			Executor: e,
			Metrics:  browseConfig.Metrics,
			Browse:   browseConfig.Settings.Browse,
			AppID:    browseConfig.Settings.AppID,
		})
		return &tui.Ports{Navigator: ctrl, Launcher: ctrl}, nil
	}

	app, err := tui.NewApp(factory, browseOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer ctrl.Close()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func browseOptions() []tui.Option {
	opts := []tui.Option{tui.WithLayout(browseConfig.Settings.Browse.Layout)}
	switch {
	case browseSearch != "":
		opts = append(opts, tui.WithSearch(browseSearch))
	case browseOpen != "":
		opts = append(opts, tui.WithSearchResult(browseOpen, browseQuery))
	}
	return opts
}

// startCatalogWatcher reloads the catalog in the background until ctx ends.
func startCatalogWatcher(ctx context.Context, config *BrowseConfig) {
	if config.Reload == nil || config.CatalogPath == "" {
		return
	}

	w, err := catalog.NewWatcher(config.CatalogPath, config.Reload)
	if err != nil {
		logger.Warn("catalog reload disabled: %v", err)
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("catalog watcher stopped: %v", err)
		}
	}()
}
