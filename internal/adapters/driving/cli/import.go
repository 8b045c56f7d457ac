package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lore/internal/adapters/driven/catalog"
	"github.com/custodia-labs/lore/internal/logger"
)

var importCmd = &cobra.Command{
	Use:   "import [catalog.toml | directory]",
	Short: "Import a catalog into the SQLite index",
	Long: `Reads a TOML catalog, or a directory of markdown files, and stores its
items in the SQLite index used by the sqlite backend. The previous contents
of the index are replaced.

In a markdown directory every file becomes an article and every folder a
set on the home page. Links between markdown files become article links.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if openImporter == nil {
		return errors.New("import target not configured")
	}

	logger.Section("Reading catalog")
	items, err := catalog.LoadPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	logger.Debug("read %d items from %s", len(items), args[0])

	store, err := openImporter()
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer store.Close()

	logger.Section("Importing")
	ctx := cmd.Context()
	n, err := store.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	total, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d items into %s (%d total).\n", n, store.Path(), total)
	return nil
}
