package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lore/internal/core/domain"
)

var errNoSettings = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change browsing, index and metrics settings.

Settings are stored in config.toml in the lore home directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by its config key.

Run 'lore settings keys' to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the index backend and article layout.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Browse]")
	cmd.Printf("  Results per page: %d\n", settings.Browse.ResultsSize)
	cmd.Printf("  Layout: %s\n", settings.Browse.Layout.Description())
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", settings.Index.Backend.Description())
	cmd.Printf("  Catalog: %s\n", orDefault(settings.Index.CatalogPath))
	cmd.Printf("  Data dir: %s\n", orDefault(settings.Index.DataDir))
	cmd.Printf("  Watch catalog: %s\n", yesNo(settings.Index.Watch))
	if settings.Index.Rate > 0 {
		cmd.Printf("  Rate limit: %g/s (burst %d)\n", settings.Index.Rate, settings.Index.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	cmd.Println("[Metrics]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.Metrics.Enabled))
	if settings.Metrics.Enabled {
		cmd.Printf("  Path: %s\n", orDefault(settings.Metrics.Path))
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'lore settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettings
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Lore Settings Wizard")
	cmd.Println("====================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Index backend
	cmd.Println("Step 1: Select Index Backend")
	cmd.Println("----------------------------")
	backends := domain.AllIndexBackends()
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Index.Backend {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Index.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]
	cmd.Println()

	// Step 2: Catalog or database location
	if settings.Index.Backend == domain.IndexBackendMemory {
		cmd.Println("Step 2: Catalog File")
		cmd.Println("--------------------")
		cmd.Printf("Path to catalog.toml [%s]: ", orDefault(settings.Index.CatalogPath))
		if path := readLine(reader); path != "" {
			settings.Index.CatalogPath = path
		}
	} else {
		cmd.Println("Step 2: Data Directory")
		cmd.Println("----------------------")
		cmd.Printf("Directory for the database [%s]: ", orDefault(settings.Index.DataDir))
		if dir := readLine(reader); dir != "" {
			settings.Index.DataDir = dir
		}
	}
	cmd.Println()

	// Step 3: Layout
	cmd.Println("Step 3: Select Article Layout")
	cmd.Println("-----------------------------")
	layouts := domain.AllLayouts()
	current = 1
	for i, l := range layouts {
		cmd.Printf("  %d. %s\n", i+1, l.Description())
		if l == settings.Browse.Layout {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Browse.Layout = layouts[parseChoice(readLine(reader), len(layouts), current)-1]
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
