package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var homeJSON bool

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "List the sets shown on the home page",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

func init() {
	homeCmd.Flags().BoolVar(&homeJSON, "json", false, "output sets as JSON")
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, _ []string) error {
	if browseConfig == nil || browseConfig.Index == nil {
		return errNotConfigured
	}

	s := newSession(browseConfig, 0)
	defer s.close()

	s.ctrl.DesktopLaunch(launchTimestamp())
	if err := s.wait(cmd.Context()); err != nil {
		return fmt.Errorf("loading home page: %w", err)
	}

	if homeJSON {
		return outputCardsJSON(cmd, s.sets)
	}
	if len(s.sets) == 0 {
		cmd.Println("No sets found.")
		return nil
	}
	cmd.Println("Sets:")
	cmd.Println()
	outputCards(cmd, s.sets)
	return nil
}
