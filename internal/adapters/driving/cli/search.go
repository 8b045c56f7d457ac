package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lore/internal/core/domain"
)

var (
	searchLimit int
	searchAll   bool
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Searches titles, synopses and article bodies in the catalog.
Every word of the query must appear in a result.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultResultsSize, "results per page")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "fetch every page of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if browseConfig == nil || browseConfig.Index == nil {
		return errNotConfigured
	}

	query := domain.SanitizeQuery(args[0])
	if query == "" {
		return fmt.Errorf("search query is empty")
	}

	ctx := cmd.Context()
	s := newSession(browseConfig, searchLimit)
	defer s.close()

	s.ctrl.LaunchSearch(launchTimestamp(), query)
	if err := s.wait(ctx); err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}
	if s.searchErr != nil {
		return fmt.Errorf("search failed: %w", s.searchErr)
	}
	if searchAll {
		if err := s.loadAll(ctx, domain.ChannelSearch); err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if searchJSON {
		return outputCardsJSON(cmd, s.results)
	}

	if len(s.results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	cmd.Printf("Results for %q:\n", query)
	cmd.Println()
	outputCards(cmd, s.results)
	if !searchAll && s.ctrl.HasMore(domain.ChannelSearch) {
		cmd.Println("More results available, use --all to list them.")
	}
	return nil
}

// card is the JSON form of a listed content item.
type card struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Synopsis string `json:"synopsis,omitempty"`
}

func outputCardsJSON(cmd *cobra.Command, items []*domain.ContentRef) error {
	cards := make([]card, 0, len(items))
	for _, item := range items {
		cards = append(cards, card{
			ID:       item.ID,
			Kind:     item.Kind.String(),
			Title:    item.Title,
			Synopsis: item.Synopsis,
		})
	}

	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCards(cmd *cobra.Command, items []*domain.ContentRef) {
	for i, item := range items {
		// Format: [N] Title (kind) id
		title := item.Title
		if title == "" {
			title = item.ID
		}
		cmd.Printf("  [%d] %s (%s) %s\n", i+1, title, item.Kind, item.ID)
		if item.Synopsis != "" {
			cmd.Printf("      %s\n", item.Synopsis)
		}
	}
	cmd.Println()
}
