package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/views/article"
	"github.com/custodia-labs/lore/internal/core/domain"
)

var openAll bool

var openCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Print an item from the catalog",
	Long: `Prints an article with its links, the items of a set, or the
description of a media item.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openAll, "all", false, "list every item of a set")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if browseConfig == nil || browseConfig.Index == nil {
		return errNotConfigured
	}
	id := args[0]

	ctx := cmd.Context()
	s := newSession(browseConfig, 0)
	defer s.close()

	s.ctrl.ActivateSearchResult(launchTimestamp(), id, "")
	if err := s.wait(ctx); err != nil {
		return fmt.Errorf("opening %s: %w", id, err)
	}

	switch {
	case s.article != nil:
		printArticle(cmd, s.article)
	case s.set != nil:
		if s.setErr != nil {
			return fmt.Errorf("listing %s: %w", id, s.setErr)
		}
		if openAll {
			if err := s.loadAll(ctx, domain.ChannelSection); err != nil {
				return fmt.Errorf("listing %s: %w", id, err)
			}
		}
		cmd.Printf("%s\n\n", s.set.Title)
		outputCards(cmd, s.items)
	case s.media != nil:
		cmd.Printf("%s (media)\n", s.media.Title)
		if s.media.Synopsis != "" {
			cmd.Println(s.media.Synopsis)
		}
	default:
		return fmt.Errorf("opening %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func printArticle(cmd *cobra.Command, a *domain.ContentRef) {
	cmd.Println(a.Title)
	cmd.Println()
	cmd.Println(a.Body)

	links := article.ParseLinks(a.Body)
	if len(links) == 0 {
		return
	}
	cmd.Println()
	cmd.Println("Links:")
	for i, link := range links {
		cmd.Printf("  [%d] %s (%s)\n", i+1, link.Label, link.ID)
	}
}
