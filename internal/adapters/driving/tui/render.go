package tui

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/logger"
)

// Ensure App implements the renderer port.
var _ driven.Renderer = (*App)(nil)

// Render applies one render intent to the screen state.
// It is only called from the Bubbletea loop, inside Init or Update.
//
//nolint:gocyclo // one case per render intent
func (a *App) Render(intent domain.RenderIntent) {
	switch in := intent.(type) {
	case domain.ShowHome:
		a.page = messages.PageHome
	case domain.ShowSearchPage:
		a.page = messages.PageSearch
	case domain.ShowSectionPage:
		a.page = messages.PageSection
	case domain.ShowArticlePage:
		a.page = messages.PageArticle
	case domain.ShowArticle:
		a.article.SetArticle(in.Model, in.Direction)

	case domain.ShowSet:
		a.set = in.Model
		a.setLoading = true
		a.setErr = nil
		a.items.SetTitle(in.Model.Title)
		a.side = a.items
	case domain.ClearItems:
		a.items.Clear()
		a.side = a.items
	case domain.AppendItems:
		a.items.Append(in.Items)
		a.side = a.items
	case domain.SetReady:
		a.set = in.Model
		a.setLoading = false
		a.items.SetTitle(in.Model.Title)
		a.side = a.items
	case domain.SetFailed:
		a.setLoading = false
		a.setErr = in.Err
		a.side = a.items

	case domain.SearchStarted:
		a.query = in.Query
		a.searching = true
		a.searchErr = nil
		a.results.SetTitle(fmt.Sprintf("Results for %q", in.Query))
		a.side = a.results
	case domain.ClearSearch:
		a.results.Clear()
		a.side = a.results
	case domain.AppendSearch:
		a.results.Append(in.Items)
		a.side = a.results
	case domain.SearchReady:
		a.query = in.Query
		a.searching = false
		a.results.SetTitle(fmt.Sprintf("Results for %q", in.Query))
		a.side = a.results
	case domain.SearchFailed:
		a.searching = false
		a.searchErr = in.Err
		if errors.Is(in.Err, domain.ErrSearchFailed) {
			a.searchErr = domain.ErrSearchFailed
		}
		a.side = a.results

	case domain.AppendSets:
		a.sets.Append(in.Items)

	case domain.ShowMedia:
		a.media = in.Model
	case domain.HideMedia:
		a.media = nil

	case domain.HighlightItem:
		a.setHighlight(in.Model)
	case domain.ClearHighlightedItem:
		a.setHighlight(nil)

	case domain.SetSearchText:
		a.input.SetValue(in.Text)
	case domain.FocusSearch:
		a.focusPending = true
	case domain.FirstLaunch:
		launch := in
		a.firstLaunch = &launch
		logger.Debug("first launch: %s at %d", in.LaunchType, in.Timestamp)

	default:
		logger.Warn("unhandled render intent %T", intent)
	}
}

func (a *App) setHighlight(item *domain.ContentRef) {
	for _, l := range []*list.CardList{a.sets, a.items, a.results} {
		l.SetHighlight(item)
	}
}
