package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/ports/driving"
	"github.com/custodia-labs/lore/internal/logger"
)

// Ensure NavigationController implements the interfaces.
var (
	_ driving.Navigator = (*NavigationController)(nil)
	_ driving.Launcher  = (*NavigationController)(nil)
)

// SearchMetricID is the metric event recorded for each submitted search.
const SearchMetricID = "a628c936-5d87-434a-a57a-015a0f223838"

type homeSetsState int

const (
	homeSetsNone homeSetsState = iota
	homeSetsLoading
	homeSetsLoaded
)

// NavigationConfig holds the collaborators of a NavigationController.
type NavigationConfig struct {
	Index    driven.ContentIndex
	Renderer driven.Renderer
	Executor driven.Executor

	// Metrics is optional.
	Metrics driven.MetricsRecorder

	Browse domain.BrowseSettings
	AppID  string
}

// NavigationController turns user intents into history transitions and
// content queries, and tells the renderer what to display.
//
// Like the orchestrator it drives, it runs on a single loop: Dispatch, the
// Launcher methods and executor completions must never run concurrently.
type NavigationController struct {
	index    driven.ContentIndex
	renderer driven.Renderer
	exec     driven.Executor
	metrics  driven.MetricsRecorder
	browse   domain.BrowseSettings
	appID    string

	history *HistoryPresenter
	queries *QueryOrchestrator

	ctx    context.Context
	cancel context.CancelFunc

	launched    bool
	homeSets    homeSetsState
	homeWaiters []func()
}

// NewNavigationController creates a controller starting with empty history.
func NewNavigationController(cfg NavigationConfig) *NavigationController {
	browse := cfg.Browse
	if browse.ResultsSize <= 0 {
		browse.ResultsSize = domain.DefaultResultsSize
	}
	if !browse.Layout.IsValid() {
		browse.Layout = domain.LayoutA
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &NavigationController{
		index:    cfg.Index,
		renderer: cfg.Renderer,
		exec:     cfg.Executor,
		metrics:  metrics,
		browse:   browse,
		appID:    cfg.AppID,
		history:  NewHistoryPresenter(),
		queries:  NewQueryOrchestrator(cfg.Index, cfg.Executor),
		ctx:      ctx,
		cancel:   cancel,
	}
	c.history.Subscribe(c.onHistoryChanged)
	return c
}

// Current returns the page being displayed.
func (c *NavigationController) Current() *domain.PageState {
	return c.history.Current()
}

// CanGoBack reports whether there is history behind the current page.
func (c *NavigationController) CanGoBack() bool {
	return c.history.Peek(-1) != nil
}

// CanGoForward reports whether there is history ahead of the current page.
func (c *NavigationController) CanGoForward() bool {
	return c.history.Peek(1) != nil
}

// HasMore reports whether a LoadMore on ch would fetch anything.
func (c *NavigationController) HasMore(ch domain.Channel) bool {
	return c.queries.HasMore(ch)
}

// Close cancels outstanding queries. Late completions become no-ops.
func (c *NavigationController) Close() {
	c.queries.Close()
	c.cancel()
}

// Dispatch handles one user intent.
func (c *NavigationController) Dispatch(intent domain.Intent) {
	switch in := intent.(type) {
	case domain.SearchSubmitted:
		c.doSearch(in.Text)
	case domain.LinkClicked:
		c.loadURI(in.ID)
	case domain.SetClicked:
		if c.requireModel(in.Model, intent) {
			c.history.SetCurrentFromSpec(domain.PageSpec{
				PageType:     domain.PageSection,
				Model:        in.Model,
				ContextLabel: in.Model.Title,
			})
		}
	case domain.ItemClicked:
		if c.requireModel(in.Model, intent) {
			c.showArticle(in.Model, "")
		}
	case domain.SearchResultClicked:
		if c.requireModel(in.Model, intent) {
			c.showArticle(in.Model, c.currentQuery())
		}
	case domain.AutocompleteClicked:
		if c.requireModel(in.Model, intent) {
			c.showArticle(in.Model, domain.SanitizeQuery(in.Text))
		}
	case domain.BackClicked:
		c.goBack()
	case domain.ForwardClicked:
		c.history.Forward()
	case domain.HomeClicked:
		c.history.SetCurrentFromSpec(domain.PageSpec{PageType: domain.PageHome})
	case domain.LoadMore:
		c.queries.LoadMore(in.Channel)
	case domain.SearchFocused:
		c.render(domain.HideMedia{})
	default:
		logger.Warn("unhandled intent %T", intent)
	}
}

// DesktopLaunch shows the home page and focuses the search box once the
// home sets are loaded. It does nothing after the first launch.
func (c *NavigationController) DesktopLaunch(timestamp uint32) {
	if c.launched {
		return
	}
	c.launched = true

	c.history.SetCurrentFromSpec(domain.PageSpec{PageType: domain.PageHome, Timestamp: timestamp})
	c.loadHomeSets(func() {
		c.render(domain.FirstLaunch{Timestamp: timestamp, LaunchType: domain.LaunchDesktop})
		c.render(domain.FocusSearch{})
	})
}

// LaunchSearch starts on the results for query.
// An empty query falls back to the home page.
func (c *NavigationController) LaunchSearch(timestamp uint32, query string) {
	c.render(domain.ShowSearchPage{})
	if !c.doSearch(query) {
		c.history.SetCurrentFromSpec(domain.PageSpec{PageType: domain.PageHome, Timestamp: timestamp})
	}
	c.loadHomeSets(nil)
	c.dispatchLaunch(timestamp, domain.LaunchSearch)
}

// ActivateSearchResult starts on the article with the given ID.
// If the article cannot be loaded the home page is shown instead.
func (c *NavigationController) ActivateSearchResult(timestamp uint32, id, query string) {
	c.render(domain.ShowArticlePage{})

	ctx := c.ctx
	c.exec.Go(func() func() {
		model, err := c.index.Get(ctx, id)
		return func() {
			if err != nil {
				if !isCancelled(err) {
					logger.Warn("activating search result %s: %v", id, err)
					c.history.SetCurrentFromSpec(domain.PageSpec{PageType: domain.PageHome, Timestamp: timestamp})
				}
			} else {
				c.loadModel(model, domain.SanitizeQuery(query))
			}
			c.dispatchLaunch(timestamp, domain.LaunchSearchResult)
		}
	})
	c.loadHomeSets(nil)
}

func (c *NavigationController) onHistoryChanged(ev HistoryChanged) {
	state := ev.State

	c.render(domain.HideMedia{})
	c.render(domain.ClearHighlightedItem{Model: state.Model()})

	switch state.PageType() {
	case domain.PageHome:
		c.render(domain.ShowHome{})
	case domain.PageSearch:
		c.render(domain.ShowSearchPage{})
		c.updateSearchResults(state.Query())
	case domain.PageSection:
		c.updateSetResults(state, true)
	case domain.PageArticle:
		if c.browse.Layout == domain.LayoutB {
			c.updateArticleList()
		}
		c.render(domain.ShowArticle{Model: state.Model(), Direction: c.articleDirection(ev.GoingBack)})
		c.render(domain.ShowArticlePage{})
	}

	c.render(domain.SetSearchText{Text: state.Query()})
}

func (c *NavigationController) updateSearchResults(query string) {
	size := c.browse.ResultsSize
	c.queries.Ensure(domain.ChannelSearch, query,
		func() domain.QuerySpec {
			return domain.QuerySpec{Text: query, Limit: size}
		},
		QueryEvents{
			Started: func() { c.render(domain.SearchStarted{Query: query}) },
			Cleared: func() { c.render(domain.ClearSearch{}) },
			Appended: func(items []*domain.ContentRef) {
				c.render(domain.AppendSearch{Items: items})
			},
			Ready: func(bool) {
				c.updateHighlight()
				c.render(domain.SearchReady{Query: query})
			},
			Failed: func(err error) {
				c.render(domain.SearchFailed{Query: query, Err: fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)})
			},
		})
}

// updateSetResults lists the children of the state's set. With showPage the
// section page is shown once the first results are in, or at once on a
// dedup hit.
func (c *NavigationController) updateSetResults(state *domain.PageState, showPage bool) {
	model := state.Model()
	if model == nil {
		if showPage {
			c.render(domain.ShowSectionPage{})
		}
		return
	}

	size := c.browse.ResultsSize
	showSectionPage := func() {
		if showPage && c.history.Current() == state {
			c.render(domain.ShowSectionPage{})
		}
	}

	c.queries.Ensure(domain.ChannelSection, model.ID,
		func() domain.QuerySpec {
			return domain.QuerySpec{Tags: model.ChildTags, Limit: size}
		},
		QueryEvents{
			Started: func() { c.render(domain.ShowSet{Model: model}) },
			Cleared: func() { c.render(domain.ClearItems{}) },
			Appended: func(items []*domain.ContentRef) {
				c.render(domain.AppendItems{Items: items})
			},
			Ready: func(bool) {
				showSectionPage()
				c.updateHighlight()
				c.render(domain.SetReady{Model: model})
			},
			Failed: func(err error) {
				showSectionPage()
				c.render(domain.SetFailed{Model: model, Err: err})
			},
		})
}

// updateArticleList rebuilds the list the current article was reached from.
func (c *NavigationController) updateArticleList() {
	origin := c.history.SearchBackwards(0, func(s *domain.PageState) bool {
		return s.Query() != "" || s.PageType() == domain.PageSection
	})
	if origin == nil {
		return
	}

	if origin.PageType() == domain.PageSection {
		c.updateSetResults(origin, false)
		return
	}
	c.updateSearchResults(origin.Query())
}

func (c *NavigationController) updateHighlight() {
	cur := c.history.Current()
	if cur == nil || cur.PageType() != domain.PageArticle || cur.Model() == nil {
		return
	}
	c.render(domain.HighlightItem{Model: cur.Model()})
}

// articleDirection looks at the page navigation came from.
func (c *NavigationController) articleDirection(goingBack bool) domain.Direction {
	offset := -1
	if goingBack {
		offset = 1
	}

	from := c.history.Peek(offset)
	if from == nil || from.PageType() != domain.PageArticle {
		return domain.DirectionNone
	}
	if goingBack {
		return domain.DirectionBackward
	}
	return domain.DirectionForward
}

func (c *NavigationController) goBack() {
	allowed := []domain.PageType{domain.PageHome}
	if cur := c.history.Current(); cur != nil && cur.PageType() == domain.PageArticle {
		allowed = append(allowed, domain.PageSection, domain.PageSearch)
	}

	target := c.history.SearchBackwards(-1, func(s *domain.PageState) bool {
		for _, t := range allowed {
			if s.PageType() == t {
				return true
			}
		}
		return false
	})
	if target == nil {
		target = domain.HomePage()
	}
	c.history.SetCurrent(target, true)
}

// doSearch records and navigates to a search. Returns false when the text
// sanitizes to nothing.
func (c *NavigationController) doSearch(text string) bool {
	query := domain.SanitizeQuery(text)
	if query == "" {
		logger.Debug("dropping empty search")
		return false
	}

	c.metrics.Record(SearchMetricID, map[string]any{
		"query":  query,
		"app_id": c.appID,
	})
	c.history.SetCurrentFromSpec(domain.PageSpec{PageType: domain.PageSearch, Query: query})
	return true
}

func (c *NavigationController) showArticle(model *domain.ContentRef, query string) {
	c.history.SetCurrentFromSpec(domain.PageSpec{
		PageType:     domain.PageArticle,
		Model:        model,
		Query:        query,
		ContextLabel: model.Title,
	})
}

func (c *NavigationController) loadURI(id string) {
	ctx := c.ctx
	c.exec.Go(func() func() {
		model, err := c.index.Get(ctx, id)
		return func() {
			if err != nil {
				if !isCancelled(err) {
					logger.Warn("opening %s: %v", id, err)
				}
				return
			}
			c.loadModel(model, "")
		}
	})
}

func (c *NavigationController) loadModel(model *domain.ContentRef, query string) {
	switch model.Kind {
	case domain.KindArticle:
		c.showArticle(model, query)
	case domain.KindSet:
		c.history.SetCurrentFromSpec(domain.PageSpec{
			PageType:     domain.PageSection,
			Model:        model,
			ContextLabel: model.Title,
		})
	case domain.KindMedia:
		c.render(domain.ShowMedia{Model: model})
	default:
		logger.Warn("opening %s: %v: %q", model.ID, domain.ErrUnsupportedKind, model.Kind)
	}
}

func (c *NavigationController) loadHomeSets(done func()) {
	switch c.homeSets {
	case homeSetsLoaded:
		if done != nil {
			done()
		}
		return
	case homeSetsLoading:
		c.homeWaiters = append(c.homeWaiters, done)
		return
	}

	c.homeSets = homeSetsLoading
	c.homeWaiters = append(c.homeWaiters, done)

	ctx := c.ctx
	c.exec.Go(func() func() {
		res, err := c.index.Query(ctx, domain.QuerySpec{
			Tags:  []string{domain.HomePageTag},
			Limit: domain.NoLimit,
		})
		return func() {
			if err != nil {
				if !isCancelled(err) {
					logger.Warn("loading home sets: %v", err)
				}
				c.homeSets = homeSetsNone
			} else {
				c.homeSets = homeSetsLoaded
				c.render(domain.AppendSets{Items: domain.SortFeaturedFirst(res.Items)})
			}

			waiters := c.homeWaiters
			c.homeWaiters = nil
			for _, fn := range waiters {
				if fn != nil {
					fn()
				}
			}
		}
	})
}

func (c *NavigationController) dispatchLaunch(timestamp uint32, launchType domain.LaunchType) {
	if c.launched {
		return
	}
	c.launched = true
	c.render(domain.FirstLaunch{Timestamp: timestamp, LaunchType: launchType})
}

func (c *NavigationController) currentQuery() string {
	if cur := c.history.Current(); cur != nil {
		return cur.Query()
	}
	return ""
}

func (c *NavigationController) requireModel(model *domain.ContentRef, intent domain.Intent) bool {
	if model == nil {
		logger.Warn("%T without a model", intent)
		return false
	}
	return true
}

func (c *NavigationController) render(intent domain.RenderIntent) {
	c.renderer.Render(intent)
}

type nopMetrics struct{}

func (nopMetrics) Record(string, map[string]any) {}
