package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/lore/internal/adapters/driven/loop"
	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/services"
	"github.com/custodia-labs/lore/internal/logger"
)

// session runs a navigation controller without a terminal UI and keeps
// what it was asked to render.
type session struct {
	loop *loop.Loop
	ctrl *services.NavigationController

	sets      []*domain.ContentRef
	results   []*domain.ContentRef
	items     []*domain.ContentRef
	article   *domain.ContentRef
	set       *domain.ContentRef
	media     *domain.ContentRef
	searchErr error
	setErr    error
}

func newSession(config *BrowseConfig, resultsSize int) *session {
	s := &session{loop: loop.New()}

	browse := config.Settings.Browse
	if resultsSize > 0 {
		browse.ResultsSize = resultsSize
	}

	s.ctrl = services.NewNavigationController(services.NavigationConfig{
		Index:    config.Index,
		Renderer: s,
		Executor: s.loop,
		Metrics:  config.Metrics,
		Browse:   browse,
		AppID:    config.Settings.AppID,
	})
	return s
}

// Render implements driven.Renderer.
func (s *session) Render(intent domain.RenderIntent) {
	switch in := intent.(type) {
	case domain.AppendSets:
		s.sets = append(s.sets, in.Items...)
	case domain.ClearSearch:
		s.results = nil
	case domain.AppendSearch:
		s.results = append(s.results, in.Items...)
	case domain.SearchFailed:
		s.searchErr = in.Err
	case domain.ClearItems:
		s.items = nil
	case domain.AppendItems:
		s.items = append(s.items, in.Items...)
	case domain.SetFailed:
		s.setErr = in.Err
	case domain.ShowArticle:
		s.article = in.Model
	case domain.ShowSet:
		s.set = in.Model
	case domain.ShowMedia:
		s.media = in.Model
	default:
		logger.Debug("headless: ignoring %T", intent)
	}
}

// wait applies completions until the controller is idle.
func (s *session) wait(ctx context.Context) error {
	return s.loop.Drain(ctx)
}

// loadAll pages through ch until the index has nothing more.
func (s *session) loadAll(ctx context.Context, ch domain.Channel) error {
	for s.ctrl.HasMore(ch) {
		s.ctrl.Dispatch(domain.LoadMore{Channel: ch})
		if err := s.wait(ctx); err != nil {
			return err
		}
		if err := s.failure(ch); err != nil {
			return err
		}
	}
	return nil
}

// failure returns the last load error reported for ch.
func (s *session) failure(ch domain.Channel) error {
	if ch == domain.ChannelSearch {
		return s.searchErr
	}
	return s.setErr
}

func (s *session) close() {
	s.ctrl.Close()
	s.loop.Close()
}

func launchTimestamp() uint32 {
	return uint32(time.Now().Unix())
}
