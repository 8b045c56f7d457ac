package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/logger"
)

// QueryEvents receives the outcome of queries on one channel.
// Nil callbacks are skipped.
type QueryEvents struct {
	// Started fires when a new primary query is issued.
	Started func()

	// Cleared fires before the first page of fresh results is appended.
	Cleared func()

	// Appended fires with each page of results.
	Appended func(items []*domain.ContentRef)

	// Ready fires once results are displayed. hit is true when the
	// fingerprint was already displayed and no query was issued.
	Ready func(hit bool)

	// Failed fires when the index returns an error other than cancellation.
	Failed func(err error)
}

type queryToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type channelState struct {
	active      bool
	fingerprint string
	spec        domain.QuerySpec
	cursor      domain.Cursor
	token       *queryToken
	loading     bool
	paging      bool
	events      QueryEvents
}

// QueryOrchestrator issues deduplicated, cancellable, paginated content
// queries on named channels. It is not safe for concurrent use: every
// method and every completion runs on the executor's loop.
type QueryOrchestrator struct {
	index    driven.ContentIndex
	exec     driven.Executor
	channels map[domain.Channel]*channelState
}

// NewQueryOrchestrator creates an orchestrator over index.
// Index calls run through exec.
func NewQueryOrchestrator(index driven.ContentIndex, exec driven.Executor) *QueryOrchestrator {
	return &QueryOrchestrator{
		index:    index,
		exec:     exec,
		channels: make(map[domain.Channel]*channelState),
	}
}

// Ensure makes fingerprint the displayed query on ch.
//
// When fingerprint is already displayed, Ready fires synchronously with
// hit set and the index is not called. When it is still loading, ev replaces
// the pending callbacks. Otherwise any in-flight work on the channel is
// cancelled and build is called to produce a new query.
// Returns true when a query was issued.
func (o *QueryOrchestrator) Ensure(ch domain.Channel, fingerprint string, build func() domain.QuerySpec, ev QueryEvents) bool {
	st := o.state(ch)

	if st.active && st.fingerprint == fingerprint {
		st.events = ev
		if !st.loading {
			ev.ready(true)
		}
		return false
	}

	o.cancel(st)

	spec := build()
	tok := newQueryToken()
	st.active = true
	st.fingerprint = fingerprint
	st.spec = spec
	st.token = tok
	st.loading = true
	st.events = ev

	logger.Debug("query %s: issuing %q", ch, fingerprint)
	ev.started()

	o.exec.Go(func() func() {
		res, err := o.index.Query(tok.ctx, spec)
		return func() { o.completePrimary(st, tok, res, err) }
	})
	return true
}

// LoadMore fetches the next page of results on ch.
// It is a no-op without a cursor or while a previous page is loading.
// Returns true when a query was issued.
func (o *QueryOrchestrator) LoadMore(ch domain.Channel) bool {
	st, ok := o.channels[ch]
	if !ok || st.cursor.IsZero() || st.paging || st.token == nil {
		return false
	}

	cursor := st.cursor
	st.cursor = ""
	st.paging = true

	spec := st.spec
	spec.Cursor = cursor
	tok := st.token

	logger.Debug("query %s: loading more for %q", ch, st.fingerprint)

	o.exec.Go(func() func() {
		res, err := o.index.Query(tok.ctx, spec)
		return func() { o.completePage(st, tok, cursor, res, err) }
	})
	return true
}

// Fingerprint returns the active fingerprint on ch, if any.
func (o *QueryOrchestrator) Fingerprint(ch domain.Channel) (string, bool) {
	st, ok := o.channels[ch]
	if !ok || !st.active {
		return "", false
	}
	return st.fingerprint, true
}

// HasMore reports whether ch holds a pagination cursor.
func (o *QueryOrchestrator) HasMore(ch domain.Channel) bool {
	st, ok := o.channels[ch]
	return ok && !st.cursor.IsZero()
}

// Reset cancels in-flight work on ch and forgets its fingerprint.
func (o *QueryOrchestrator) Reset(ch domain.Channel) {
	st, ok := o.channels[ch]
	if !ok {
		return
	}
	o.cancel(st)
	st.active = false
	st.fingerprint = ""
	st.events = QueryEvents{}
}

// Close resets every channel.
func (o *QueryOrchestrator) Close() {
	for ch := range o.channels {
		o.Reset(ch)
	}
}

func (o *QueryOrchestrator) completePrimary(st *channelState, tok *queryToken, res domain.QueryResult, err error) {
	if st.token != tok {
		return
	}
	st.loading = false

	if err != nil {
		if isCancelled(err) {
			return
		}
		logger.Warn("query %q failed: %v", st.fingerprint, err)
		st.active = false
		st.events.failed(err)
		return
	}

	st.cursor = res.Next
	ev := st.events
	ev.cleared()
	ev.appended(res.Items)
	ev.ready(false)
}

func (o *QueryOrchestrator) completePage(st *channelState, tok *queryToken, cursor domain.Cursor, res domain.QueryResult, err error) {
	if st.token != tok {
		return
	}
	st.paging = false

	if err != nil {
		if isCancelled(err) {
			return
		}
		logger.Warn("load more for %q failed: %v", st.fingerprint, err)
		st.cursor = cursor
		st.events.failed(err)
		return
	}

	st.cursor = res.Next
	st.events.appended(res.Items)
}

func (o *QueryOrchestrator) state(ch domain.Channel) *channelState {
	st, ok := o.channels[ch]
	if !ok {
		st = &channelState{}
		o.channels[ch] = st
	}
	return st
}

// cancel invalidates the channel token before anything else changes so
// late completions are dropped.
func (o *QueryOrchestrator) cancel(st *channelState) {
	if st.token != nil {
		st.token.cancel()
		st.token = nil
	}
	st.cursor = ""
	st.loading = false
	st.paging = false
}

func newQueryToken() *queryToken {
	ctx, cancel := context.WithCancel(context.Background())
	return &queryToken{ctx: ctx, cancel: cancel}
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrCancelled)
}

func (ev QueryEvents) started() {
	if ev.Started != nil {
		ev.Started()
	}
}

func (ev QueryEvents) cleared() {
	if ev.Cleared != nil {
		ev.Cleared()
	}
}

func (ev QueryEvents) appended(items []*domain.ContentRef) {
	if ev.Appended != nil {
		ev.Appended(items)
	}
}

func (ev QueryEvents) ready(hit bool) {
	if ev.Ready != nil {
		ev.Ready(hit)
	}
}

func (ev QueryEvents) failed(err error) {
	if ev.Failed != nil {
		ev.Failed(err)
	}
}
