package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/lore/internal/core/domain"
)

// --- Test doubles ---

// manualExecutor queues work until the test runs it.
// Work and completion run on the test goroutine so ordering is explicit.
type manualExecutor struct {
	pending []func() func()
}

func (e *manualExecutor) Go(work func() func()) {
	e.pending = append(e.pending, work)
}

// runNext runs the oldest queued work and applies its completion.
func (e *manualExecutor) runNext() bool {
	if len(e.pending) == 0 {
		return false
	}
	work := e.pending[0]
	e.pending = e.pending[1:]
	if done := work(); done != nil {
		done()
	}
	return true
}

// runAll drains the queue, including work queued by completions.
func (e *manualExecutor) runAll() {
	for e.runNext() {
	}
}

// take removes queued work without running it, so tests can settle
// calls out of order.
func (e *manualExecutor) take() []func() func() {
	pending := e.pending
	e.pending = nil
	return pending
}

// mockIndex implements driven.ContentIndex for testing.
type mockIndex struct {
	mu      sync.Mutex
	queries []domain.QuerySpec
	items   map[string]*domain.ContentRef

	ignoreCancel bool

	QueryFunc func(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error)
}

func newMockIndex(items ...*domain.ContentRef) *mockIndex {
	m := &mockIndex{items: make(map[string]*domain.ContentRef)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *mockIndex) Query(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, spec)
	m.mu.Unlock()

	if !m.ignoreCancel && ctx.Err() != nil {
		return domain.QueryResult{}, ctx.Err()
	}
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, spec)
	}
	return domain.QueryResult{}, nil
}

func (m *mockIndex) Get(_ context.Context, id string) (*domain.ContentRef, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (m *mockIndex) queryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

func (m *mockIndex) lastQuery() domain.QuerySpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[len(m.queries)-1]
}

// recordingRenderer implements driven.Renderer for testing.
type recordingRenderer struct {
	intents []domain.RenderIntent
}

func (r *recordingRenderer) Render(intent domain.RenderIntent) {
	r.intents = append(r.intents, intent)
}

func (r *recordingRenderer) reset() {
	r.intents = nil
}

// countOf returns how many intents of type T were rendered.
func countOf[T domain.RenderIntent](r *recordingRenderer) int {
	n := 0
	for _, intent := range r.intents {
		if _, ok := intent.(T); ok {
			n++
		}
	}
	return n
}

// lastOf returns the most recent intent of type T.
func lastOf[T domain.RenderIntent](r *recordingRenderer) (T, bool) {
	for i := len(r.intents) - 1; i >= 0; i-- {
		if v, ok := r.intents[i].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// indexOf returns the position of the first intent of type T, or -1.
func indexOf[T domain.RenderIntent](r *recordingRenderer) int {
	for i, intent := range r.intents {
		if _, ok := intent.(T); ok {
			return i
		}
	}
	return -1
}

// mockMetrics implements driven.MetricsRecorder for testing.
type mockMetrics struct {
	events   []string
	payloads []map[string]any
}

func (m *mockMetrics) Record(eventID string, payload map[string]any) {
	m.events = append(m.events, eventID)
	m.payloads = append(m.payloads, payload)
}

func article(id, title string) *domain.ContentRef {
	return &domain.ContentRef{ID: id, Kind: domain.KindArticle, Title: title}
}

func setRef(id, title string, childTags ...string) *domain.ContentRef {
	return &domain.ContentRef{ID: id, Kind: domain.KindSet, Title: title, ChildTags: childTags}
}
