package services

import "github.com/custodia-labs/lore/internal/core/domain"

// HistoryChanged is emitted once per successful navigation.
type HistoryChanged struct {
	State     *domain.PageState
	GoingBack bool
}

// HistoryPresenter is the single writer of the history stack and the
// source of truth for the current page.
type HistoryPresenter struct {
	stack       *HistoryStack
	subscribers []func(HistoryChanged)
}

// NewHistoryPresenter creates a presenter over an empty history.
func NewHistoryPresenter() *HistoryPresenter {
	return &HistoryPresenter{stack: NewHistoryStack()}
}

// Subscribe registers fn to be called on every history change.
func (p *HistoryPresenter) Subscribe(fn func(HistoryChanged)) {
	p.subscribers = append(p.subscribers, fn)
}

// Current returns the current page state.
func (p *HistoryPresenter) Current() *domain.PageState {
	return p.stack.Current()
}

// Peek returns the entry at offset without navigating.
func (p *HistoryPresenter) Peek(offset int) *domain.PageState {
	return p.stack.Navigate(offset)
}

// Len returns the number of history entries.
func (p *HistoryPresenter) Len() int {
	return p.stack.Len()
}

// SetCurrentFromSpec builds a page state and makes it current.
// Returns false without emitting when it equals the current page.
func (p *HistoryPresenter) SetCurrentFromSpec(spec domain.PageSpec) bool {
	state := domain.NewPageState(spec)
	if state.Equal(p.stack.Current()) {
		return false
	}

	p.stack.Push(state)
	p.emit(HistoryChanged{State: state, GoingBack: false})
	return true
}

// SetCurrent makes an existing state current.
//
// States already in the history are reached by moving through it, and the
// event carries the resolved direction. Other states are pushed like a new
// navigation, with goingBack passed through for back-navigation fallbacks.
func (p *HistoryPresenter) SetCurrent(state *domain.PageState, goingBack bool) bool {
	if state == nil {
		return false
	}

	if offset, ok := p.stack.OffsetOf(state); ok {
		if offset == 0 {
			return false
		}
		back, _ := p.stack.CommitTo(offset)
		p.emit(HistoryChanged{State: state, GoingBack: back})
		return true
	}

	if state.Equal(p.stack.Current()) {
		return false
	}
	p.stack.Push(state)
	p.emit(HistoryChanged{State: state, GoingBack: goingBack})
	return true
}

// Back moves one entry back. Returns false when there is no history.
func (p *HistoryPresenter) Back() bool {
	return p.step(-1)
}

// Forward moves one entry forward. Returns false when there is nothing ahead.
func (p *HistoryPresenter) Forward() bool {
	return p.step(1)
}

// SearchBackwards returns the nearest entry from start matching pred.
func (p *HistoryPresenter) SearchBackwards(start int, pred func(*domain.PageState) bool) *domain.PageState {
	state, _ := p.stack.Search(start, pred)
	return state
}

func (p *HistoryPresenter) step(offset int) bool {
	back, ok := p.stack.CommitTo(offset)
	if !ok {
		return false
	}
	p.emit(HistoryChanged{State: p.stack.Current(), GoingBack: back})
	return true
}

func (p *HistoryPresenter) emit(ev HistoryChanged) {
	for _, fn := range p.subscribers {
		fn(ev)
	}
}
