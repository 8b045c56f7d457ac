package services

import "github.com/custodia-labs/lore/internal/core/domain"

// HistoryStack is a back/forward list of page states around a current one.
//
// Offsets are relative to current: 0 is current, -1 the most recent page
// before it, +1 the nearest page after it. Both slices keep the nearest
// entry at the end so moving one step is a single append/truncate.
type HistoryStack struct {
	back    []*domain.PageState
	forward []*domain.PageState
	current *domain.PageState
}

// NewHistoryStack creates an empty history stack.
func NewHistoryStack() *HistoryStack {
	return &HistoryStack{}
}

// Current returns the current page state, or nil before the first push.
func (h *HistoryStack) Current() *domain.PageState {
	return h.current
}

// BackLen returns the number of entries behind current.
func (h *HistoryStack) BackLen() int {
	return len(h.back)
}

// ForwardLen returns the number of entries ahead of current.
func (h *HistoryStack) ForwardLen() int {
	return len(h.forward)
}

// Len returns the total number of entries including current.
func (h *HistoryStack) Len() int {
	if h.current == nil {
		return 0
	}
	return len(h.back) + len(h.forward) + 1
}

// Push makes state current. The previous current moves to the back list
// and the forward list is discarded.
func (h *HistoryStack) Push(state *domain.PageState) {
	if h.current != nil {
		h.back = append(h.back, h.current)
	}
	h.forward = nil
	h.current = state
}

// Navigate returns the entry at offset without moving current.
// Returns nil if there is no entry that far in that direction.
func (h *HistoryStack) Navigate(offset int) *domain.PageState {
	switch {
	case offset == 0:
		return h.current
	case offset < 0:
		n := -offset
		if n > len(h.back) {
			return nil
		}
		return h.back[len(h.back)-n]
	default:
		if offset > len(h.forward) {
			return nil
		}
		return h.forward[len(h.forward)-offset]
	}
}

// CommitTo moves current by offset entries, keeping every entry in order.
// It reports the direction of travel and false, without mutating, when the
// offset runs past the available history.
func (h *HistoryStack) CommitTo(offset int) (goingBack, ok bool) {
	if h.current == nil || h.Navigate(offset) == nil {
		return false, false
	}
	if offset == 0 {
		return false, true
	}

	if offset < 0 {
		for i := 0; i < -offset; i++ {
			h.forward = append(h.forward, h.current)
			h.current = h.back[len(h.back)-1]
			h.back = h.back[:len(h.back)-1]
		}
		return true, true
	}

	for i := 0; i < offset; i++ {
		h.back = append(h.back, h.current)
		h.current = h.forward[len(h.forward)-1]
		h.forward = h.forward[:len(h.forward)-1]
	}
	return false, true
}

// Search scans from start in a single direction and returns the first
// entry matching pred along with its offset. Zero and negative starts scan
// toward older entries, positive starts toward newer ones.
// Returns nil and 0 when nothing matches.
func (h *HistoryStack) Search(start int, pred func(*domain.PageState) bool) (*domain.PageState, int) {
	step := -1
	if start > 0 {
		step = 1
	}

	for offset := start; ; offset += step {
		state := h.Navigate(offset)
		if state == nil {
			return nil, 0
		}
		if pred(state) {
			return state, offset
		}
	}
}

// OffsetOf returns the offset of the given entry, compared by identity.
func (h *HistoryStack) OffsetOf(state *domain.PageState) (int, bool) {
	if state == nil || h.current == nil {
		return 0, false
	}
	if state == h.current {
		return 0, true
	}
	for i := 1; i <= len(h.back); i++ {
		if h.back[len(h.back)-i] == state {
			return -i, true
		}
	}
	for i := 1; i <= len(h.forward); i++ {
		if h.forward[len(h.forward)-i] == state {
			return i, true
		}
	}
	return 0, false
}
