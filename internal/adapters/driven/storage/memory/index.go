package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/lore/internal/core/domain"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.ContentIndex = (*Index)(nil)

// Index is an in-memory implementation of driven.ContentIndex.
// Items keep catalog order; cursors are offsets into the match list.
type Index struct {
	mu    sync.RWMutex
	items []*domain.ContentRef
	byID  map[string]*domain.ContentRef
}

// NewIndex creates an index holding items.
func NewIndex(items []*domain.ContentRef) *Index {
	idx := &Index{}
	idx.Replace(items)
	return idx
}

// Replace swaps the indexed items, e.g. after the catalog file changed.
// Queries already running finish against the old items.
func (i *Index) Replace(items []*domain.ContentRef) {
	byID := make(map[string]*domain.ContentRef, len(items))
	kept := make([]*domain.ContentRef, 0, len(items))
	for _, item := range items {
		if item == nil || item.ID == "" {
			continue
		}
		if _, dup := byID[item.ID]; dup {
			continue
		}
		byID[item.ID] = item
		kept = append(kept, item)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = kept
	i.byID = byID
}

// Len returns the number of indexed items.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}

// Query returns one page of items matching spec.
func (i *Index) Query(ctx context.Context, spec domain.QuerySpec) (domain.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.QueryResult{}, err
	}
	if err := spec.Validate(); err != nil {
		return domain.QueryResult{}, err
	}

	offset, err := spec.Cursor.Offset()
	if err != nil {
		return domain.QueryResult{}, err
	}

	i.mu.RLock()
	items := i.items
	i.mu.RUnlock()

	match := matcher(spec)
	var matched []*domain.ContentRef
	for _, item := range items {
		if match(item) {
			matched = append(matched, item)
		}
	}

	return Page(matched, offset, spec.Limit), nil
}

// Get retrieves a single item by ID.
func (i *Index) Get(ctx context.Context, id string) (*domain.ContentRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	item, ok := i.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Page slices matched from offset and returns the cursor for the rest.
func Page(matched []*domain.ContentRef, offset, limit int) domain.QueryResult {
	if offset >= len(matched) {
		return domain.QueryResult{}
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	res := domain.QueryResult{Items: matched[offset:end]}
	if end < len(matched) {
		res.Next = domain.OffsetCursor(end)
	}
	return res
}

// matcher builds the predicate for spec. Text queries need every term in
// the title, synopsis or body; tag queries need any one tag.
func matcher(spec domain.QuerySpec) func(*domain.ContentRef) bool {
	if len(spec.Tags) > 0 {
		return func(item *domain.ContentRef) bool {
			for _, tag := range spec.Tags {
				if item.HasTag(tag) {
					return true
				}
			}
			return false
		}
	}

	terms := strings.Fields(strings.ToLower(spec.Text))
	return func(item *domain.ContentRef) bool {
		if len(terms) == 0 {
			return true
		}
		haystack := strings.ToLower(item.Title + "\n" + item.Synopsis + "\n" + item.Body)
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				return false
			}
		}
		return true
	}
}
