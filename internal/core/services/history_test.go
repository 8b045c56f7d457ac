package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lore/internal/core/domain"
)

func searchPage(query string) *domain.PageState {
	return domain.NewPageState(domain.PageSpec{PageType: domain.PageSearch, Query: query})
}

func articlePage(model *domain.ContentRef) *domain.PageState {
	return domain.NewPageState(domain.PageSpec{PageType: domain.PageArticle, Model: model})
}

func TestHistoryStack_Empty(t *testing.T) {
	h := NewHistoryStack()

	assert.Nil(t, h.Current())
	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Navigate(0))
	assert.Nil(t, h.Navigate(-1))

	_, ok := h.CommitTo(-1)
	assert.False(t, ok)
}

func TestHistoryStack_Push(t *testing.T) {
	h := NewHistoryStack()
	home := domain.HomePage()
	cats := searchPage("cats")

	h.Push(home)
	h.Push(cats)

	assert.Same(t, cats, h.Current())
	assert.Equal(t, 1, h.BackLen())
	assert.Equal(t, 0, h.ForwardLen())
	assert.Same(t, home, h.Navigate(-1))
}

func TestHistoryStack_PushClearsForward(t *testing.T) {
	h := NewHistoryStack()
	h.Push(domain.HomePage())
	h.Push(searchPage("a"))
	h.Push(searchPage("b"))

	_, ok := h.CommitTo(-2)
	require.True(t, ok)
	assert.Equal(t, 2, h.ForwardLen())

	h.Push(searchPage("c"))

	assert.Equal(t, 0, h.ForwardLen())
	assert.Equal(t, 2, h.BackLen())
}

func TestHistoryStack_SizeInvariant(t *testing.T) {
	h := NewHistoryStack()
	for i, q := range []string{"a", "b", "c", "d"} {
		h.Push(searchPage(q))
		assert.Equal(t, i+1, h.BackLen()+h.ForwardLen()+1)
		assert.Equal(t, 0, h.ForwardLen())
	}

	h.CommitTo(-3)
	assert.Equal(t, 4, h.Len())
	h.CommitTo(2)
	assert.Equal(t, 4, h.Len())
}

func TestHistoryStack_Navigate(t *testing.T) {
	h := NewHistoryStack()
	a, b, c := searchPage("a"), searchPage("b"), searchPage("c")
	h.Push(a)
	h.Push(b)
	h.Push(c)
	h.CommitTo(-1)

	tests := []struct {
		name   string
		offset int
		want   *domain.PageState
	}{
		{"current", 0, b},
		{"one back", -1, a},
		{"one forward", 1, c},
		{"past back", -2, nil},
		{"past forward", 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Navigate(tt.offset)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tt.want, got)
		})
	}

	assert.Same(t, b, h.Current(), "navigate must not move current")
}

func TestHistoryStack_CommitTo_PreservesOrder(t *testing.T) {
	h := NewHistoryStack()
	pages := []*domain.PageState{searchPage("a"), searchPage("b"), searchPage("c"), searchPage("d")}
	for _, p := range pages {
		h.Push(p)
	}

	back, ok := h.CommitTo(-3)
	require.True(t, ok)
	assert.True(t, back)
	assert.Same(t, pages[0], h.Current())
	for i := 1; i <= 3; i++ {
		assert.Same(t, pages[i], h.Navigate(i))
	}

	back, ok = h.CommitTo(2)
	require.True(t, ok)
	assert.False(t, back)
	assert.Same(t, pages[2], h.Current())
	assert.Same(t, pages[1], h.Navigate(-1))
	assert.Same(t, pages[0], h.Navigate(-2))
	assert.Same(t, pages[3], h.Navigate(1))
}

func TestHistoryStack_CommitTo_OutOfRange(t *testing.T) {
	h := NewHistoryStack()
	a := searchPage("a")
	h.Push(a)

	_, ok := h.CommitTo(-1)
	assert.False(t, ok)
	_, ok = h.CommitTo(1)
	assert.False(t, ok)
	assert.Same(t, a, h.Current())
}

func TestHistoryStack_Search(t *testing.T) {
	h := NewHistoryStack()
	home := domain.HomePage()
	cats := searchPage("cats")
	x := articlePage(article("x", "X"))
	y := articlePage(article("y", "Y"))
	h.Push(home)
	h.Push(cats)
	h.Push(x)
	h.Push(y)

	isSearch := func(s *domain.PageState) bool { return s.PageType() == domain.PageSearch }
	isArticle := func(s *domain.PageState) bool { return s.PageType() == domain.PageArticle }

	found, offset := h.Search(0, isSearch)
	assert.Same(t, cats, found)
	assert.Equal(t, -2, offset)

	found, offset = h.Search(0, isArticle)
	assert.Same(t, y, found)
	assert.Equal(t, 0, offset)

	found, offset = h.Search(-1, isArticle)
	assert.Same(t, x, found)
	assert.Equal(t, -1, offset)

	found, _ = h.Search(-1, func(s *domain.PageState) bool { return s.Query() == "dogs" })
	assert.Nil(t, found)
}

func TestHistoryStack_Search_Forward(t *testing.T) {
	h := NewHistoryStack()
	home := domain.HomePage()
	cats := searchPage("cats")
	h.Push(home)
	h.Push(cats)
	h.CommitTo(-1)

	found, offset := h.Search(1, func(s *domain.PageState) bool { return s.PageType() == domain.PageSearch })
	assert.Same(t, cats, found)
	assert.Equal(t, 1, offset)

	found, _ = h.Search(1, func(s *domain.PageState) bool { return s.PageType() == domain.PageHome })
	assert.Nil(t, found, "forward scans never look behind current")
}

func TestHistoryStack_OffsetOf(t *testing.T) {
	h := NewHistoryStack()
	a, b, c := searchPage("a"), searchPage("b"), searchPage("c")
	h.Push(a)
	h.Push(b)
	h.Push(c)
	h.CommitTo(-1)

	offset, ok := h.OffsetOf(a)
	assert.True(t, ok)
	assert.Equal(t, -1, offset)

	offset, ok = h.OffsetOf(c)
	assert.True(t, ok)
	assert.Equal(t, 1, offset)

	_, ok = h.OffsetOf(searchPage("a"))
	assert.False(t, ok, "lookup is by identity")
}
