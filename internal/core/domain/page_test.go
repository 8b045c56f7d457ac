package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageType_String(t *testing.T) {
	tests := []struct {
		pageType PageType
		expected string
	}{
		{PageHome, "home"},
		{PageSearch, "search"},
		{PageSection, "section"},
		{PageArticle, "article"},
		{PageType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pageType.String())
		})
	}
}

func TestNewPageState_CopiesContext(t *testing.T) {
	a := &ContentRef{ID: "a"}
	b := &ContentRef{ID: "b"}
	ctx := []*ContentRef{a, b}

	state := NewPageState(PageSpec{PageType: PageArticle, Model: a, Context: ctx})
	ctx[0] = b

	got := state.Context()
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])

	// Mutating the returned slice must not reach the state either.
	got[1] = a
	assert.Same(t, b, state.Context()[1])
}

func TestNewPageState_DefaultsToEmptyContext(t *testing.T) {
	state := NewPageState(PageSpec{PageType: PageSearch, Query: "cats"})

	assert.NotNil(t, state.Context())
	assert.Empty(t, state.Context())
	assert.Equal(t, "cats", state.Query())
	assert.Nil(t, state.Model())
}

func TestNewPageState_ReferencesModel(t *testing.T) {
	model := &ContentRef{ID: "x", Title: "X"}

	state := NewPageState(PageSpec{PageType: PageArticle, Model: model, Timestamp: 42, ContextLabel: "Kings"})

	assert.Same(t, model, state.Model())
	assert.Equal(t, uint32(42), state.Timestamp())
	assert.Equal(t, "Kings", state.ContextLabel())
}

func TestPageState_Equal(t *testing.T) {
	x := &ContentRef{ID: "x"}
	xAgain := &ContentRef{ID: "x", Title: "reloaded"}
	y := &ContentRef{ID: "y"}

	tests := []struct {
		name     string
		a, b     PageSpec
		expected bool
	}{
		{
			name:     "articles without models are equal",
			a:        PageSpec{PageType: PageArticle},
			b:        PageSpec{PageType: PageArticle},
			expected: true,
		},
		{
			name:     "article with model differs from article without",
			a:        PageSpec{PageType: PageArticle, Model: x},
			b:        PageSpec{PageType: PageArticle},
			expected: false,
		},
		{
			name:     "article without model differs from article with",
			a:        PageSpec{PageType: PageArticle},
			b:        PageSpec{PageType: PageArticle, Model: x},
			expected: false,
		},
		{
			name:     "same model identity is equal",
			a:        PageSpec{PageType: PageArticle, Model: x},
			b:        PageSpec{PageType: PageArticle, Model: xAgain},
			expected: true,
		},
		{
			name:     "same model identity ignores query",
			a:        PageSpec{PageType: PageArticle, Model: x, Query: "cats"},
			b:        PageSpec{PageType: PageArticle, Model: x},
			expected: true,
		},
		{
			name:     "different models differ",
			a:        PageSpec{PageType: PageArticle, Model: x},
			b:        PageSpec{PageType: PageArticle, Model: y},
			expected: false,
		},
		{
			name:     "same model different page type differs",
			a:        PageSpec{PageType: PageSection, Model: x},
			b:        PageSpec{PageType: PageArticle, Model: x},
			expected: false,
		},
		{
			name:     "searches with same query are equal",
			a:        PageSpec{PageType: PageSearch, Query: "cats"},
			b:        PageSpec{PageType: PageSearch, Query: "cats"},
			expected: true,
		},
		{
			name:     "searches with different queries differ",
			a:        PageSpec{PageType: PageSearch, Query: "cats"},
			b:        PageSpec{PageType: PageSearch, Query: "dogs"},
			expected: false,
		},
		{
			name:     "home pages are equal",
			a:        PageSpec{PageType: PageHome},
			b:        PageSpec{PageType: PageHome},
			expected: true,
		},
		{
			name:     "home differs from search",
			a:        PageSpec{PageType: PageHome},
			b:        PageSpec{PageType: PageSearch},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPageState(tt.a)
			b := NewPageState(tt.b)
			assert.Equal(t, tt.expected, a.Equal(b))
		})
	}
}

func TestPageState_EqualNil(t *testing.T) {
	var nilState *PageState

	assert.True(t, nilState.Equal(nil))
	assert.False(t, HomePage().Equal(nil))
	assert.False(t, nilState.Equal(HomePage()))
}

func TestPageState_Spec_RoundTrip(t *testing.T) {
	model := &ContentRef{ID: "x"}
	state := NewPageState(PageSpec{PageType: PageArticle, Model: model, Query: "q"})

	rebuilt := NewPageState(state.Spec())

	assert.True(t, state.Equal(rebuilt))
	assert.NotSame(t, state, rebuilt)
}
