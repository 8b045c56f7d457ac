package domain

// PageType identifies the kind of page a PageState describes.
type PageType int

// Page types.
const (
	// PageHome is the landing page listing home sets.
	PageHome PageType = iota
	// PageSearch lists search results for a query.
	PageSearch
	// PageSection lists the children of a set.
	PageSection
	// PageArticle shows a single article.
	PageArticle
)

// String returns the string representation of the page type.
func (p PageType) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageSearch:
		return "search"
	case PageSection:
		return "section"
	case PageArticle:
		return "article"
	default:
		return "unknown"
	}
}

// PageSpec is the partial description a PageState is built from.
type PageSpec struct {
	PageType     PageType
	Model        *ContentRef
	Query        string
	ContextLabel string
	Context      []*ContentRef
	Timestamp    uint32
}

// PageState is an immutable snapshot of one navigable page.
// Build it with NewPageState; the zero value is a home page.
type PageState struct {
	pageType     PageType
	model        *ContentRef
	query        string
	contextLabel string
	context      []*ContentRef
	timestamp    uint32
}

// NewPageState creates a page state from a spec.
// The context slice is copied so later changes by the caller are not seen.
func NewPageState(spec PageSpec) *PageState {
	ctx := make([]*ContentRef, len(spec.Context))
	copy(ctx, spec.Context)

	return &PageState{
		pageType:     spec.PageType,
		model:        spec.Model,
		query:        spec.Query,
		contextLabel: spec.ContextLabel,
		context:      ctx,
		timestamp:    spec.Timestamp,
	}
}

// HomePage returns a fresh home page state.
func HomePage() *PageState {
	return NewPageState(PageSpec{PageType: PageHome})
}

// PageType returns the page type.
func (p *PageState) PageType() PageType {
	return p.pageType
}

// Model returns the content item this page shows, or nil.
func (p *PageState) Model() *ContentRef {
	return p.model
}

// Query returns the search text that produced this page.
func (p *PageState) Query() string {
	return p.query
}

// ContextLabel returns the display label.
func (p *PageState) ContextLabel() string {
	return p.contextLabel
}

// Context returns a copy of the items the user was browsing.
func (p *PageState) Context() []*ContentRef {
	ctx := make([]*ContentRef, len(p.context))
	copy(ctx, p.context)
	return ctx
}

// Timestamp returns the user action time that created this page.
func (p *PageState) Timestamp() uint32 {
	return p.timestamp
}

// Spec returns a spec that rebuilds an equivalent page state.
func (p *PageState) Spec() PageSpec {
	return PageSpec{
		PageType:     p.pageType,
		Model:        p.model,
		Query:        p.query,
		ContextLabel: p.contextLabel,
		Context:      p.Context(),
		Timestamp:    p.timestamp,
	}
}

// Equal reports whether two page states describe the same page.
// If either page has a model they compare by page type and model identity,
// otherwise by page type and query.
func (p *PageState) Equal(other *PageState) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.model != nil || other.model != nil {
		if p.pageType != other.pageType {
			return false
		}
		if p.model == nil || other.model == nil {
			return false
		}
		return p.model.ID == other.model.ID
	}
	return p.pageType == other.pageType && p.query == other.query
}
