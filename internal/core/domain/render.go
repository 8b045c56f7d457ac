package domain

// Direction is the transition direction between two article pages.
type Direction int

// Transition directions.
const (
	// DirectionNone means no article transition animation.
	DirectionNone Direction = iota
	// DirectionBackward means returning to an earlier article.
	DirectionBackward
	// DirectionForward means moving on to a later article.
	DirectionForward
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionBackward:
		return "backward"
	case DirectionForward:
		return "forward"
	default:
		return "unknown"
	}
}

// LaunchType records how the application was started.
type LaunchType int

// Launch types.
const (
	// LaunchDesktop is a plain launch from the desktop.
	LaunchDesktop LaunchType = iota
	// LaunchSearch is a launch with a search query.
	LaunchSearch
	// LaunchSearchResult is a launch straight into a search result.
	LaunchSearchResult
)

// String returns the string representation of the launch type.
func (l LaunchType) String() string {
	switch l {
	case LaunchDesktop:
		return "desktop"
	case LaunchSearch:
		return "search"
	case LaunchSearchResult:
		return "search_result"
	default:
		return "unknown"
	}
}

// RenderIntent tells the UI layer what to display.
// The set of render intents is closed: only types in this package implement it.
type RenderIntent interface {
	isRenderIntent()
}

// ShowHome switches to the home page.
type ShowHome struct{}

// ShowSearchPage switches to the search results page.
type ShowSearchPage struct{}

// ShowSectionPage switches to the section page.
type ShowSectionPage struct{}

// ShowArticlePage switches to the article page.
type ShowArticlePage struct{}

// ShowArticle loads an article with a transition direction.
type ShowArticle struct {
	Model     *ContentRef
	Direction Direction
}

// ShowSet announces the set whose items are about to load.
type ShowSet struct {
	Model *ContentRef
}

// ShowMedia opens a media item in the lightbox.
type ShowMedia struct {
	Model *ContentRef
}

// HideMedia closes the lightbox.
type HideMedia struct{}

// ClearItems empties the section item list.
type ClearItems struct{}

// AppendItems adds items to the section item list.
type AppendItems struct {
	Items []*ContentRef
}

// ClearSearch empties the search result list.
type ClearSearch struct{}

// AppendSearch adds items to the search result list.
type AppendSearch struct {
	Items []*ContentRef
}

// SearchStarted reports a new search query in flight.
type SearchStarted struct {
	Query string
}

// SearchReady reports that results for Query are displayed.
type SearchReady struct {
	Query string
}

// SearchFailed reports that the search for Query failed.
type SearchFailed struct {
	Query string
	Err   error
}

// SetReady reports that the items of Model are displayed.
type SetReady struct {
	Model *ContentRef
}

// SetFailed reports that loading the items of Model failed.
type SetFailed struct {
	Model *ContentRef
	Err   error
}

// AppendSets adds sets to the home page.
type AppendSets struct {
	Items []*ContentRef
}

// HighlightItem marks the card of the article being read.
type HighlightItem struct {
	Model *ContentRef
}

// ClearHighlightedItem removes any card highlight.
type ClearHighlightedItem struct {
	Model *ContentRef
}

// SetSearchText puts text in the search box.
type SetSearchText struct {
	Text string
}

// FirstLaunch reports the first launch of the application.
type FirstLaunch struct {
	Timestamp  uint32
	LaunchType LaunchType
}

// FocusSearch moves keyboard focus to the search box.
type FocusSearch struct{}

func (ShowHome) isRenderIntent()             {}
func (ShowSearchPage) isRenderIntent()       {}
func (ShowSectionPage) isRenderIntent()      {}
func (ShowArticlePage) isRenderIntent()      {}
func (ShowArticle) isRenderIntent()          {}
func (ShowSet) isRenderIntent()              {}
func (ShowMedia) isRenderIntent()            {}
func (HideMedia) isRenderIntent()            {}
func (ClearItems) isRenderIntent()           {}
func (AppendItems) isRenderIntent()          {}
func (ClearSearch) isRenderIntent()          {}
func (AppendSearch) isRenderIntent()         {}
func (SearchStarted) isRenderIntent()        {}
func (SearchReady) isRenderIntent()          {}
func (SearchFailed) isRenderIntent()         {}
func (SetReady) isRenderIntent()             {}
func (SetFailed) isRenderIntent()            {}
func (AppendSets) isRenderIntent()           {}
func (HighlightItem) isRenderIntent()        {}
func (ClearHighlightedItem) isRenderIntent() {}
func (SetSearchText) isRenderIntent()        {}
func (FirstLaunch) isRenderIntent()          {}
func (FocusSearch) isRenderIntent()          {}
