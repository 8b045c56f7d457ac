package domain

// Intent is a user-intent message raised by the UI layer.
// The set of intents is closed: only types in this package implement it.
type Intent interface {
	isIntent()
}

// SearchSubmitted is raised when the user submits search text.
type SearchSubmitted struct {
	Text string
}

// LinkClicked is raised when the user follows a link to a content ID.
type LinkClicked struct {
	ID string
}

// SetClicked is raised when the user opens a set card.
type SetClicked struct {
	Model *ContentRef
}

// ItemClicked is raised when the user opens an article card.
type ItemClicked struct {
	Model *ContentRef
}

// SearchResultClicked is raised when the user opens a search result.
type SearchResultClicked struct {
	Model *ContentRef
}

// AutocompleteClicked is raised when the user picks an autocomplete entry.
type AutocompleteClicked struct {
	Model *ContentRef
	Text  string
}

// BackClicked is raised when the user asks to go back.
type BackClicked struct{}

// ForwardClicked is raised when the user asks to go forward.
type ForwardClicked struct{}

// HomeClicked is raised when the user asks for the home page.
type HomeClicked struct{}

// LoadMore is raised when a list scrolls near its end.
type LoadMore struct {
	Channel Channel
}

// SearchFocused is raised when the search box gains focus.
type SearchFocused struct{}

func (SearchSubmitted) isIntent()     {}
func (LinkClicked) isIntent()         {}
func (SetClicked) isIntent()          {}
func (ItemClicked) isIntent()         {}
func (SearchResultClicked) isIntent() {}
func (AutocompleteClicked) isIntent() {}
func (BackClicked) isIntent()         {}
func (ForwardClicked) isIntent()      {}
func (HomeClicked) isIntent()         {}
func (LoadMore) isIntent()            {}
func (SearchFocused) isIntent()       {}
