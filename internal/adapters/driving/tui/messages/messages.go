// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lore/internal/core/domain"
)

// WorkDone carries the completion of background work back to the loop.
// Apply is nil when the work produced nothing to apply.
type WorkDone struct {
	Apply func()
}

// IntentRaised is sent by a view when the user asks for navigation.
type IntentRaised struct {
	Intent domain.Intent
}

// Raise wraps an intent as a message.
func Raise(intent domain.Intent) IntentRaised {
	return IntentRaised{Intent: intent}
}

// PageType identifies which page the TUI is showing.
type PageType int

const (
	// PageHome lists the home page sets.
	PageHome PageType = iota
	// PageSearch lists search results.
	PageSearch
	// PageSection lists the items of a set.
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

// Quit signals the application should exit.
type Quit struct{}
