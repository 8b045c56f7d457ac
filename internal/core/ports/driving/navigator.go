package driving

import "github.com/custodia-labs/lore/internal/core/domain"

// Navigator receives user intents from the UI layer.
type Navigator interface {
	// Dispatch handles one user intent.
	// Must be called on the event loop.
	Dispatch(intent domain.Intent)

	// Current returns the page being displayed, or nil before the first navigation.
	Current() *domain.PageState
}

// Launcher starts the application in one of its launch modes.
// Only the first launch is reported as such; later calls still navigate.
type Launcher interface {
	// DesktopLaunch shows the home page.
	DesktopLaunch(timestamp uint32)

	// LaunchSearch starts on the results for query.
	LaunchSearch(timestamp uint32, query string)

	// ActivateSearchResult starts on the article with the given ID.
	ActivateSearchResult(timestamp uint32, id, query string)
}
