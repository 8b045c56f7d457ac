// Package tui provides an interactive terminal user interface for lore.
// It implements a driving adapter following hexagonal architecture principles:
// key presses become intents for the navigator, and the App is the renderer
// the navigator reports back to.
package tui

import (
	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Navigator receives intents raised by key presses.
	Navigator driving.Navigator

	// Launcher starts the first page.
	Launcher driving.Launcher
}

// PortsFactory builds the ports once the UI exists. The navigator it returns
// must render into r and schedule blocking work on e.
type PortsFactory func(r driven.Renderer, e driven.Executor) (*Ports, error)

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Navigator == nil {
		return ErrMissingNavigator
	}
	if p.Launcher == nil {
		return ErrMissingLauncher
	}
	return nil
}

// historyState is implemented by navigators that can report history
// availability for the status bar.
type historyState interface {
	CanGoBack() bool
	CanGoForward() bool
}
