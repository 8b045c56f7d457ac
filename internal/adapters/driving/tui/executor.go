package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lore/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lore/internal/core/ports/driven"
)

// Ensure Executor implements the interface.
var _ driven.Executor = (*Executor)(nil)

// Executor runs navigator work as Bubbletea commands. Work scheduled during
// Update is collected and handed to the runtime by Flush; each completion
// comes back as a messages.WorkDone and is applied in Update.
//
// Go and Flush must only be called from the Bubbletea loop.
type Executor struct {
	pending []tea.Cmd
}

// NewExecutor creates an executor with nothing pending.
func NewExecutor() *Executor {
	return &Executor{}
}

// Go schedules work. It runs when the command returned by the next Flush runs.
func (e *Executor) Go(work func() func()) {
	e.pending = append(e.pending, func() tea.Msg {
		return messages.WorkDone{Apply: work()}
	})
}

// Pending returns the number of commands waiting for Flush.
func (e *Executor) Pending() int {
	return len(e.pending)
}

// Flush returns the scheduled work as one command, or nil if there is none.
func (e *Executor) Flush() tea.Cmd {
	cmds := e.pending
	e.pending = nil
	return tea.Batch(cmds...)
}
