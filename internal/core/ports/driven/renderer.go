package driven

import "github.com/custodia-labs/lore/internal/core/domain"

// Renderer is the UI layer that displays whatever the core decides.
// Render is always called on the event loop.
type Renderer interface {
	Render(intent domain.RenderIntent)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(intent domain.RenderIntent)

// Render calls f(intent).
func (f RendererFunc) Render(intent domain.RenderIntent) {
	f(intent)
}
