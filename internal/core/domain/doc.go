// Package domain defines the core business entities for lore.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PageState: An immutable snapshot of one navigable page
//   - ContentRef: A content item owned by the content index
//   - Intent: User-intent messages raised by the UI
//   - RenderIntent: Messages telling the UI what to display
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
