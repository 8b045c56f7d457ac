// Package services implements the driving port interfaces.
// Services contain the navigation history and query orchestration
// logic and call driven ports (adapters) for content and rendering.
//
// Services are pure Go with no CGO or external dependencies.
package services
