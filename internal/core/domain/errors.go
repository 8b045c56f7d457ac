package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCancelled indicates a query was superseded and cancelled.
	// Cancellation is expected and never surfaced to the user.
	ErrCancelled = errors.New("cancelled")

	// ErrIndexUnavailable indicates the content index is not configured.
	ErrIndexUnavailable = errors.New("content index unavailable")

	// ErrUnsupportedKind indicates a content item of an unknown kind.
	ErrUnsupportedKind = errors.New("unsupported content kind")

	// ErrSearchFailed is the error surfaced to the UI when a search fails.
	ErrSearchFailed = errors.New("search failed for unknown reason")
)
