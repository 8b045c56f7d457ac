package driven

// Executor runs blocking work away from the event loop.
//
// Go runs work on another goroutine. The function work returns is the
// completion; it must be invoked on the event loop, never concurrently
// with other completions or intent handling. A nil completion is skipped.
type Executor interface {
	Go(work func() func())
}
