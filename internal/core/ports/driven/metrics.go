package driven

// MetricsRecorder records usage events.
// Record must not block and its outcome never affects navigation.
type MetricsRecorder interface {
	Record(eventID string, payload map[string]any)
}
