// Package metrics records metric events for later upload.
package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lore/internal/core/ports/driven"
	"github.com/custodia-labs/lore/internal/logger"
)

// Ensure recorders implement the interface.
var (
	_ driven.MetricsRecorder = (*FileRecorder)(nil)
	_ driven.MetricsRecorder = NopRecorder{}
)

// queueSize bounds events buffered ahead of the writer.
const queueSize = 64

// Record is one line of the metrics file.
type Record struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	RecordedAt time.Time      `json:"recorded_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// FileRecorder appends events to a JSON lines file from a background
// goroutine. Record never blocks; events are dropped when the queue is full.
type FileRecorder struct {
	file    *os.File
	queue   chan Record
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
	now     func() time.Time
}

// NewFileRecorder opens path for appending, creating parent directories.
func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating metrics directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening metrics file: %w", err)
	}

	r := &FileRecorder{
		file:  f,
		queue: make(chan Record, queueSize),
		now:   time.Now,
	}
	r.wg.Add(1)
	go r.write()
	return r, nil
}

// Record queues an event. It never blocks the caller.
func (r *FileRecorder) Record(eventID string, payload map[string]any) {
	rec := Record{
		ID:         uuid.New().String(),
		EventID:    eventID,
		RecordedAt: r.now().UTC(),
		Payload:    payload,
	}

	r.closeMu.RLock()
	defer r.closeMu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.queue <- rec:
	default:
		logger.Warn("metrics queue full, dropping %s", eventID)
	}
}

// Close flushes queued events and closes the file.
func (r *FileRecorder) Close() error {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.closeMu.Unlock()

	r.wg.Wait()
	return r.file.Close()
}

func (r *FileRecorder) write() {
	defer r.wg.Done()

	enc := json.NewEncoder(r.file)
	for rec := range r.queue {
		if err := enc.Encode(rec); err != nil {
			logger.Warn("writing metric %s: %v", rec.EventID, err)
		}
	}
}

// NopRecorder discards every event.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(string, map[string]any) {}
