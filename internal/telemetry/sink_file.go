package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prosegate/prosegate/internal/safety"
)

// FileSink appends decisions to a JSONL file, one entry per line.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	dropped int
}

type fileEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	safety.TelemetryEntry
}

func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry file: %w", err)
	}

	return &FileSink{file: file}, nil
}

// Record appends one entry. Failures are counted, never surfaced to the
// evaluation path.
func (s *FileSink) Record(entry safety.TelemetryEntry) {
	line, err := json.Marshal(fileEntry{RecordedAt: time.Now().UTC(), TelemetryEntry: entry})
	if err != nil {
		s.noteDrop()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		s.dropped++
	}
}

// Dropped reports how many entries could not be written.
func (s *FileSink) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *FileSink) noteDrop() {
	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()
}
