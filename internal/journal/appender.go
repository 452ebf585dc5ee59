// Package journal appends session events to the pomodoros.log JSONL file.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/piepero/rusty-pom/pkg/model"
)

// Event classifies a journal entry.
type Event string

const (
	EventStarted    Event = "session_started"
	EventResumed    Event = "session_resumed"
	EventRolledOver Event = "session_rolled_over"
)

// Entry is one line of the journal.
type Entry struct {
	Timestamp        time.Time `json:"timestamp"`
	Event            Event     `json:"event"`
	StartedAt        time.Time `json:"started_at"`
	DurationSeconds  int64     `json:"duration_seconds"`
	RemainingSeconds int64     `json:"remaining_seconds,omitempty"`
	Note             string    `json:"note,omitempty"`
}

// FileAppender appends entries to a JSONL file. An flock guards against
// interleaved appends from concurrent invocations.
type FileAppender struct {
	path string
	mu   sync.Mutex
}

// NewFileAppender creates an appender for the given path.
func NewFileAppender(path string) *FileAppender {
	return &FileAppender{path: path}
}

// Append writes one entry. The file and its directory are created on demand.
func (a *FileAppender) Append(entry Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	if err := lockFile(file); err != nil {
		return fmt.Errorf("lock journal: %w", err)
	}
	defer unlockFile(file)

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}

	return nil
}

// ForStatus builds the entry describing a controller decision.
func ForStatus(now time.Time, status *model.Status, note string) Entry {
	entry := Entry{
		Timestamp:       now.UTC(),
		StartedAt:       status.Record.StartedAt,
		DurationSeconds: status.Record.DurationSeconds,
		Note:            note,
	}

	switch status.Kind {
	case model.StatusResumed:
		entry.Event = EventResumed
		entry.RemainingSeconds = status.RemainingSeconds
	case model.StatusExpiredThenStarted:
		entry.Event = EventRolledOver
	default:
		entry.Event = EventStarted
	}

	return entry
}
