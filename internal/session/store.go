package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piepero/rusty-pom/pkg/fsutil"
	"github.com/piepero/rusty-pom/pkg/logging"
	"github.com/piepero/rusty-pom/pkg/model"
)

// Store persists zero-or-one TimerRecord across invocations. Load returns
// (nil, nil) when no usable record exists; absence is never an error.
type Store interface {
	Load() (*model.TimerRecord, error)
	Save(rec *model.TimerRecord) error
}

// FileStore keeps the record as a single JSON file, replaced atomically on
// every save.
type FileStore struct {
	path   string
	logger *logging.Logger
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: logging.Global().WithFields(map[string]any{"component": "store"}),
	}
}

// Load reads the stored record. Missing, unreadable, or corrupt state all
// coerce to absence: a fresh timer is always a safe fallback.
func (s *FileStore) Load() (*model.TimerRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("state unreadable, treating as absent", map[string]any{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return nil, nil
	}

	var rec model.TimerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug("state corrupt, treating as absent", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return nil, nil
	}
	if !rec.Valid() {
		s.logger.Debug("state invalid, treating as absent", map[string]any{"path": s.path})
		return nil, nil
	}

	return &rec, nil
}

// Save atomically replaces the stored record.
func (s *FileStore) Save(rec *model.TimerRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := fsutil.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
