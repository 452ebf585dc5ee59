// Package statedir resolves the directory holding the persisted session state.
package statedir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvStateDir overrides the state directory when set.
	EnvStateDir = "POM_STATE_DIR"

	// DirName is the subdirectory under the user config dir.
	DirName = "rusty-pom"

	// SessionFile is the well-known name of the single timer record.
	SessionFile = "session.json"

	// JournalFile is the append-only session event log.
	JournalFile = "pomodoros.log"
)

// Resolve returns the state directory: the explicit override if non-empty,
// else POM_STATE_DIR, else <user config dir>/rusty-pom. The directory is not
// created here; the store creates it on first save.
func Resolve(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve state dir: %w", err)
	}
	return filepath.Join(base, DirName), nil
}

// SessionPath returns the path of the timer record within dir.
func SessionPath(dir string) string {
	return filepath.Join(dir, SessionFile)
}

// JournalPath returns the path of the event log within dir.
func JournalPath(dir string) string {
	return filepath.Join(dir, JournalFile)
}
