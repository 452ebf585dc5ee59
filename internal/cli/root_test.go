package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piepero/rusty-pom/pkg/model"
)

func createTestRootCmd() *cobra.Command {
	jsonOutput = false
	stateDirFlag = ""
	restartFlag = false
	durationFlag = model.DefaultDurationMinutes
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	return rootCmd
}

func executeCommand(root *cobra.Command, args ...string) (stdout string, err error) {
	// Capture os.Stdout since the CLI prints with fmt.Printf directly
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	root.SetArgs(args)
	err = root.Execute()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), err
}

func loadRecord(t *testing.T, dir string) *model.TimerRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	var rec model.TimerRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	return &rec
}

func TestRootCommand_Help(t *testing.T) {
	cmd := createTestRootCmd()
	stdout, err := executeCommand(cmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resumes the in-progress session")
}

func TestRootCommand_StartsNewSession(t *testing.T) {
	dir := t.TempDir()
	cmd := createTestRootCmd()

	stdout, err := executeCommand(cmd, "--state-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Started")

	rec := loadRecord(t, dir)
	assert.Equal(t, int64(25*60), rec.DurationSeconds)
	assert.WithinDuration(t, time.Now(), rec.StartedAt, 5*time.Second)
}

func TestRootCommand_CustomDuration(t *testing.T) {
	dir := t.TempDir()
	cmd := createTestRootCmd()

	_, err := executeCommand(cmd, "--state-dir", dir, "-d", "50")
	require.NoError(t, err)

	assert.Equal(t, int64(50*60), loadRecord(t, dir).DurationSeconds)
}

func TestRootCommand_SecondInvocationResumes(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir)
	require.NoError(t, err)
	first := loadRecord(t, dir)

	stdout, err := executeCommand(createTestRootCmd(), "--state-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Continuing")
	assert.Contains(t, stdout, "remaining")

	second := loadRecord(t, dir)
	assert.True(t, second.StartedAt.Equal(first.StartedAt))
	assert.Equal(t, first.DurationSeconds, second.DurationSeconds)
}

func TestRootCommand_RestartOverwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "-d", "50")
	require.NoError(t, err)

	stdout, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "-r", "-d", "10")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Started")

	assert.Equal(t, int64(10*60), loadRecord(t, dir).DurationSeconds)
}

func TestRootCommand_DurationIgnoredWhileActive(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "-d", "50")
	require.NoError(t, err)

	stdout, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "-d", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Continuing")

	assert.Equal(t, int64(50*60), loadRecord(t, dir).DurationSeconds)
}

func TestRootCommand_InvalidDuration(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "-d", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E_DURATION_INVALID")

	// Nothing was written.
	_, statErr := os.Stat(filepath.Join(dir, "session.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommand_InvalidNote(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "bad\x00note")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E_NOTE_INVALID")
}

func TestRootCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()

	stdout, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "--json")
	require.NoError(t, err)

	var status model.Status
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, model.StatusStarted, status.Kind)
	assert.Equal(t, int64(25*60), status.RemainingSeconds)
	assert.True(t, status.Persisted)
}

func TestRootCommand_ExpiredRollsOver(t *testing.T) {
	dir := t.TempDir()

	// Plant an expired record directly.
	rec := model.NewTimerRecord(time.Now().Add(-time.Hour), 60)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), data, 0644))

	stdout, err := executeCommand(createTestRootCmd(), "--state-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "finished")
	assert.Contains(t, stdout, "started a new")

	fresh := loadRecord(t, dir)
	assert.WithinDuration(t, time.Now(), fresh.StartedAt, 5*time.Second)
}

func TestRootCommand_WritesJournal(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(createTestRootCmd(), "--state-dir", dir, "deep work")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pomodoros.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"session_started"`)
	assert.Contains(t, string(data), `"note":"deep work"`)
}
