// Package cli implements the pom command surface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/piepero/rusty-pom/internal/journal"
	"github.com/piepero/rusty-pom/internal/session"
	"github.com/piepero/rusty-pom/pkg/model"
	"github.com/piepero/rusty-pom/pkg/statedir"
	"github.com/piepero/rusty-pom/pkg/textutil"
)

var (
	jsonOutput   bool
	stateDirFlag string
	restartFlag  bool
	durationFlag int

	rootCmd = &cobra.Command{
		Use:   "pom [note]",
		Short: "A pomodoro timer that survives process exits",
		Long: `pom tracks a single pomodoro session across invocations.

Running pom resumes the in-progress session if one exists, or starts a new
one (after the previous session expired, or with --restart at any time).
The optional note labels a newly created session in the journal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			status, err := applyOnce(cmd, args, now)
			if err != nil {
				if status == nil {
					return err
				}
				// Write failure: the decision still stands for this
				// invocation, resumability is what's at risk.
				printStatus(status, now)
				fmtErr("warning: %v; the session may not resume next time", err)
				return nil
			}
			printStatus(status, now)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "", "state directory (default $POM_STATE_DIR or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&restartFlag, "restart", "r", false, "discard the current session and start a new one")
	rootCmd.PersistentFlags().IntVarP(&durationFlag, "duration", "d", model.DefaultDurationMinutes, "duration in minutes for a newly created session")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// applyOnce performs the single load-decide-save pass shared by the root and
// watch commands.
func applyOnce(cmd *cobra.Command, args []string, now time.Time) (*model.Status, error) {
	note := ""
	if len(args) > 0 {
		normalized, err := textutil.NormalizeNote(args[0])
		if err != nil {
			return nil, err
		}
		note = normalized
	}

	dir, err := statedir.Resolve(stateDirFlag)
	if err != nil {
		return nil, err
	}

	store := session.NewFileStore(statedir.SessionPath(dir))
	appender := journal.NewFileAppender(statedir.JournalPath(dir))
	ctrl := session.NewController(store, appender)

	return ctrl.Apply(session.Input{
		Now:             now,
		Restart:         restartFlag,
		DurationMinutes: durationFlag,
		DurationSet:     cmd.Flag("duration").Changed,
		Note:            note,
	})
}

func printStatus(status *model.Status, now time.Time) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(status)
		return
	}
	fmt.Println(renderStatus(status, now))
}

func fmtErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
