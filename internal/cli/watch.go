package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/piepero/rusty-pom/pkg/model"
)

var watchCmd = &cobra.Command{
	Use:   "watch [note]",
	Short: "Resume or start a session, then show a live countdown",
	Long: `Applies the same resume-or-start decision as the bare command, then keeps
a live countdown on screen. Quitting the countdown does not lose anything:
the session keeps running on the wall clock and the next invocation resumes it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		status, err := applyOnce(cmd, args, now)
		if err != nil {
			if status == nil {
				return err
			}
			fmtErr("warning: %v; the session may not resume next time", err)
		}

		m := watchModel{status: status, now: now}
		res, err := tea.NewProgram(m).Run()
		if err != nil {
			return fmt.Errorf("run countdown: %w", err)
		}

		if final, ok := res.(watchModel); ok && final.finished {
			fmt.Printf("Finished at %s\n", time.Now().Format("15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchModel is display-only: it re-reads the clock every second but never
// touches the persisted record after the initial decision.
type watchModel struct {
	status   *model.Status
	now      time.Time
	finished bool
	quitting bool
}

func (m watchModel) Init() tea.Cmd {
	return tickCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		if m.status.Record.Expired(m.now) {
			m.finished = true
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.finished || m.quitting {
		return ""
	}

	symbol, style := symbolNew, newStyle
	if m.status.Kind == model.StatusResumed {
		symbol, style = symbolContinued, continuedStyle
	}

	duration := time.Duration(m.status.Record.DurationSeconds) * time.Second
	remaining := m.status.Record.Remaining(m.now)
	elapsed := duration - remaining

	return fmt.Sprintf("%s\n%s\n%s\n",
		style.Render(fmt.Sprintf("%s %s remaining", symbol, formatDuration(remaining))),
		renderBar(elapsed, duration, barWidth),
		helpStyle.Render("q to quit, the timer keeps running"))
}
