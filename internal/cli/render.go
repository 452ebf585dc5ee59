package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/piepero/rusty-pom/pkg/model"
)

const (
	symbolNew       = "🍅"
	symbolContinued = "🍏"

	barWidth = 40
)

var (
	newStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	continuedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	barFilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// renderBar draws elapsed progress over the session duration.
func renderBar(elapsed, total time.Duration, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := int(float64(width) * float64(elapsed) / float64(total))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// renderStatus formats one controller outcome for the terminal.
func renderStatus(status *model.Status, now time.Time) string {
	duration := time.Duration(status.Record.DurationSeconds) * time.Second
	endsAt := status.Record.EndsAt().Local().Format("15:04:05")

	switch status.Kind {
	case model.StatusResumed:
		remaining := time.Duration(status.RemainingSeconds) * time.Second
		elapsed := duration - remaining
		return fmt.Sprintf("%s %s remaining (ends at %s)\n%s",
			continuedStyle.Render(symbolContinued+" Continuing pomodoro,"),
			formatDuration(remaining),
			endsAt,
			renderBar(elapsed, duration, barWidth))

	case model.StatusExpiredThenStarted:
		return fmt.Sprintf("%s started a new %s pomodoro (ends at %s)",
			newStyle.Render(symbolNew+" Previous pomodoro finished;"),
			formatDuration(duration),
			endsAt)

	default:
		return fmt.Sprintf("%s pomodoro (ends at %s)",
			newStyle.Render(symbolNew+" Started a "+formatDuration(duration)),
			endsAt)
	}
}
