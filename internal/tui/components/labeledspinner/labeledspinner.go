// Package labeledspinner renders a spinner next to a title, a subtitle and
// the time elapsed since it started.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/vaultlaunch/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with a title, subtitle, and elapsed time.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string

	started time.Time
	now     func() time.Time
}

// New creates a labeled spinner that starts counting now.
func New(s spinner.Spinner, title, subtitle string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		started:  time.Now(),
		now:      time.Now,
	}
}

// WithClock replaces time.Now and restarts the elapsed counter.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	m.started = now()

	return m
}

// Init returns the initial command for the spinner.
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles spinner tick messages.
func (m Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(tickMsg)

		return m, cmd
	}

	return m, nil
}

// Elapsed is how long the spinner has been running, rounded to 100ms.
func (m Model) Elapsed() time.Duration {
	return m.now().Sub(m.started).Round(100 * time.Millisecond)
}

// View renders the spinner line, the subtitle and the elapsed time.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(m.Title))
	sb.WriteString("\n\n")

	if m.Subtitle != "" {
		sb.WriteString(style.Subtitle.Render(m.Subtitle))
		sb.WriteString("\n\n")
	}

	sb.WriteString(style.Help.Render(fmt.Sprintf("elapsed %s", m.Elapsed())))

	return sb.String()
}
