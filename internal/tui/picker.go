// Package tui implements the interactive editor picker.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/launch"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/alkime/vaultlaunch/internal/tui/components/labeledspinner"
	"github.com/alkime/vaultlaunch/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Starter starts a launch in the background. *service.Launcher satisfies it.
type Starter interface {
	Start(ctx context.Context, req service.Request) (string, <-chan service.Result, error)
}

type state int

const (
	statePicking state = iota
	stateLaunching
	stateDone
)

type editorItem struct {
	editor editor.Editor
}

func (i editorItem) Title() string { return i.editor.Label() }

func (i editorItem) Description() string {
	d := i.editor.Descriptor()
	if d.GUIOnly() {
		return "app: " + d.AppName
	}

	return fmt.Sprintf("cli: %s, then app: %s", d.CLI, d.AppName)
}

func (i editorItem) FilterValue() string { return i.editor.Label() }

// launchDoneMsg carries the result of a finished launch.
type launchDoneMsg struct {
	result service.Result
}

// noticeMsg carries a notice emitted during a launch.
type noticeMsg struct {
	notice service.Notice
}

// Model is the editor picker.
type Model struct {
	ctx      context.Context
	launcher Starter
	notices  <-chan service.Notice
	dir      string
	file     string

	keys    KeyMap
	list    list.Model
	spinner labeledspinner.Model
	state   state

	current  editor.Editor
	failure  string
	message  string
	launches int
}

// New creates a picker that opens dir (and file, if set) with the chosen
// editor. notices may be nil; when set, failure notices from the launcher
// are shown in place of the generic one.
func New(ctx context.Context, launcher Starter, notices <-chan service.Notice, dir, file string) *Model {
	items := make([]list.Item, 0, len(editor.All()))
	for _, e := range editor.All() {
		items = append(items, editorItem{editor: e})
	}

	keys := DefaultKeyMap()

	l := list.New(items, list.NewDefaultDelegate(), 60, 16)
	l.Title = "Open vault in"
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.KeyMap.Quit.SetEnabled(false)

	return &Model{
		ctx:      ctx,
		launcher: launcher,
		notices:  notices,
		dir:      dir,
		file:     file,
		keys:     keys,
		list:     l,
	}
}

// Launches reports how many launches were started.
func (m *Model) Launches() int {
	return m.launches
}

// Init waits for notices.
func (m *Model) Init() tea.Cmd {
	return m.waitNotice()
}

func (m *Model) waitNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}

	ch := m.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg{notice: n}
	}
}

func waitResult(done <-chan service.Result) tea.Cmd {
	return func() tea.Msg {
		return launchDoneMsg{result: <-done}
	}
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-4, 6))
		return m, nil

	case noticeMsg:
		if msg.notice.Level == service.LevelError {
			m.failure = msg.notice.Message
		}
		return m, m.waitNotice()

	case launchDoneMsg:
		m.state = stateDone
		if msg.result.Succeeded {
			m.message = "Opened in " + m.current.Label()
		} else if m.failure == "" {
			m.failure = launch.FailureNotice(m.current.Label())
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLaunching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		switch m.state {
		case statePicking:
			if key.Matches(msg, m.keys.Launch) {
				return m, m.start()
			}
		case stateDone:
			if key.Matches(msg, m.keys.Back, m.keys.Launch) {
				m.state = statePicking
				m.message, m.failure = "", ""
			}
			return m, nil
		case stateLaunching:
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(teaMsg)

	return m, cmd
}

func (m *Model) start() tea.Cmd {
	item, ok := m.list.SelectedItem().(editorItem)
	if !ok {
		return nil
	}

	e := item.editor
	_, done, err := m.launcher.Start(m.ctx, service.Request{Editor: &e, Dir: m.dir, File: m.file})
	m.current = e
	m.message, m.failure = "", ""

	if err != nil {
		m.state = stateDone
		m.failure = err.Error()
		return nil
	}

	m.launches++
	m.state = stateLaunching
	m.spinner = labeledspinner.New(spinner.MiniDot, "Opening in "+e.Label(), m.dir)

	return tea.Batch(m.spinner.Init(), waitResult(done))
}

func (m *Model) View() string {
	switch m.state {
	case stateLaunching:
		return m.spinner.View() + "\n"

	case stateDone:
		var sb strings.Builder
		if m.failure != "" {
			sb.WriteString(style.Error.Render(m.failure))
		} else {
			sb.WriteString(style.Success.Render(m.message))
		}
		sb.WriteString("\n\n")
		sb.WriteString(style.Help.Render("enter/esc back • q quit"))
		sb.WriteString("\n")
		return sb.String()

	default:
		var sb strings.Builder
		sb.WriteString(m.list.View())
		if m.file != "" {
			sb.WriteString("\n")
			sb.WriteString(style.Muted.Render("file: " + m.file))
		}
		sb.WriteString("\n")
		return sb.String()
	}
}
