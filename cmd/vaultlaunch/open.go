package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/palette"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/alkime/vaultlaunch/internal/settings"
	"github.com/alkime/vaultlaunch/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenCmd opens a directory with the configured or given editor.
type OpenCmd struct {
	Dir        string        `arg:"" optional:"" type:"existingdir" help:"Directory to open (default: git work tree or working directory)"`
	Editor     string        `short:"e" help:"Editor to use (${editors})"`
	File       string        `short:"f" help:"Active file, relative to the directory or absolute"`
	OpenFile   bool          `xor:"openfile" help:"Pass the file along with the directory"`
	NoOpenFile bool          `xor:"openfile" help:"Open only the directory"`
	Timeout    time.Duration `help:"Per-attempt timeout (default: LAUNCH_TIMEOUT)"`
}

func (c *OpenCmd) request(ctx context.Context) (service.Request, error) {
	dir, err := ResolveDir(ctx, c.Dir)
	if err != nil {
		return service.Request{}, err
	}

	e, err := parseEditor(c.Editor)
	if err != nil {
		return service.Request{}, err
	}

	req := service.Request{Editor: e, Dir: dir, File: c.File}
	switch {
	case c.OpenFile:
		req.OpenFile = &c.OpenFile
	case c.NoOpenFile:
		off := false
		req.OpenFile = &off
	}

	return req, nil
}

// Run executes the open command. A failed launch is reported as a notice and
// is not a command error.
func (c *OpenCmd) Run(app *App) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	store := settings.NewStore(app.LoadSettings())
	launcher := app.Launcher(c.Timeout, store, app.stderrNotifier())

	_, err = launcher.Launch(ctx, req)

	return err
}

// EditorsCmd lists the supported editors.
type EditorsCmd struct{}

// Run executes the editors command.
func (c *EditorsCmd) Run(app *App) error {
	s := app.LoadSettings()

	w := tabwriter.NewWriter(app.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCLI\tDEFAULT\tENABLED")
	for _, e := range editor.All() {
		d := e.Descriptor()
		cli := d.CLI
		if d.GUIOnly() {
			cli = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e, d.Label, cli, yesNo(e == s.Editor), yesNo(s.Enabled(e)))
	}

	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// SyncCmd prints the palette changes needed for the current settings.
type SyncCmd struct {
	Registered []string `sep:"," help:"Editors whose commands are currently registered"`
}

// Run executes the sync command.
func (c *SyncCmd) Run(app *App) error {
	registered := make(map[editor.Editor]bool, len(c.Registered))
	for _, name := range c.Registered {
		e, err := editor.Parse(name)
		if err != nil {
			return err
		}
		registered[e] = true
	}

	actions := palette.Reconcile(app.LoadSettings().EnabledEditors, registered)
	if len(actions) == 0 {
		fmt.Fprintln(app.Stdout, "palette is in sync")
		return nil
	}

	for _, a := range actions {
		fmt.Fprintf(app.Stdout, "%s\t%s\t%s\n", a.Kind, palette.CommandID(a.Editor), palette.CommandName(a.Editor))
	}

	return nil
}

// noticeSendTimeout bounds how long a launch waits on a busy picker.
const noticeSendTimeout = 250 * time.Millisecond

// PickCmd chooses an editor in a terminal UI.
type PickCmd struct {
	Dir     string        `arg:"" optional:"" type:"existingdir" help:"Directory to open (default: git work tree or working directory)"`
	File    string        `short:"f" help:"Active file, relative to the directory or absolute"`
	Timeout time.Duration `help:"Per-attempt timeout (default: LAUNCH_TIMEOUT)"`
}

// Run executes the pick command.
func (c *PickCmd) Run(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir, err := ResolveDir(ctx, c.Dir)
	if err != nil {
		return err
	}

	notices := make(chan service.Notice, 8)
	store := settings.NewStore(app.LoadSettings())
	launcher := app.Launcher(c.Timeout, store, service.NewChanNotifier(notices, noticeSendTimeout))

	p := tea.NewProgram(tui.New(ctx, launcher, notices, dir, c.File))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("picker failed: %w", err)
	}

	return nil
}
