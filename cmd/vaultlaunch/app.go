package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alkime/vaultlaunch/internal/config"
	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/launch"
	"github.com/alkime/vaultlaunch/internal/platform/git"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/alkime/vaultlaunch/internal/settings"
	"github.com/alkime/vaultlaunch/internal/workdir"
)

// App carries what every command needs. Kong binds it into Run.
type App struct {
	Config       *config.Config
	SettingsPath string
	Stdout       io.Writer
	Stderr       io.Writer
}

func newApp(cfg *config.Config, settingsFlag string) (*App, error) {
	override := settingsFlag
	if override == "" {
		override = cfg.SettingsPath
	}

	path, err := workdir.SettingsPath(override)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path: %w", err)
	}

	if override == "" {
		if err := workdir.Prep(); err != nil {
			return nil, err
		}
	}

	return &App{
		Config:       cfg,
		SettingsPath: path,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}, nil
}

// LoadSettings reads settings, falling back to defaults on a bad file.
func (a *App) LoadSettings() settings.Settings {
	s, err := settings.Load(a.SettingsPath)
	if err != nil {
		slog.Warn("Using default settings", "path", a.SettingsPath, "error", err)
	}

	return s
}

// UpdateSettings applies fn to the stored settings and saves them.
func (a *App) UpdateSettings(fn func(*settings.Settings)) (settings.Settings, error) {
	s := a.LoadSettings()
	fn(&s)

	if err := settings.Save(a.SettingsPath, s); err != nil {
		return s, err
	}

	return s, nil
}

// Executor builds a plan executor from config. A positive timeout overrides
// LAUNCH_TIMEOUT.
func (a *App) Executor(timeout time.Duration) *launch.Executor {
	if timeout <= 0 {
		timeout = a.Config.LaunchTimeout
	}

	return launch.NewExecutor(launch.NewExecRunner(),
		launch.WithTimeout(timeout),
		launch.WithExtraDirs(a.Config.ExtraPaths...),
	)
}

// Launcher wires an executor, the current settings and notifier together.
func (a *App) Launcher(timeout time.Duration, source service.SettingsSource, notifier service.Notifier) *service.Launcher {
	return service.NewLauncher(a.Executor(timeout), source, notifier,
		service.WithLauncherLogger(slog.Default().With("component", "launcher")),
	)
}

// stderrNotifier prints notices the way the plugin showed them: one line each.
func (a *App) stderrNotifier() service.Notifier {
	return service.NotifierFunc(func(n service.Notice) {
		fmt.Fprintln(a.Stderr, n.Message)
	})
}

// ResolveDir turns the optional dir argument into an absolute directory.
// With no argument it prefers the enclosing git work tree, then the
// working directory.
func ResolveDir(ctx context.Context, arg string) (string, error) {
	if arg != "" {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", arg, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := git.RepoRoot(ctx, cwd)
	if err != nil {
		slog.Debug("Not in a git work tree, using working directory", "dir", cwd, "error", err)
		return cwd, nil
	}

	return root, nil
}

// parseEditor accepts an empty name as "use the settings default".
func parseEditor(name string) (*editor.Editor, error) {
	if name == "" {
		return nil, nil //nolint:nilnil // nil editor means the configured one
	}

	e, err := editor.Parse(name)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
