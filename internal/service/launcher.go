// Package service turns launch requests into executed plans and user notices.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/launch"
	"github.com/alkime/vaultlaunch/internal/settings"
	"github.com/google/uuid"
)

var (
	// ErrLaunchInProgress is returned while another launch is still running.
	ErrLaunchInProgress = errors.New("launch already in progress")
	// ErrInvalidRequest is returned for requests that cannot be planned.
	ErrInvalidRequest = errors.New("invalid launch request")
)

// Executor runs a launch plan. *launch.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, plan launch.Plan, notify func(string)) launch.Result
}

// SettingsSource supplies the current settings. *settings.Store satisfies it.
type SettingsSource interface {
	Get() settings.Settings
}

// Request asks to open Dir, and optionally File, in an editor.
type Request struct {
	// Editor overrides the quick-launch editor from settings.
	Editor *editor.Editor
	// Dir is the absolute directory to open.
	Dir string
	// File is the active file. Relative paths are resolved against Dir.
	File string
	// OpenFile overrides the open-current-file setting.
	OpenFile *bool
}

// Result describes a finished launch.
type Result struct {
	ID   string
	Plan launch.Plan
	launch.Result
}

// Launcher runs at most one launch at a time.
type Launcher struct {
	executor Executor
	settings SettingsSource
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	busy atomic.Bool
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithLauncherLogger sets the logger. Defaults to slog.Default().
func WithLauncherLogger(l *slog.Logger) LauncherOption {
	return func(ln *Launcher) {
		ln.logger = l
	}
}

// NewLauncher creates a Launcher.
func NewLauncher(executor Executor, source SettingsSource, notifier Notifier, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		executor: executor,
		settings: source,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Busy reports whether a launch is running.
func (l *Launcher) Busy() bool {
	return l.busy.Load()
}

// Launch runs req to completion.
func (l *Launcher) Launch(ctx context.Context, req Request) (Result, error) {
	_, done, err := l.Start(ctx, req)
	if err != nil {
		return Result{}, err
	}

	return <-done, nil
}

// Start validates req, claims the launcher, and runs the plan in the
// background. The returned channel yields the Result once and is then closed.
func (l *Launcher) Start(ctx context.Context, req Request) (string, <-chan Result, error) {
	plan, err := l.plan(req)
	if err != nil {
		return "", nil, err
	}

	if !l.busy.CompareAndSwap(false, true) {
		return "", nil, ErrLaunchInProgress
	}

	id := l.newID()
	done := make(chan Result, 1)

	go func() {
		defer close(done)

		// Release before publishing so a caller woken by done can launch again.
		res := func() Result {
			defer l.busy.Store(false)
			return l.run(ctx, id, plan)
		}()
		done <- res
	}()

	return id, done, nil
}

func (l *Launcher) plan(req Request) (launch.Plan, error) {
	s := l.settings.Get()

	e := s.Editor
	if req.Editor != nil {
		e = *req.Editor
	}
	if !e.Valid() {
		return launch.Plan{}, fmt.Errorf("%w: %w: %q", ErrInvalidRequest, editor.ErrUnknownEditor, e)
	}

	if req.Dir == "" || !filepath.IsAbs(req.Dir) {
		return launch.Plan{}, fmt.Errorf("%w: directory must be an absolute path, got %q", ErrInvalidRequest, req.Dir)
	}

	file := req.File
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(req.Dir, file)
	}

	openFile := s.OpenCurrentFile
	if req.OpenFile != nil {
		openFile = *req.OpenFile
	}

	return launch.BuildPlan(launch.Target{
		Editor:   e,
		Dir:      req.Dir,
		File:     file,
		OpenFile: openFile,
	}), nil
}

func (l *Launcher) run(ctx context.Context, id string, plan launch.Plan) Result {
	logger := l.logger.With("launch_id", id)
	label := plan.Editor.Label()

	logger.Info("Launching", "editor", string(plan.Editor), "attempts", len(plan.Attempts))
	l.notify(id, LevelInfo, "Opening in "+label)

	res := l.executor.Execute(ctx, plan, func(msg string) {
		l.notify(id, LevelError, msg)
	})

	logger.Info("Launch finished",
		"editor", string(plan.Editor),
		"succeeded", res.Succeeded,
		"attempts", res.Attempts,
	)

	return Result{ID: id, Plan: plan, Result: res}
}

func (l *Launcher) notify(id string, level Level, msg string) {
	if l.notifier == nil {
		return
	}

	l.notifier.Notify(Notice{LaunchID: id, Level: level, Message: msg, Time: l.now()})
}
