package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alkime/vaultlaunch/internal/palette"
	"github.com/alkime/vaultlaunch/internal/server"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/alkime/vaultlaunch/internal/settings"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the HTTP launch API and keeps the palette in sync with the
// settings file.
type ServeCmd struct {
	Dir     string        `arg:"" optional:"" type:"existingdir" help:"Default directory for launches (default: git work tree or working directory)"`
	Port    string        `help:"Port to listen on (default: PORT)"`
	Timeout time.Duration `help:"Per-attempt timeout (default: LAUNCH_TIMEOUT)"`
}

// Run executes the serve command until SIGINT or SIGTERM.
func (c *ServeCmd) Run(app *App) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := *app.Config
	if c.Port != "" {
		cfg.Port = c.Port
	}

	dir, err := ResolveDir(ctx, c.Dir)
	if err != nil {
		return err
	}

	store := settings.NewStore(app.LoadSettings())
	pal := palette.New()
	logActions(pal.Sync(store.Get().EnabledEditors))

	watcher, err := settings.NewWatcher(app.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to watch settings: %w", err)
	}

	notices := service.NewNoticeBoard(service.DefaultNoticeCapacity)
	launcher := app.Launcher(c.Timeout, store, service.Notifiers{notices, logNotifier()})

	srv := server.New(&cfg, slog.Default(), server.Deps{
		Launcher:   launcher,
		Palette:    pal,
		Notices:    notices,
		Settings:   store,
		DefaultDir: dir,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return watcher.Run(gctx, func(s settings.Settings) {
			store.Set(s)
			logActions(pal.Sync(s.EnabledEditors))
		})
	})

	slog.Info("Serving vaultlaunch", "dir", dir, "settings", app.SettingsPath, "port", cfg.Port)

	return g.Wait()
}

func logActions(actions []palette.Action) {
	for _, a := range actions {
		slog.Info("Palette command changed",
			"action", string(a.Kind),
			"id", palette.CommandID(a.Editor),
			"name", palette.CommandName(a.Editor),
		)
	}
}

func logNotifier() service.Notifier {
	return service.NotifierFunc(func(n service.Notice) {
		slog.Info("Notice", "launch_id", n.LaunchID, "level", string(n.Level), "message", n.Message)
	})
}
