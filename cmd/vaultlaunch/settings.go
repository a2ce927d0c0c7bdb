package main

import (
	"fmt"
	"strings"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/settings"
)

// SettingsCmd groups settings subcommands.
type SettingsCmd struct {
	Show        ShowSettingsCmd  `cmd:"" default:"1" help:"Print current settings"`
	SetEditor   SetEditorCmd     `cmd:"" name:"set-editor" help:"Set the quick-launch editor"`
	SetOpenFile SetOpenFileCmd   `cmd:"" name:"set-open-file" help:"Pass the active file when opening"`
	Enable      EnableEditorCmd  `cmd:"" help:"Register the palette command for an editor"`
	Disable     DisableEditorCmd `cmd:"" help:"Unregister the palette command for an editor"`
}

// ShowSettingsCmd prints settings.
type ShowSettingsCmd struct{}

// Run executes the show command.
//
//nolint:unparam // error return required by Kong interface
func (c *ShowSettingsCmd) Run(app *App) error {
	s := app.LoadSettings()

	var enabled []string
	for _, e := range editor.All() {
		if s.Enabled(e) {
			enabled = append(enabled, string(e))
		}
	}
	if len(enabled) == 0 {
		enabled = []string{"none"}
	}

	fmt.Fprintf(app.Stdout, "file:              %s\n", app.SettingsPath)
	fmt.Fprintf(app.Stdout, "editor:            %s (%s)\n", s.Editor, s.Editor.Label())
	fmt.Fprintf(app.Stdout, "open_current_file: %t\n", s.OpenCurrentFile)
	fmt.Fprintf(app.Stdout, "enabled_editors:   %s\n", strings.Join(enabled, ", "))

	return nil
}

// SetEditorCmd sets the quick-launch editor.
type SetEditorCmd struct {
	Editor string `arg:"" help:"Editor id (${editors})"`
}

// Run executes the set-editor command.
func (c *SetEditorCmd) Run(app *App) error {
	e, err := editor.Parse(c.Editor)
	if err != nil {
		return err
	}

	_, err = app.UpdateSettings(func(s *settings.Settings) { s.Editor = e })

	return err
}

// SetOpenFileCmd sets open_current_file.
type SetOpenFileCmd struct {
	Value string `arg:"" enum:"true,false,on,off" help:"true or false"`
}

// Run executes the set-open-file command.
func (c *SetOpenFileCmd) Run(app *App) error {
	on := c.Value == "true" || c.Value == "on"
	_, err := app.UpdateSettings(func(s *settings.Settings) { s.OpenCurrentFile = on })

	return err
}

// EnableEditorCmd enables an editor's palette command.
type EnableEditorCmd struct {
	Editor string `arg:"" help:"Editor id (${editors})"`
}

// Run executes the enable command.
func (c *EnableEditorCmd) Run(app *App) error {
	return setEnabled(app, c.Editor, true)
}

// DisableEditorCmd disables an editor's palette command.
type DisableEditorCmd struct {
	Editor string `arg:"" help:"Editor id (${editors})"`
}

// Run executes the disable command.
func (c *DisableEditorCmd) Run(app *App) error {
	return setEnabled(app, c.Editor, false)
}

func setEnabled(app *App, name string, on bool) error {
	e, err := editor.Parse(name)
	if err != nil {
		return err
	}

	_, err = app.UpdateSettings(func(s *settings.Settings) { s.SetEnabled(e, on) })

	return err
}
