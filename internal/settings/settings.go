// Package settings persists the launcher's user settings as YAML.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alkime/vaultlaunch/internal/editor"
	"gopkg.in/yaml.v3"
)

// DefaultEditor is the quick-launch editor when none is configured.
const DefaultEditor = editor.VSCode

// Settings are the user-editable launcher settings.
type Settings struct {
	// Editor is used by quick launch.
	Editor editor.Editor
	// OpenCurrentFile passes the active file along with the directory.
	OpenCurrentFile bool
	// EnabledEditors decides which editors get a palette command.
	EnabledEditors map[editor.Editor]bool
}

// Default returns settings with every field at its default.
func Default() Settings {
	enabled := make(map[editor.Editor]bool, len(editor.All()))
	for _, e := range editor.All() {
		enabled[e] = false
	}

	return Settings{Editor: DefaultEditor, EnabledEditors: enabled}
}

// Enabled reports whether e has its palette command turned on.
func (s Settings) Enabled(e editor.Editor) bool {
	return s.EnabledEditors[e]
}

// SetEnabled turns e's palette command on or off.
func (s *Settings) SetEnabled(e editor.Editor, on bool) {
	if s.EnabledEditors == nil {
		s.EnabledEditors = make(map[editor.Editor]bool)
	}
	s.EnabledEditors[e] = on
}

// file is the on-disk layout. Fields are decoded loosely so one bad value
// does not discard the rest.
type file struct {
	Editor          any            `yaml:"editor,omitempty"`
	OpenCurrentFile any            `yaml:"open_current_file,omitempty"`
	EnabledEditors  map[string]any `yaml:"enabled_editors,omitempty"`
}

// Load reads settings from path. A missing file yields Default. Each field is
// validated on its own: an unknown editor or a non-boolean flag keeps that
// field's default while valid fields are still applied. Malformed YAML
// returns Default along with the parse error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if name, ok := raw.Editor.(string); ok {
		if e, err := editor.Parse(name); err == nil {
			s.Editor = e
		}
	}

	if on, ok := raw.OpenCurrentFile.(bool); ok {
		s.OpenCurrentFile = on
	}

	for _, e := range editor.All() {
		if on, ok := raw.EnabledEditors[string(e)].(bool); ok {
			s.EnabledEditors[e] = on
		}
	}

	return s, nil
}

// Save writes s to path atomically, creating parent directories as needed.
func Save(path string, s Settings) error {
	out := file{
		Editor:          string(s.Editor),
		OpenCurrentFile: s.OpenCurrentFile,
		EnabledEditors:  make(map[string]any, len(editor.All())),
	}
	for _, e := range editor.All() {
		out.EnabledEditors[string(e)] = s.EnabledEditors[e]
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings %s: %w", path, err)
	}

	return nil
}
