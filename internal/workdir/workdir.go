// Package workdir locates the launcher's configuration directory.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName          = "vaultlaunch"
	settingsFileName = "settings.yaml"
)

// ConfigDir returns the directory holding vaultlaunch's files:
//
//	$XDG_CONFIG_HOME/vaultlaunch, or $HOME/.config/vaultlaunch
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".config", appName), nil
}

// SettingsPath returns override when set, else the settings file in ConfigDir.
func SettingsPath(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, settingsFileName), nil
}

// Prep ensures that the configuration directory exists.
func Prep() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	return nil
}
