// Package editor holds the static table of editors vaultlaunch knows how to open.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/vaultlaunch/pkg/collections"
)

// ErrUnknownEditor is returned by Parse for names outside the known set.
var ErrUnknownEditor = errors.New("unknown editor")

// Editor identifies one of the supported editors.
type Editor string

const (
	// VSCode is Visual Studio Code.
	VSCode Editor = "vscode"
	// Cursor is the Cursor editor. It has no CLI on the default install.
	Cursor Editor = "cursor"
	// Antigravity is Google's Antigravity editor.
	Antigravity Editor = "antigravity"
	// Zed is the Zed editor.
	Zed Editor = "zed"
)

// Descriptor is the launch metadata for one editor.
// An empty CLI means the editor is GUI-only and is launched through the
// application name or bundle identifier alone.
type Descriptor struct {
	Label    string
	AppName  string
	BundleID string
	CLI      string

	// DirFirst puts the directory ahead of the file when launching through
	// the GUI opener.
	DirFirst bool
}

// GUIOnly reports whether the editor has no CLI binary.
func (d Descriptor) GUIOnly() bool {
	return d.CLI == ""
}

var descriptors = map[Editor]Descriptor{
	VSCode: {
		Label:    "Visual Studio Code",
		AppName:  "Visual Studio Code",
		BundleID: "com.microsoft.VSCode",
		CLI:      "code",
	},
	Cursor: {
		Label:    "Cursor",
		AppName:  "Cursor",
		BundleID: "com.todesktop.230313mzl4w4u92",
	},
	Antigravity: {
		Label:    "Antigravity",
		AppName:  "Antigravity",
		BundleID: "com.google.antigravity",
		CLI:      "agy",
	},
	Zed: {
		Label:    "Zed",
		AppName:  "Zed",
		BundleID: "dev.zed.Zed",
		DirFirst: true,
	},
}

// All returns every known editor in canonical order.
func All() []Editor {
	return []Editor{VSCode, Cursor, Antigravity, Zed}
}

// Descriptor returns the launch metadata for e.
// It panics for values that did not come from this package or Parse.
func (e Editor) Descriptor() Descriptor {
	d, ok := descriptors[e]
	if !ok {
		panic(fmt.Sprintf("editor: no descriptor for %q", string(e)))
	}

	return d
}

// Label returns the human-readable name of e.
func (e Editor) Label() string {
	return e.Descriptor().Label
}

// Valid reports whether e is one of the known editors.
func (e Editor) Valid() bool {
	_, ok := descriptors[e]
	return ok
}

func (e Editor) String() string {
	return string(e)
}

// Parse maps an identifier such as "vscode" to an Editor.
func Parse(name string) (Editor, error) {
	e := Editor(strings.ToLower(strings.TrimSpace(name)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownEditor, name, Names())
	}

	return e, nil
}

// Names returns the known identifiers joined with commas, for help text.
func Names() string {
	return strings.Join(collections.Apply(All(), Editor.String), ",")
}

// UnmarshalText lets an Editor be decoded from config values and flags.
func (e *Editor) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Editor) MarshalText() ([]byte, error) {
	return []byte(e), nil
}
