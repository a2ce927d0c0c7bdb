// Package launch builds and runs the ordered list of commands used to open
// an editor on a directory, falling back through alternatives on failure.
package launch

import (
	"strings"

	"github.com/alkime/vaultlaunch/internal/editor"
)

// openCommand is the macOS application launcher.
const openCommand = "open"

// gotoFlag makes a CLI editor open the file with the cursor placed in it.
const gotoFlag = "-g"

// Command is one executable plus its argument vector.
// Args are passed to the process verbatim; no shell ever sees them.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Plan is the ordered list of attempts for one launch request.
type Plan struct {
	Editor   editor.Editor
	Attempts []Command
}

// Target describes what should be opened.
type Target struct {
	Editor editor.Editor
	// Dir is the absolute directory to open.
	Dir string
	// File is an absolute file path inside Dir, or empty for none.
	File string
	// OpenFile asks for File to be opened along with Dir.
	OpenFile bool
}

func (t Target) withFile() bool {
	return t.OpenFile && t.File != ""
}

// BuildPlan returns the attempts for t, most preferred first:
// the editor's CLI when it has one, then open by application name, then
// open by bundle identifier.
func BuildPlan(t Target) Plan {
	d := t.Editor.Descriptor()
	guiArgs := guiArgs(t, d.DirFirst)

	attempts := make([]Command, 0, 3)
	if !d.GUIOnly() {
		attempts = append(attempts, Command{Name: d.CLI, Args: cliArgs(t)})
	}

	attempts = append(attempts,
		Command{Name: openCommand, Args: append([]string{"-a", d.AppName}, guiArgs...)},
		Command{Name: openCommand, Args: append([]string{"-b", d.BundleID}, guiArgs...)},
	)

	return Plan{
		Editor:   t.Editor,
		Attempts: attempts,
	}
}

func cliArgs(t Target) []string {
	if t.withFile() {
		return []string{gotoFlag, t.File, t.Dir}
	}

	return []string{t.Dir}
}

func guiArgs(t Target, dirFirst bool) []string {
	if !t.withFile() {
		return []string{t.Dir}
	}
	if dirFirst {
		return []string{t.Dir, t.File}
	}

	return []string{t.File, t.Dir}
}
