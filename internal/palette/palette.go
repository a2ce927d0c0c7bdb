package palette

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/pkg/collections"
)

const commandPrefix = "open-in-"

// ErrUnknownCommand is returned for command ids that name no editor.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a registered palette entry.
type Command struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Editor editor.Editor `json:"editor"`
}

// CommandID is the stable id of e's command.
func CommandID(e editor.Editor) string {
	return commandPrefix + string(e)
}

// CommandName is the display name of e's command.
func CommandName(e editor.Editor) string {
	return "Open in " + e.Label()
}

// ParseCommandID returns the editor named by a command id. Ids match
// exactly, as produced by CommandID.
func ParseCommandID(id string) (editor.Editor, error) {
	name, ok := strings.CutPrefix(id, commandPrefix)
	if e := editor.Editor(name); ok && e.Valid() {
		return e, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, id)
}

// Palette is the set of currently registered editor commands.
// It is safe for concurrent use.
type Palette struct {
	mu         sync.RWMutex
	registered map[editor.Editor]bool
}

// New creates an empty Palette.
func New() *Palette {
	return &Palette{registered: make(map[editor.Editor]bool)}
}

// Sync reconciles the palette against enabled, applies the result, and
// returns the actions taken.
func (p *Palette) Sync(enabled map[editor.Editor]bool) []Action {
	p.mu.Lock()
	defer p.mu.Unlock()

	actions := Reconcile(enabled, p.registered)
	for _, a := range actions {
		switch a.Kind {
		case Register:
			p.registered[a.Editor] = true
		case Unregister:
			delete(p.registered, a.Editor)
		}
	}

	return actions
}

// IsRegistered reports whether e's command is registered.
func (p *Palette) IsRegistered(e editor.Editor) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.registered[e]
}

// Registered lists registered editors in editor.All() order.
func (p *Palette) Registered() []editor.Editor {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return collections.Filter(editor.All(), func(e editor.Editor) bool {
		return p.registered[e]
	})
}

// Commands lists registered commands in editor.All() order.
func (p *Palette) Commands() []Command {
	return collections.Apply(p.Registered(), func(e editor.Editor) Command {
		return Command{ID: CommandID(e), Name: CommandName(e), Editor: e}
	})
}
