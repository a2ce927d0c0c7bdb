// Package palette keeps the set of "Open in <editor>" commands in step with
// the editors the user has enabled.
package palette

import "github.com/alkime/vaultlaunch/internal/editor"

// ActionKind is what to do with one editor's command.
type ActionKind string

const (
	Register   ActionKind = "register"
	Unregister ActionKind = "unregister"
)

// Action is a single change to the registered command set.
type Action struct {
	Kind   ActionKind
	Editor editor.Editor
}

// Reconcile returns the changes that bring registered in line with enabled,
// in editor.All() order. Editors missing from either map count as false.
// Editors already in the right state produce no action.
func Reconcile(enabled, registered map[editor.Editor]bool) []Action {
	var actions []Action

	for _, e := range editor.All() {
		switch want, have := enabled[e], registered[e]; {
		case want && !have:
			actions = append(actions, Action{Kind: Register, Editor: e})
		case !want && have:
			actions = append(actions, Action{Kind: Unregister, Editor: e})
		}
	}

	return actions
}
