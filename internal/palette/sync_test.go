package palette_test

import (
	"testing"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/alkime/vaultlaunch/internal/palette"
	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		enabled    map[editor.Editor]bool
		registered map[editor.Editor]bool
		want       []palette.Action
	}{
		{
			name:    "enable registers",
			enabled: map[editor.Editor]bool{editor.VSCode: true},
			want:    []palette.Action{{Kind: palette.Register, Editor: editor.VSCode}},
		},
		{
			name:       "disable unregisters",
			enabled:    map[editor.Editor]bool{editor.VSCode: false},
			registered: map[editor.Editor]bool{editor.VSCode: true},
			want:       []palette.Action{{Kind: palette.Unregister, Editor: editor.VSCode}},
		},
		{
			name:       "in sync is a no-op",
			enabled:    map[editor.Editor]bool{editor.Cursor: true, editor.Zed: false},
			registered: map[editor.Editor]bool{editor.Cursor: true},
		},
		{
			name:       "missing enabled key means disabled",
			enabled:    map[editor.Editor]bool{},
			registered: map[editor.Editor]bool{editor.Antigravity: true},
			want:       []palette.Action{{Kind: palette.Unregister, Editor: editor.Antigravity}},
		},
		{
			name: "mixed changes follow editor order",
			enabled: map[editor.Editor]bool{
				editor.Zed:    true,
				editor.VSCode: true,
			},
			registered: map[editor.Editor]bool{
				editor.Cursor: true,
				editor.VSCode: true,
			},
			want: []palette.Action{
				{Kind: palette.Unregister, Editor: editor.Cursor},
				{Kind: palette.Register, Editor: editor.Zed},
			},
		},
		{
			name: "nil maps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, palette.Reconcile(tt.enabled, tt.registered))
		})
	}
}

func TestReconcile_EveryEditorRegistersOnce(t *testing.T) {
	t.Parallel()

	enabled := map[editor.Editor]bool{}
	for _, e := range editor.All() {
		enabled[e] = true
	}

	actions := palette.Reconcile(enabled, nil)
	assert.Len(t, actions, len(editor.All()))
	for i, e := range editor.All() {
		assert.Equal(t, palette.Action{Kind: palette.Register, Editor: e}, actions[i])
	}
}
