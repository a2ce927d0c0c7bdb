package editor_test

import (
	"testing"

	"github.com/alkime/vaultlaunch/internal/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_CanonicalOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]editor.Editor{editor.VSCode, editor.Cursor, editor.Antigravity, editor.Zed},
		editor.All())
}

func TestDescriptor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		editor   editor.Editor
		label    string
		appName  string
		bundleID string
		cli      string
		guiOnly  bool
		dirFirst bool
	}{
		{editor.VSCode, "Visual Studio Code", "Visual Studio Code", "com.microsoft.VSCode", "code", false, false},
		{editor.Cursor, "Cursor", "Cursor", "com.todesktop.230313mzl4w4u92", "", true, false},
		{editor.Antigravity, "Antigravity", "Antigravity", "com.google.antigravity", "agy", false, false},
		{editor.Zed, "Zed", "Zed", "dev.zed.Zed", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.editor.String(), func(t *testing.T) {
			d := tt.editor.Descriptor()
			assert.Equal(t, tt.label, d.Label)
			assert.Equal(t, tt.label, tt.editor.Label())
			assert.Equal(t, tt.appName, d.AppName)
			assert.Equal(t, tt.bundleID, d.BundleID)
			assert.Equal(t, tt.cli, d.CLI)
			assert.Equal(t, tt.guiOnly, d.GUIOnly())
			assert.Equal(t, tt.dirFirst, d.DirFirst)
		})
	}
}

func TestDescriptor_UnknownPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_ = editor.Editor("notepad").Descriptor()
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		for _, e := range editor.All() {
			got, err := editor.Parse(string(e))
			require.NoError(t, err)
			assert.Equal(t, e, got)
		}
	})

	t.Run("case and whitespace are ignored", func(t *testing.T) {
		got, err := editor.Parse("  VSCode ")
		require.NoError(t, err)
		assert.Equal(t, editor.VSCode, got)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := editor.Parse("notepad")
		require.ErrorIs(t, err, editor.ErrUnknownEditor)
		assert.Contains(t, err.Error(), "vscode,cursor,antigravity,zed")
	})
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var e editor.Editor
	require.NoError(t, e.UnmarshalText([]byte("zed")))
	assert.Equal(t, editor.Zed, e)

	require.ErrorIs(t, e.UnmarshalText([]byte("emacs")), editor.ErrUnknownEditor)
	assert.Equal(t, editor.Zed, e, "failed decode leaves value untouched")
}
