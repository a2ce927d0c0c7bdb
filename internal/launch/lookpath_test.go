package launch

import (
	"io/fs"
	"os"
	"os/exec"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStat serves os.Stat from an in-memory tree rooted at "/".
func mapStat(files fstest.MapFS) statFunc {
	return func(name string) (os.FileInfo, error) {
		return fs.Stat(files, name[1:])
	}
}

func TestLookPath(t *testing.T) {
	files := fstest.MapFS{
		"usr/bin/code":           {Mode: 0o755},
		"opt/homebrew/bin/code":  {Mode: 0o755},
		"opt/homebrew/bin/notes": {Mode: 0o644},
		"usr/local/bin/agy":      {Mode: fs.ModeDir | 0o755},
		"usr/local/bin/sub/agy":  {Mode: 0o755},
	}
	stat := mapStat(files)

	t.Run("first PATH match wins", func(t *testing.T) {
		path, err := lookPath("code", []string{"PATH=/opt/homebrew/bin:/usr/bin"}, stat)
		require.NoError(t, err)
		assert.Equal(t, "/opt/homebrew/bin/code", path)
	})

	t.Run("uses the last PATH in env", func(t *testing.T) {
		path, err := lookPath("code", []string{"PATH=/nowhere", "PATH=/usr/bin"}, stat)
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/code", path)
	})

	t.Run("skips non-executables and directories", func(t *testing.T) {
		_, err := lookPath("notes", []string{"PATH=/opt/homebrew/bin"}, stat)
		assert.ErrorIs(t, err, exec.ErrNotFound)

		_, err = lookPath("agy", []string{"PATH=/usr/local/bin"}, stat)
		assert.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("ignores relative and empty entries", func(t *testing.T) {
		_, err := lookPath("code", []string{"PATH=::usr/bin:."}, stat)
		assert.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("absolute name is checked directly", func(t *testing.T) {
		path, err := lookPath("/usr/local/bin/sub/agy", nil, stat)
		require.NoError(t, err)
		assert.Equal(t, "/usr/local/bin/sub/agy", path)

		_, err = lookPath("/usr/local/bin/missing", nil, stat)
		var execErr *exec.Error
		require.ErrorAs(t, err, &execErr)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("no PATH at all", func(t *testing.T) {
		_, err := lookPath("code", nil, stat)
		assert.ErrorIs(t, err, exec.ErrNotFound)
	})
}
