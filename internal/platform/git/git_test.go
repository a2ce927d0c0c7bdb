package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/alkime/vaultlaunch/internal/platform/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestRepoRoot(t *testing.T) {
	requireGit(t)

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, exec.Command("git", "init", "-q", root).Run())

	nested := filepath.Join(root, "notes", "daily")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := git.RepoRoot(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestRepoRoot_NotRepository(t *testing.T) {
	requireGit(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	_, err := git.RepoRoot(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, git.ErrNotRepository)
}
