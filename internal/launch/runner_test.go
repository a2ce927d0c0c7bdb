//go:build unix

package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRunner wraps the real signal func and counts deliveries.
func countingRunner(t *testing.T) (*ExecRunner, *atomic.Int32) {
	t.Helper()

	var sent atomic.Int32
	r := NewExecRunner()
	deliver := r.signal
	r.signal = func(p *os.Process, sig os.Signal) error {
		assert.Equal(t, syscall.SIGTERM, sig)
		sent.Add(1)
		return deliver(p, sig)
	}

	return r, &sent
}

func shellEnv() []string {
	return SpawnEnv(os.Environ(), []string{"/bin", "/usr/bin"})
}

func sh(script string) Command {
	return Command{Name: "sh", Args: []string{"-c", script}}
}

func TestExecRunner_Exit(t *testing.T) {
	t.Parallel()

	t.Run("zero exit is success", func(t *testing.T) {
		t.Parallel()
		r, sent := countingRunner(t)

		o := r.Run(context.Background(), sh("printf hello"), shellEnv(), 5*time.Second)

		assert.Equal(t, ReasonSuccess, o.Reason)
		require.NotNil(t, o.ExitCode)
		assert.Equal(t, 0, *o.ExitCode)
		assert.Equal(t, "hello", string(o.Stdout))
		assert.Empty(t, o.Stderr)
		assert.NoError(t, o.Err)
		assert.Zero(t, sent.Load())
	})

	t.Run("non-zero exit keeps code and stderr", func(t *testing.T) {
		t.Parallel()
		r, sent := countingRunner(t)

		o := r.Run(context.Background(), sh("echo oops >&2; exit 3"), shellEnv(), 5*time.Second)

		assert.Equal(t, ReasonNonZeroExit, o.Reason)
		require.NotNil(t, o.ExitCode)
		assert.Equal(t, 3, *o.ExitCode)
		assert.Equal(t, "oops\n", string(o.Stderr))
		assert.NoError(t, o.Err)
		assert.Zero(t, sent.Load())
	})

	t.Run("signal wins over exit code", func(t *testing.T) {
		t.Parallel()
		r, _ := countingRunner(t)

		o := r.Run(context.Background(), sh("kill -TERM $$"), shellEnv(), 5*time.Second)

		assert.Equal(t, ReasonSignal, o.Reason)
		assert.Equal(t, "SIGTERM", o.Signal)
		assert.Nil(t, o.ExitCode)
	})
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()
	r, sent := countingRunner(t)

	o := r.Run(context.Background(), Command{Name: "vaultlaunch-no-such-editor"}, shellEnv(), time.Second)

	assert.Equal(t, ReasonProcessError, o.Reason)
	assert.True(t, o.MissingBinary())
	assert.ErrorIs(t, o.Err, exec.ErrNotFound)
	assert.Nil(t, o.ExitCode)
	assert.Zero(t, sent.Load())
}

func TestExecRunner_ResolvesAgainstSpawnEnvPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\"\n"), 0o755))

	r := NewExecRunner()
	cmd := Command{Name: "fake-editor", Args: []string{"-g", "note.md", "/vault"}}

	o := r.Run(context.Background(), cmd, []string{"PATH=/bin:/usr/bin"}, 5*time.Second)
	assert.True(t, o.MissingBinary(), "not on the ambient PATH")

	o = r.Run(context.Background(), cmd, SpawnEnv([]string{"PATH=/bin:/usr/bin"}, []string{dir}), 5*time.Second)
	assert.Equal(t, ReasonSuccess, o.Reason)
	assert.Equal(t, "-g note.md /vault\n", string(o.Stdout))
}

func TestExecRunner_Timeout(t *testing.T) {
	t.Parallel()
	r, sent := countingRunner(t)

	start := time.Now()
	o := r.Run(context.Background(), sh("echo started; exec sleep 5"), shellEnv(), 100*time.Millisecond)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, ReasonTimedOut, o.Reason)
	assert.ErrorIs(t, o.Err, ErrTimeout)
	assert.Nil(t, o.ExitCode)
	assert.Equal(t, int32(1), sent.Load())

	// Let the terminated child be reaped; the outcome must not change.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), sent.Load())
}

func TestExecRunner_ContextCanceled(t *testing.T) {
	t.Parallel()
	r, sent := countingRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	o := r.Run(ctx, sh("exec sleep 5"), shellEnv(), 5*time.Second)

	assert.Equal(t, ReasonTimedOut, o.Reason)
	assert.True(t, errors.Is(o.Err, context.Canceled))
	assert.Equal(t, int32(1), sent.Load())
}

func TestExecRunner_OutputTail(t *testing.T) {
	t.Parallel()

	t.Run("long output keeps the last bytes", func(t *testing.T) {
		t.Parallel()

		const lines = 2000
		var want strings.Builder
		for i := range lines {
			fmt.Fprintf(&want, "%05d\n", i)
		}
		full := want.String()
		require.Greater(t, len(full), TailBytes)

		script := fmt.Sprintf(`i=0; while [ $i -lt %d ]; do printf '%%05d\n' $i; i=$((i+1)); done`, lines)
		o := NewExecRunner().Run(context.Background(), sh(script), shellEnv(), 10*time.Second)

		require.Equal(t, ReasonSuccess, o.Reason)
		assert.Len(t, o.Stdout, TailBytes)
		assert.Equal(t, full[len(full)-TailBytes:], string(o.Stdout))
	})

	t.Run("short output is kept whole", func(t *testing.T) {
		t.Parallel()

		o := NewExecRunner().Run(context.Background(), sh("printf 'a b\\nc'; printf err >&2"), shellEnv(), 5*time.Second)

		assert.Equal(t, "a b\nc", string(o.Stdout))
		assert.Equal(t, "err", string(o.Stderr))
	})
}

func TestTailWriter(t *testing.T) {
	t.Parallel()

	w := newTailWriter()
	chunk := make([]byte, 1000)
	var all []byte
	for i := range 10 {
		for j := range chunk {
			chunk[j] = byte('a' + i)
		}
		n, err := w.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
		all = append(all, chunk...)
	}

	assert.Equal(t, all[len(all)-TailBytes:], w.Bytes())

	exact := newTailWriter()
	payload := []byte(strings.Repeat("z", TailBytes))
	_, _ = exact.Write(payload)
	assert.Equal(t, payload, exact.Bytes())
}
