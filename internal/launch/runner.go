package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/alkime/vaultlaunch/pkg/channels"
)

// DefaultTimeout bounds a single attempt when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// pipeGrace is how long Wait keeps reading output after the process exits.
// Editors often hand their stdio to a detached GUI process that outlives the
// launcher, which would otherwise hold the pipes open.
const pipeGrace = time.Second

// ErrTimeout is carried by timed-out outcomes.
var ErrTimeout = errors.New("launch timed out")

// Runner runs a single Command to completion or timeout.
type Runner interface {
	Run(ctx context.Context, cmd Command, env []string, timeout time.Duration) Outcome
}

// ExecRunner runs commands as child processes via os/exec.
type ExecRunner struct {
	stat   statFunc
	signal func(*os.Process, os.Signal) error
}

// NewExecRunner creates a runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		stat: os.Stat,
		signal: func(p *os.Process, sig os.Signal) error {
			return p.Signal(sig)
		},
	}
}

// Run starts cmd with env and waits for whichever comes first: the process
// exiting, the timeout elapsing, or ctx being done. The first of these
// settles the Outcome; later events are ignored. On timeout or cancellation
// the process gets a single SIGTERM and is not waited for.
//
//nolint:gosec // argv is built from the editor table and caller paths, never a shell string
func (r *ExecRunner) Run(ctx context.Context, c Command, env []string, timeout time.Duration) Outcome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	stdout, stderr := newTailWriter(), newTailWriter()
	withTails := func(o Outcome) Outcome {
		o.Stdout = stdout.Bytes()
		o.Stderr = stderr.Bytes()
		return o
	}

	path, err := lookPath(c.Name, env, r.stat)
	if err != nil {
		return Outcome{Reason: ReasonProcessError, Err: err}
	}

	cmd := &exec.Cmd{
		Path:      path,
		Args:      append([]string{c.Name}, c.Args...),
		Env:       env,
		Stdout:    stdout,
		Stderr:    stderr,
		WaitDelay: pipeGrace,
	}
	if err := cmd.Start(); err != nil {
		return withTails(Outcome{Reason: ReasonProcessError, Err: fmt.Errorf("start %s: %w", c.Name, err)})
	}

	result := channels.NewOnce[Outcome]()

	timer := time.AfterFunc(timeout, func() {
		o := withTails(Outcome{Reason: ReasonTimedOut, Err: fmt.Errorf("%w after %s", ErrTimeout, timeout)})
		if result.Settle(o) {
			r.terminate(cmd.Process)
		}
	})

	go func() {
		waitErr := cmd.Wait()
		result.Settle(withTails(exitOutcome(cmd.ProcessState, waitErr)))
	}()

	select {
	case <-result.Done():
	case <-ctx.Done():
		if result.Settle(withTails(Outcome{Reason: ReasonTimedOut, Err: ctx.Err()})) {
			r.terminate(cmd.Process)
		}
	}
	timer.Stop()

	return result.Wait()
}

func (r *ExecRunner) terminate(p *os.Process) {
	if err := r.signal(p, syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Debug("Failed to signal launch process", "pid", p.Pid, "error", err)
	}
}

func exitOutcome(state *os.ProcessState, waitErr error) Outcome {
	if state == nil {
		return Outcome{Reason: ReasonProcessError, Err: waitErr}
	}

	var code *int
	signal := ""
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		signal = signalName(ws.Signal())
	} else {
		exit := state.ExitCode()
		code = &exit
	}

	o := classifyExit(code, signal)

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		o.Err = waitErr
	}

	return o
}
