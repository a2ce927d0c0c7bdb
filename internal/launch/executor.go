package launch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// FailureNotice is the user-facing message for a plan that could not open
// the editor. Details only ever go to the log.
func FailureNotice(label string) string {
	return fmt.Sprintf("Failed to open in %s. Check console/log for details.", label)
}

// Executor walks a Plan's attempts in order until one succeeds.
type Executor struct {
	runner    Runner
	timeout   time.Duration
	extraDirs []string
	environ   func() []string
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout sets the per-attempt timeout. Values <= 0 keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithExtraDirs adds PATH directories ahead of DefaultExtraDirs.
func WithExtraDirs(dirs ...string) Option {
	return func(e *Executor) {
		e.extraDirs = append(e.extraDirs, dirs...)
	}
}

// WithEnviron replaces os.Environ as the source of the ambient environment.
func WithEnviron(fn func() []string) Option {
	return func(e *Executor) {
		e.environ = fn
	}
}

// WithLogger sets the logger used for attempt failures.
// Defaults to slog.Default() at the time of each Execute call.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor creates an Executor that runs attempts with runner.
func NewExecutor(runner Runner, opts ...Option) *Executor {
	e := &Executor{
		runner:  runner,
		timeout: DefaultTimeout,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Result summarizes one Execute call. Hosts are free to ignore it.
type Result struct {
	Attempts  int
	Succeeded bool
	Notified  bool
}

// Execute runs plan's attempts sequentially. The first success ends the plan
// silently. A timeout ends it immediately with a notice, since a hung command
// is likely waiting on something that another command would hang on too.
// Any other failure is logged and the next attempt runs. When every attempt
// fails, notify is called once. Execute never panics and has no error
// result; notify may be nil.
func (e *Executor) Execute(ctx context.Context, plan Plan, notify func(string)) (res Result) {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("editor", string(plan.Editor))

	notice := FailureNotice(plan.Editor.Label())
	fail := func() {
		if res.Notified {
			return
		}
		res.Notified = true
		if notify != nil {
			notify(notice)
		}
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("Launch aborted", "panic", p)
			fail()
		}
	}()

	environ := e.environ()
	home, _ := lookupEnv(environ, "HOME")
	dirs := append(append([]string{}, e.extraDirs...), DefaultExtraDirs(home)...)
	env := SpawnEnv(environ, dirs)

	for i, cmd := range plan.Attempts {
		if ctx.Err() != nil {
			logger.Info("Launch canceled", "attempt", i+1, "error", ctx.Err())
			return res
		}

		logger.Debug("Launch attempt", "attempt", i+1, "of", len(plan.Attempts), "command", cmd.Name)

		res.Attempts++
		outcome := e.runner.Run(ctx, cmd, env, e.timeout)
		if outcome.Success() {
			res.Succeeded = true
			logger.Debug("Launch succeeded", "attempt", i+1, "command", cmd.Name)
			return res
		}

		if ctx.Err() != nil {
			logger.Info("Launch canceled", "attempt", i+1, "command", cmd.Name, "error", ctx.Err())
			return res
		}

		logFailure(logger, cmd, outcome)

		if outcome.Reason == ReasonTimedOut {
			fail()
			return res
		}
	}

	fail()

	return res
}

func logFailure(logger *slog.Logger, cmd Command, o Outcome) {
	var code any
	if o.ExitCode != nil {
		code = *o.ExitCode
	}

	logger.Error(o.summary(),
		"reason", string(o.Reason),
		"command", cmd.Name,
		"args", cmd.Args,
		"code", code,
		"signal", o.Signal,
		"stdout", string(o.Stdout),
		"stderr", string(o.Stderr),
		"error", o.Err,
	)
}
