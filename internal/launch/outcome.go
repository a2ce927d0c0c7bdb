package launch

import (
	"errors"
	"io/fs"
	"os/exec"
)

// Reason classifies how an attempt ended.
type Reason string

const (
	// ReasonSuccess means the process exited 0 without a signal.
	ReasonSuccess Reason = "success"
	// ReasonProcessError means the process could not be started.
	ReasonProcessError Reason = "process-error"
	// ReasonNonZeroExit means the process exited with a non-zero code.
	ReasonNonZeroExit Reason = "non-zero-exit"
	// ReasonSignal means the process was terminated by a signal.
	ReasonSignal Reason = "terminated-by-signal"
	// ReasonTimedOut means the process outlived its timeout and was sent SIGTERM.
	ReasonTimedOut Reason = "timed-out"
)

// Outcome is the result of running one Command.
type Outcome struct {
	Reason Reason
	// ExitCode is nil when the process never exited normally.
	ExitCode *int
	// Signal names the terminating signal, or is empty.
	Signal string
	// Stdout and Stderr hold at most TailBytes of trailing output each.
	Stdout []byte
	Stderr []byte
	// Err is the underlying error for process errors and cancellations.
	Err error
}

// Success reports whether the attempt succeeded.
func (o Outcome) Success() bool {
	return o.Reason == ReasonSuccess
}

// MissingBinary reports whether the attempt failed because the executable
// could not be found.
func (o Outcome) MissingBinary() bool {
	return o.Reason == ReasonProcessError &&
		(errors.Is(o.Err, exec.ErrNotFound) || errors.Is(o.Err, fs.ErrNotExist))
}

// classifyExit turns a finished process's exit code and signal into an Outcome.
// A signal takes precedence over the exit code; a nil code with no signal
// counts as a non-zero exit.
func classifyExit(code *int, signal string) Outcome {
	switch {
	case signal != "":
		return Outcome{Reason: ReasonSignal, ExitCode: code, Signal: signal}
	case code == nil || *code != 0:
		return Outcome{Reason: ReasonNonZeroExit, ExitCode: code}
	default:
		return Outcome{Reason: ReasonSuccess, ExitCode: code}
	}
}

// summary is the log message for a failed attempt.
func (o Outcome) summary() string {
	switch {
	case o.Reason == ReasonTimedOut:
		return "Launch timed out"
	case o.MissingBinary():
		return "CLI missing from PATH"
	default:
		return "Launch failed"
	}
}
