// Package execwait runs a child process under a deadline (C5). It wraps
// os/exec the way the teacher's toolcheck/remote commands do -- build an
// *exec.Cmd, capture stdout/stderr into buffers, run it under a
// context.WithTimeout -- and normalizes a deadline exceeded into the single
// error shape the rest of the pipeline matches on: cerr.KindTimeout, whose
// message always contains the literal substring "timed out".
package execwait

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/coderunner/coderun/internal/cerr"
)

// DefaultTimeout is used when a caller passes timeout <= 0.
const DefaultTimeout = 120 * time.Second

// Result is the captured outcome of a child process run to completion or
// killed for exceeding its deadline.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Spec describes a process to launch. PreExec, when set, is applied to the
// *exec.Cmd before Start. The optional Linux RLIMIT_AS ceiling does not go
// through PreExec: WithAddressSpaceLimit rewrites Name and Args instead.
type Spec struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
	PreExec func(*exec.Cmd)
}

// Run executes the command described by spec, enforcing spec.Timeout (or
// DefaultTimeout). A deadline exceeded is reported as cerr.KindTimeout. A
// completed run that merely exited non-zero is NOT an error -- Result.
// ExitCode carries the status and callers parse Stdout/Stderr as usual;
// only a real launch failure (binary not found, fork/exec error) is
// cerr.KindSpawnFailed, matching the original's Command::output(), which
// only errors on I/O/spawn failure and leaves exit-status inspection to
// the caller.
func Run(ctx context.Context, spec Spec) (Result, error) {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = 5 * time.Second

	if spec.PreExec != nil {
		spec.PreExec(cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		return result, nil
	}

	if runCtx.Err() == context.DeadlineExceeded {
		return result, cerr.Timeout(spec.Name + " exceeded " + timeout.String() + " timeout")
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return result, nil
	}

	return result, cerr.Wrap(cerr.KindSpawnFailed, "failed to run "+spec.Name, runErr)
}
