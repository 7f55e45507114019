package launch

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// Result holds what a finished game process left behind.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner starts an executable, waits for it to exit and returns its
// captured output. An error means the process could not be run at all; a
// process that ran and exited non-zero is reported through Result.ExitCode.
type Runner interface {
	Run(executable string) (Result, error)
}

// ExecRunner runs the executable directly, without a shell and without
// arguments.
type ExecRunner struct {
	Dir string   // Working directory; empty means the launcher's own
	Env []string // Environment; nil inherits the launcher's
}

// Run implements Runner. Both output streams are fully drained before it
// returns.
func (r ExecRunner) Run(executable string) (Result, error) {
	cmd := exec.Command(executable)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to start %s: %w", executable, err)
	}
	return res, nil
}
