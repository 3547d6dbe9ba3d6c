package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/viniapp/viniapp-node/internal/core/ports"
)

// exitCodeTimeout is reported when the command is killed because the context expired
const exitCodeTimeout = -1

// waitDelay bounds how long Wait keeps reading output after the process group was killed
const waitDelay = 5 * time.Second

type runner struct{}

// NewRunner returns a ports.ProcessRunner that runs commands on the local host
func NewRunner() ports.ProcessRunner {
	return &runner{}
}

// Run starts command in dir and waits for it. The command runs in its own process group,
// which is killed as a whole when ctx is done.
func (r *runner) Run(ctx context.Context, dir string, env []string, command []string) (*ports.ProcessResult, error) {
	if len(command) == 0 {
		return nil, errors.New("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	err := cmd.Wait()

	res := &ports.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if ctx.Err() != nil {
		res.TimedOut = true
		res.ExitCode = exitCodeTimeout
		return res, nil
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, err
	}
	return res, nil
}
