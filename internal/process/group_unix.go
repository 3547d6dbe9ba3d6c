//go:build unix

package process

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel starts the command as a process group leader and makes cancellation
// kill the whole group, so forked children do not outlive the step.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
