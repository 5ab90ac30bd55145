//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// configureProcess runs the shell in its own process group so cancellation
// also stops the commands it spawned.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
