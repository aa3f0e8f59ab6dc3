//go:build unix

package probe

import (
	"os/exec"
	"syscall"
)

// setupProcessGroup runs the command in its own process group so the
// whole tree can be killed together.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// killProcessGroup kills the process and all its children.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		// group already gone; fall back to the leader
		return cmd.Process.Kill()
	}
	return nil
}
