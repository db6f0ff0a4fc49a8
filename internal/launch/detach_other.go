//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// DefaultClient is a FreeRDP build that accepts .rdp files.
const DefaultClient = "xfreerdp"

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
