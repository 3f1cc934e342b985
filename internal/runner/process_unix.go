//go:build unix

package runner

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
)

// prepareCommand places the child in its own process group so anything it
// spawns is terminated along with it.
func prepareCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcess(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return p.Kill()
	}

	return nil
}
