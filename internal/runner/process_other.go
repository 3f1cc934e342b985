//go:build !unix

package runner

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

func prepareCommand(_ *exec.Cmd) {}

func killProcess(p *os.Process) error {
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	return nil
}
