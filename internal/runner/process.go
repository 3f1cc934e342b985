package runner

import (
	"os/exec"
	"sync"

	"github.com/rs/zerolog/log"
)

// process is the single owner of the child process handle. Both the timer and
// context cancellation go through terminate, which is a no-op once the process
// has been reaped or was already terminated.
type process struct {
	cmd *exec.Cmd

	mu         sync.Mutex
	exited     bool
	terminated bool
	cutShort   bool
}

func newProcess(cmd *exec.Cmd) *process {
	prepareCommand(cmd)
	return &process{cmd: cmd}
}

// terminate kills the child and reports whether this call did so. streaming
// tells whether the child's output was still open at that moment.
func (p *process) terminate(streaming bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exited || p.terminated || p.cmd.Process == nil {
		return false
	}

	p.terminated = true
	p.cutShort = streaming

	if err := killProcess(p.cmd.Process); err != nil {
		log.Warn().Err(err).Int("pid", p.cmd.Process.Pid).Msg("failed to terminate process")
	}

	return true
}

func (p *process) markExited() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.exited = true
}

func (p *process) wasTerminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.terminated
}

func (p *process) wasCutShort() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.cutShort
}
