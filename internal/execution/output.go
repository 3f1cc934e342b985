package execution

import (
	"sync"

	"code-runner/internal/memory"
	"code-runner/internal/runner"
)

// outputLog collects the relayed output up to a fixed size.
type outputLog struct {
	*runner.Collector

	mu        sync.Mutex
	limit     memory.Memory
	size      memory.Memory
	truncated bool
}

func newOutputLog(limit memory.Memory) *outputLog {
	return &outputLog{Collector: &runner.Collector{}, limit: limit}
}

func (o *outputLog) fits(text string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := o.size + memory.Memory(len(text))

	if next > o.limit {
		o.truncated = true
		return false
	}

	o.size = next
	return true
}

func (o *outputLog) wasTruncated() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.truncated
}

func (o *outputLog) Stdout(line string) {
	if o.fits(line) {
		o.Collector.Stdout(line)
	}
}

func (o *outputLog) Stderr(text string) {
	if o.fits(text) {
		o.Collector.Stderr(text)
	}
}
