package runner

import (
	"fmt"
	"io"
	"sync"
)

// ErrorPrefix distinguishes relayed standard error content from regular output.
const ErrorPrefix = "Error: "

// Sink receives the relayed output of a child process. Implementations must be
// safe for concurrent use since the timeout notice is delivered from the timer.
type Sink interface {
	// Stdout receives a single line of standard output, or a runner notice.
	Stdout(line string)
	// Stderr receives the complete standard error content once the process exited.
	Stderr(text string)
}

type writerSink struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// NewWriterSink relays lines to stdout and prefixed error content to stderr.
func NewWriterSink(stdout, stderr io.Writer) Sink {
	return &writerSink{stdout: stdout, stderr: stderr}
}

func (w *writerSink) Stdout(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = fmt.Fprintln(w.stdout, line)
}

func (w *writerSink) Stderr(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = fmt.Fprintln(w.stderr, ErrorPrefix+text)
}

// Collector keeps everything relayed to it in memory.
type Collector struct {
	mu     sync.Mutex
	lines  []string
	errors []string
}

func (c *Collector) Stdout(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = append(c.lines, line)
}

func (c *Collector) Stderr(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = append(c.errors, text)
}

// Lines returns a copy of the lines received on standard output.
func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.lines...)
}

// Errors returns a copy of the standard error content received.
func (c *Collector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.errors...)
}

type teeSink []Sink

// Tee delivers everything to each of the given sinks in order.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

func (t teeSink) Stdout(line string) {
	for _, s := range t {
		s.Stdout(line)
	}
}

func (t teeSink) Stderr(text string) {
	for _, s := range t {
		s.Stderr(text)
	}
}
