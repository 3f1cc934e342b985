package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/languages"
	"code-runner/internal/pid"
)

// DefaultTimeout is the wall-clock budget given to a single execution.
const DefaultTimeout = 15 * time.Second

// waitDelay bounds how long Wait keeps collecting standard error after the
// process exited, in case a descendant is still holding the pipe open.
const waitDelay = time.Second

const memorySampleInterval = 10 * time.Millisecond

type Runner struct {
	table   languages.Table
	timeout time.Duration
}

type Option func(*Runner)

// WithTimeout overrides the execution timeout, zero disables it entirely and
// the runner will wait for as long as the child keeps running.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// New creates a runner resolving commands from the given table. The table is
// expected to be loaded once per invocation by the caller.
func New(table languages.Table, options ...Option) *Runner {
	r := &Runner{table: table, timeout: DefaultTimeout}

	for _, option := range options {
		option(r)
	}

	return r
}

// Supports reports whether the language has a command in the table.
func (r *Runner) Supports(language string) bool {
	_, ok := r.table.Lookup(language)
	return ok
}

func (r *Runner) Timeout() time.Duration { return r.timeout }

// Execute runs the file with the command resolved for the language, relaying
// standard output to the sink line by line as it is produced and the standard
// error content once the process exited. An unsupported language is reported
// through the sink and the returned status, it is not an error.
func (r *Runner) Execute(ctx context.Context, request Request, sink Sink) (*Result, error) {
	command, ok := r.table.Lookup(request.Language)

	if !ok {
		log.Debug().Object("request", request).Msg("unsupported language requested")
		sink.Stdout(fmt.Sprintf("language %q is not supported", request.Language))

		return &Result{ExitCode: -1, Status: UnsupportedLanguage}, nil
	}

	result := &Result{Command: command, ExitCode: -1, Status: NotRan}

	cmd := exec.Command(command, request.FilePath)
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()

	if err != nil {
		return result, errors.Wrap(err, "failed to create stdout pipe")
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	proc := newProcess(cmd)
	timeAtExecution := time.Now()

	if err := cmd.Start(); err != nil {
		return result, errors.Wrapf(err, "failed to start %s", command)
	}

	result.Status = Running
	log.Debug().Object("request", request).Int("pid", cmd.Process.Pid).Msg("process started")

	sampled := make(chan struct{})
	peakMemory := pid.Monitor(sampled, cmd.Process.Pid, memorySampleInterval)

	// streaming is cleared once stdout reached EOF. A kill only counts against
	// the child when it cut the output short or the child had not exited yet,
	// a timer racing with a normal exit does not turn it into a timeout.
	var streaming, timedOut atomic.Bool
	streaming.Store(true)

	var timer *time.Timer
	fired := make(chan struct{})

	if r.timeout > 0 {
		timer = time.AfterFunc(r.timeout, func() {
			defer close(fired)

			if proc.terminate(streaming.Load()) {
				timedOut.Store(true)
			}
		})
	}

	stopCancel := context.AfterFunc(ctx, func() {
		proc.terminate(streaming.Load())
	})

	defer stopCancel()

	readErr := relayLines(stdout, sink)
	streaming.Store(false)

	if readErr != nil {
		log.Warn().Err(readErr).Object("request", request).Msg("failed reading process output")
		proc.terminate(false)
	}

	waitErr := cmd.Wait()
	proc.markExited()

	result.Runtime = time.Since(timeAtExecution)

	close(sampled)
	result.PeakMemory = <-peakMemory

	// a timer that already fired must have finished before its flags are read.
	if timer != nil && !timer.Stop() {
		<-fired
	}

	exited := false

	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		exited = cmd.ProcessState.Exited()
	}

	result.Status = resolveStatus(result.ExitCode, exited, timedOut.Load(), proc.wasTerminated(), proc.wasCutShort())

	if result.Status == TimeLimitExceeded {
		sink.Stdout(fmt.Sprintf("execution timed out after %s", r.timeout))
	}

	if text := strings.TrimRightFunc(stderr.String(), unicode.IsSpace); text != "" {
		sink.Stderr(text)
	}

	log.Debug().Object("request", request).Object("result", result).Msg("process completed")

	var exitErr *exec.ExitError

	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		return result, errors.Wrap(waitErr, "failed waiting for process")
	}

	return result, nil
}

// resolveStatus decides the outcome once the child has been reaped. The exit
// status wins over a termination that arrived after the child exited on its
// own and after its output was complete.
func resolveStatus(exitCode int, exited, timedOut, terminated, cutShort bool) Status {
	killed := terminated && (cutShort || !exited)

	switch {
	case killed && timedOut:
		return TimeLimitExceeded
	case killed:
		return Killed
	case exitCode != 0:
		return RunTimeError
	default:
		return Finished
	}
}

// relayLines delivers each line with its trailing whitespace trimmed. A blank
// line is still a line, only the end of the stream stops the relay.
func relayLines(r io.Reader, sink Sink) error {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')

		if len(line) > 0 {
			sink.Stdout(strings.TrimRightFunc(line, unicode.IsSpace))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}
