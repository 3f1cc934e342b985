//go:generate go run golang.org/x/tools/cmd/stringer -type=Status

package runner

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"code-runner/internal/memory"
)

type Status int

const (
	// NotRan - the process was never started, either because launching it failed
	// or because the execution was rejected before that point.
	NotRan Status = iota

	Running
	Finished
	RunTimeError
	TimeLimitExceeded
	Killed
	UnsupportedLanguage
)

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type Request struct {
	// The path to the source file, this is passed as the only argument to the
	// resolved command. Its contents are never inspected.
	FilePath string
	// The language identifier used to resolve the command from the table.
	Language string
}

func (r Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("file", r.FilePath).
		Str("language", r.Language)
}

type Result struct {
	// The resolved command, empty when the language was not supported.
	Command string `json:"command"`

	// The exit code of the child process, -1 if the process was terminated by
	// a signal or never started.
	ExitCode int `json:"exitCode"`

	Status Status `json:"status"`

	// The wall-clock time between starting the process and reaping it.
	Runtime time.Duration `json:"runtime"`

	// The highest resident memory sampled from the interpreter process, zero
	// where the platform does not expose it.
	PeakMemory memory.Memory `json:"peakMemory"`
}

func (r *Result) MarshalZerologObject(e *zerolog.Event) {
	e.Str("command", r.Command).
		Int("exitCode", r.ExitCode).
		Str("status", r.Status.String()).
		Dur("runtime", r.Runtime).
		Str("peakMemory", r.PeakMemory.String())
}
