package execution

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"code-runner/internal/files"
	"code-runner/internal/memory"
	"code-runner/internal/queue"
	"code-runner/internal/repository"
	"code-runner/internal/runner"
	"code-runner/internal/stream"
)

const (
	RunningMessage = "Running the code ..."
	NoCodeMessage  = "No code provided"
)

// Extensions maps a language to the extension given to its temporary source
// file, languages without an entry get no extension.
var Extensions = map[string]string{
	"javascript": "js",
	"python":     "py",
	"java":       "java",
	"ruby":       "rb",
	"shell":      "sh",
}

type Job struct {
	ID        string
	SessionID string
	Language  string
	Code      string
}

func (j Job) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", j.ID).
		Str("session", j.SessionID).
		Str("language", j.Language)
}

type Config struct {
	Runner *runner.Runner
	Files  files.Files
	Repo   repository.Repository
	Events stream.Publisher

	// WorkDir is where the temporary source files are written.
	WorkDir string
	// MaxOutputSize caps the output stored for each execution.
	MaxOutputSize memory.Memory
}

// Service writes submitted code to a temporary file, runs it and streams
// the output to the session room while it is produced.
type Service struct {
	runner    *runner.Runner
	files     files.Files
	repo      repository.Repository
	events    stream.Publisher
	workDir   string
	maxOutput memory.Memory
}

func NewService(config *Config) (*Service, error) {
	if config.Runner == nil || config.Files == nil || config.Repo == nil {
		return nil, errors.New("execution service requires a runner, files and a repository")
	}

	if err := os.MkdirAll(config.WorkDir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to make work directory")
	}

	events := config.Events

	if events == nil {
		events = stream.Discard
	}

	maxOutput := config.MaxOutputSize

	if maxOutput <= 0 {
		maxOutput = memory.Megabyte
	}

	return &Service{
		runner:    config.Runner,
		files:     config.Files,
		repo:      config.Repo,
		events:    events,
		workDir:   config.WorkDir,
		maxOutput: maxOutput,
	}, nil
}

// HandleCompileMessage runs a job taken from the queue.
func (s *Service) HandleCompileMessage(ctx context.Context, message *queue.CompileMessage) error {
	_, err := s.Run(ctx, Job{
		ID:        message.ID,
		SessionID: message.SessionID,
		Language:  message.Language,
		Code:      message.Code,
	})

	return err
}

func (s *Service) Run(ctx context.Context, job Job) (*runner.Result, error) {
	s.publish(stream.Command(job.SessionID, stream.CommandStart))
	defer s.publish(stream.Command(job.SessionID, stream.CommandEnd))

	s.publish(stream.Output(job.SessionID, RunningMessage))

	if strings.TrimSpace(job.Code) == "" {
		s.publish(stream.Output(job.SessionID, NoCodeMessage))

		result := &runner.Result{ExitCode: -1, Status: runner.NotRan}
		s.record(job, result)

		return result, nil
	}

	output := newOutputLog(s.maxOutput)
	sink := runner.Tee(sessionSink{service: s, sessionID: job.SessionID}, output)

	request := runner.Request{Language: job.Language}

	// the source is only written when it can be run, the runner reports the
	// unsupported language itself.
	if s.runner.Supports(job.Language) {
		path, err := s.writeSource(job)

		if err != nil {
			s.publish(stream.Output(job.SessionID, err.Error()))
			s.record(job, &runner.Result{ExitCode: -1, Status: runner.NotRan})

			return nil, err
		}

		defer func() {
			if removeErr := os.Remove(path); removeErr != nil {
				log.Warn().Err(removeErr).Str("path", path).Msg("failed to clean up source file")
			}
		}()

		request.FilePath = path
	}

	log.Info().Object("job", job).Msg("running job")

	result, err := s.runner.Execute(ctx, request, sink)

	if err != nil {
		s.publish(stream.Output(job.SessionID, err.Error()))
	}

	s.store(job, output)
	s.record(job, result)

	log.Info().Object("job", job).Object("result", result).Msg("job completed")

	return result, err
}

func (s *Service) writeSource(job Job) (string, error) {
	fileName := "temp-code-" + uuid.NewString()

	if extension, ok := Extensions[job.Language]; ok {
		fileName += "." + extension
	}

	path := filepath.Join(s.workDir, fileName)

	if err := os.WriteFile(path, []byte(job.Code), 0o640); err != nil {
		return "", errors.Wrap(err, "failed to write source file")
	}

	return path, nil
}

func (s *Service) store(job Job, output *outputLog) {
	if output.wasTruncated() {
		log.Warn().Err(memory.LimitExceeded).Object("job", job).
			Str("limit", s.maxOutput.String()).Msg("stored output truncated")
	}

	errs := s.files.WriteFiles(
		&files.File{ID: job.ID, Name: files.OutputFile, Data: []byte(strings.Join(output.Lines(), "\n"))},
		&files.File{ID: job.ID, Name: files.OutputErrFile, Data: []byte(strings.Join(output.Errors(), "\n"))},
	)

	for _, err := range errs {
		log.Error().Err(err).Object("job", job).Msg("failed to store execution output")
	}
}

func (s *Service) record(job Job, result *runner.Result) {
	if result == nil {
		return
	}

	_, err := s.repo.UpdateExecution(job.ID, repository.Execution{
		Status:    result.Status.String(),
		ExitCode:  result.ExitCode,
		RuntimeMs: result.Runtime.Round(time.Millisecond).Milliseconds(),

		RuntimeMemoryKb: result.PeakMemory.Kilobytes(),
	})

	if err != nil {
		log.Error().Err(err).Object("job", job).Msg("failed to update execution record")
	}
}

func (s *Service) publish(event stream.Event) {
	if err := s.events.Publish(event); err != nil {
		log.Warn().Err(err).Object("event", event).Msg("failed to publish event")
	}
}

// sessionSink publishes the relayed output to the session room.
type sessionSink struct {
	service   *Service
	sessionID string
}

func (s sessionSink) Stdout(line string) {
	s.service.publish(stream.Output(s.sessionID, line))
}

func (s sessionSink) Stderr(text string) {
	s.service.publish(stream.Output(s.sessionID, runner.ErrorPrefix+text))
}
