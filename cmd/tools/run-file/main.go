package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/config"
	"code-runner/internal/languages"
	"code-runner/internal/runner"
)

const (
	exitLaunchFailure       = 1
	exitConfiguration       = 2
	exitUnsupportedLanguage = 3
	exitTimedOut            = 124
)

type flags struct {
	configPath string
	timeout    time.Duration
	verbose    bool

	filePath string
	language string
}

func parseFlags(arguments []string, output io.Writer) (flags, error) {
	args := flags{}
	set := flag.NewFlagSet("run-file", flag.ContinueOnError)
	set.SetOutput(output)

	set.StringVar(&args.configPath, "languages-config", "", "path to the language command table")
	set.DurationVar(&args.timeout, "timeout", runner.DefaultTimeout, "execution timeout, 0 disables it")
	set.BoolVar(&args.verbose, "v", false, "verbose logging")

	set.Usage = func() {
		fmt.Fprintln(output, "usage: run-file [flags] <file> <language>")
		set.PrintDefaults()
	}

	if err := set.Parse(arguments); err != nil {
		return args, err
	}

	if set.NArg() != 2 {
		set.Usage()
		return args, errors.New("expected a file and a language")
	}

	args.filePath = set.Arg(0)
	args.language = set.Arg(1)

	return args, nil
}

// exitCode maps the result of an execution to the exit code of this process.
func exitCode(result *runner.Result) int {
	switch result.Status {
	case runner.UnsupportedLanguage:
		return exitUnsupportedLanguage
	case runner.TimeLimitExceeded:
		return exitTimedOut
	case runner.NotRan:
		return exitLaunchFailure
	}

	if result.ExitCode < 0 {
		return exitLaunchFailure
	}

	return result.ExitCode
}

func run(ctx context.Context, arguments []string, stdout, stderr io.Writer) int {
	args, err := parseFlags(arguments, stderr)

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return exitConfiguration
	}

	config.ConfigureLogging(args.verbose)

	table, err := languages.LoadDefault(args.configPath)

	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfiguration
	}

	request := runner.Request{FilePath: args.filePath, Language: args.language}
	log.Debug().Object("request", request).Str("config", args.configPath).Msg("running file")

	result, err := runner.New(table, runner.WithTimeout(args.timeout)).
		Execute(ctx, request, runner.NewWriterSink(stdout, stderr))

	if err != nil {
		fmt.Fprintln(stderr, runner.ErrorPrefix+err.Error())
		return exitLaunchFailure
	}

	log.Debug().Object("result", result).Msg("process completed")

	return exitCode(result)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
