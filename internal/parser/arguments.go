package parser

import (
	"os"
	"path/filepath"
	"time"

	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"code-runner/internal/memory"
	"code-runner/internal/runner"
)

type Arguments struct {
	DatabaseConn            string
	MaxConcurrentExecutions int
	ForceLocalMode          bool

	SqsQueue        string
	WaitTimeSeconds int
	S3BucketName    string

	NsqAddress     string
	NsqChannel     string
	NsqPort        int
	NsqTopic       string
	NsqEventsTopic string

	LanguagesConfig string
	Timeout         time.Duration
	WorkDir         string
	OutputDir       string

	Address        string
	MaxRequestBody memory.Memory
	MaxOutputSize  memory.Memory
	Verbose        bool
}

func (a Arguments) MarshalZerologObject(e *zerolog.Event) {
	e.Int("maxConcurrentExecutions", a.MaxConcurrentExecutions).
		Bool("localMode", a.ForceLocalMode).
		Str("sqsQueue", a.SqsQueue).
		Str("nsqAddress", a.NsqAddress).
		Int("nsqPort", a.NsqPort).
		Str("nsqTopic", a.NsqTopic).
		Str("nsqEventsTopic", a.NsqEventsTopic).
		Str("languagesConfig", a.LanguagesConfig).
		Dur("timeout", a.Timeout).
		Str("workDir", a.WorkDir).
		Str("address", a.Address).
		Str("maxRequestBody", a.MaxRequestBody.String()).
		Str("maxOutputSize", a.MaxOutputSize.String())
}

// ParseArguments parses the service arguments, every flag can also be given as
// an environment variable, e.g. NSQ_ADDRESS for -nsq-address.
func ParseArguments(name string, arguments []string) (Arguments, error) {
	args := Arguments{}
	set := flag.NewFlagSet(name, flag.ContinueOnError)

	var maxRequestBody, maxOutputSize string

	set.StringVar(&args.DatabaseConn, "database-connection-string", "host=database user=root password=root port=5432 dbname=runner TimeZone=UTC", "")
	set.IntVar(&args.MaxConcurrentExecutions, "max-concurrent-executions", 1, "")
	set.BoolVar(&args.ForceLocalMode, "local-mode", false, "")

	set.StringVar(&args.SqsQueue, "sqs-queue", "", "")
	set.IntVar(&args.WaitTimeSeconds, "sqs-wait-time-seconds", 20, "")
	set.StringVar(&args.S3BucketName, "s3-bucket-name", "", "")

	set.StringVar(&args.NsqAddress, "nsq-address", "nsqd", "")
	set.StringVar(&args.NsqChannel, "nsq-channel", "main", "")
	set.IntVar(&args.NsqPort, "nsq-port", 4150, "")
	set.StringVar(&args.NsqTopic, "nsq-topic", "executions", "")
	set.StringVar(&args.NsqEventsTopic, "nsq-events-topic", "execution-events", "")

	set.StringVar(&args.LanguagesConfig, "languages-config", "", "")
	set.DurationVar(&args.Timeout, "timeout", runner.DefaultTimeout, "")
	set.StringVar(&args.WorkDir, "work-dir", filepath.Join(os.TempDir(), "codes"), "")
	set.StringVar(&args.OutputDir, "output-dir", filepath.Join(os.TempDir(), "executions"), "")

	set.StringVar(&args.Address, "address", ":8080", "")
	set.StringVar(&maxRequestBody, "max-request-body", "2MB", "")
	set.StringVar(&maxOutputSize, "max-output-size", "1MB", "")
	set.BoolVar(&args.Verbose, "v", false, "")

	if err := set.Parse(arguments); err != nil {
		return args, errors.Wrap(err, "failed to parse arguments")
	}

	var err error

	if args.MaxRequestBody, err = memory.Parse(maxRequestBody); err != nil {
		return args, errors.Wrap(err, "max-request-body")
	}

	if args.MaxOutputSize, err = memory.Parse(maxOutputSize); err != nil {
		return args, errors.Wrap(err, "max-output-size")
	}

	if args.MaxConcurrentExecutions <= 0 {
		args.MaxConcurrentExecutions = 1
	}

	return args, nil
}

func ParseDefaultConfigurationArguments() Arguments {
	args, err := ParseArguments(filepath.Base(os.Args[0]), os.Args[1:])

	if err != nil {
		log.Fatal().Err(err).Msg("invalid arguments")
	}

	log.Info().Object("arguments", args).Msg("parsed arguments")

	return args
}
