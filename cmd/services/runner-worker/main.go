package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"code-runner/internal/config"
	"code-runner/internal/execution"
	"code-runner/internal/files"
	"code-runner/internal/languages"
	"code-runner/internal/parser"
	"code-runner/internal/queue"
	"code-runner/internal/repository"
	"code-runner/internal/runner"
	"code-runner/internal/stream"
)

func main() {
	args := parser.ParseDefaultConfigurationArguments()
	config.ConfigureLogging(args.Verbose)

	log.Info().Msg("starting runner-worker")

	if args.ForceLocalMode {
		log.Fatal().Msg("the worker consumes from NSQ or SQS, local mode runs inside runner-api")
	}

	table, err := languages.LoadDefault(args.LanguagesConfig)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language configuration")
	}

	log.Info().Strs("languages", table.Languages()).Msg("loaded language configuration")

	repo, err := repository.NewRepository(args.DatabaseConn)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database connection")
	}

	fileHandler, err := files.NewFilesHandler(&files.Config{
		Local: &files.LocalConfig{LocalRootPath: args.OutputDir},
		S3:    &files.S3Config{BucketName: args.S3BucketName},
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create file handler")
	}

	events, err := stream.NewNsqPublisher(queue.NsqAddress(args.NsqAddress, args.NsqPort), args.NsqEventsTopic)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	service, err := execution.NewService(&execution.Config{
		Runner:        runner.New(table, runner.WithTimeout(args.Timeout)),
		Files:         fileHandler,
		Repo:          repo,
		Events:        events,
		WorkDir:       args.WorkDir,
		MaxOutputSize: args.MaxOutputSize,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create execution service")
	}

	log.Info().Msg("starting queue consumer")

	queueRunner, err := queue.NewQueue(&queue.Config{
		Nsq: &queue.NsqConfig{
			Topic:            args.NsqTopic,
			Channel:          args.NsqChannel,
			NsqLookupAddress: args.NsqAddress,
			NsqLookupPort:    args.NsqPort,
			MaxInFlight:      args.MaxConcurrentExecutions,
			Consumer:         true,
		},
		Sqs: &queue.SqsConfig{
			QueueURL:        args.SqsQueue,
			WaitTimeSeconds: args.WaitTimeSeconds,
			MaxInFlight:     args.MaxConcurrentExecutions,
			Consumer:        true,
		},
		Handler: service,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue")
	}

	// wait for signal to exit
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down runner-worker")

	queueRunner.Stop()
	events.Stop()
}
