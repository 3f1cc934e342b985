package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog/log"

	"code-runner/internal/config"
	"code-runner/internal/execution"
	"code-runner/internal/files"
	"code-runner/internal/languages"
	"code-runner/internal/parser"
	"code-runner/internal/queue"
	"code-runner/internal/repository"
	"code-runner/internal/routing"
	"code-runner/internal/runner"
	"code-runner/internal/stream"
	"code-runner/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	args := parser.ParseDefaultConfigurationArguments()
	config.ConfigureLogging(args.Verbose)

	log.Info().Msg("starting runner-api")

	table, err := languages.LoadDefault(args.LanguagesConfig)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language configuration")
	}

	repo, err := repository.NewRepository(args.DatabaseConn)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database connection")
	}

	fileHandler, err := files.NewFilesHandler(&files.Config{
		Local:          &files.LocalConfig{LocalRootPath: args.OutputDir},
		S3:             &files.S3Config{BucketName: args.S3BucketName},
		ForceLocalMode: args.ForceLocalMode,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create file handler")
	}

	hub := stream.NewHub()
	nsqAddress := queue.NsqAddress(args.NsqAddress, args.NsqPort)

	queueConfig := &queue.Config{
		ForceLocalMode: args.ForceLocalMode,
		Local:          &queue.LocalConfig{MaxInFlight: args.MaxConcurrentExecutions},
		Nsq: &queue.NsqConfig{
			Topic:            args.NsqTopic,
			Channel:          args.NsqChannel,
			NsqLookupAddress: args.NsqAddress,
			NsqLookupPort:    args.NsqPort,
			MaxInFlight:      args.MaxConcurrentExecutions,
			Producer:         true,
		},
		Sqs: &queue.SqsConfig{
			QueueURL:        args.SqsQueue,
			WaitTimeSeconds: args.WaitTimeSeconds,
			MaxInFlight:     args.MaxConcurrentExecutions,
		},
	}

	var relay *stream.NsqRelay

	// in local mode the jobs run in this process and stream straight into the
	// hub, otherwise the workers publish their events back over NSQ.
	if args.ForceLocalMode {
		service, serviceErr := execution.NewService(&execution.Config{
			Runner:        runner.New(table, runner.WithTimeout(args.Timeout)),
			Files:         fileHandler,
			Repo:          repo,
			Events:        hub,
			WorkDir:       args.WorkDir,
			MaxOutputSize: args.MaxOutputSize,
		})

		if serviceErr != nil {
			log.Fatal().Err(serviceErr).Msg("failed to create execution service")
		}

		queueConfig.Handler = service
	} else {
		relay, err = stream.NewNsqRelay(nsqAddress, args.NsqEventsTopic, hub)

		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event relay")
		}
	}

	queueRunner, err := queue.NewQueue(queueConfig)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue")
	}

	validate, translator, err := validation.New()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	r := routing.NewRouter(&routing.Handlers{
		Files:          fileHandler,
		Repo:           repo,
		Queue:          queueRunner,
		Languages:      table,
		Translator:     translator,
		Validator:      validate,
		MaxRequestBody: args.MaxRequestBody,
	}, hub)

	server := &http.Server{
		Addr:              args.Address,
		Handler:           handlers.CompressHandler(handlers.LoggingHandler(os.Stdout, r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", args.Address).Msg("listening")

		if listenErr := server.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			log.Fatal().Err(listenErr).Msg("failed to listen")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down runner-api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server")
	}

	queueRunner.Stop()

	if relay != nil {
		relay.Stop()
	}
}
