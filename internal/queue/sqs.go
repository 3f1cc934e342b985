package queue

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type SqsQueue struct {
	config  *SqsConfig
	handler Handler

	sqsQueue sqsiface.SQSAPI

	cancel context.CancelFunc
	done   chan struct{}
}

func newSqsQueue(config *SqsConfig, handler Handler) (*SqsQueue, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}

	return startSqsQueue(config, handler, sqs.New(sess))
}

func startSqsQueue(config *SqsConfig, handler Handler, api sqsiface.SQSAPI) (*SqsQueue, error) {
	ctx, cancel := context.WithCancel(context.Background())

	queue := &SqsQueue{
		config:   config,
		handler:  handler,
		sqsQueue: api,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	// if we are a consumer lets go and start polling for messages, this will
	// be in its own go routine until the queue is stopped.
	if config.Consumer {
		if handler == nil {
			cancel()
			return nil, errors.New("SQS consumer requires a handler")
		}

		go queue.startPollingMessages(ctx)
	} else {
		close(queue.done)
	}

	return queue, nil
}

func (s *SqsQueue) startPollingMessages(ctx context.Context) {
	defer close(s.done)

	for ctx.Err() == nil {
		if err := s.pollMessages(ctx); err != nil {
			log.Error().Err(err).Msg("failed to gather SQS messages")

			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}
}

// pollMessages receives a single batch and handles it to completion, this
// keeps at most MaxInFlight messages in flight.
func (s *SqsQueue) pollMessages(ctx context.Context) error {
	output, err := s.sqsQueue.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.config.QueueURL),
		MaxNumberOfMessages: aws.Int64(int64(min(max(s.config.MaxInFlight, 1), 10))),
		WaitTimeSeconds:     aws.Int64(int64(s.config.WaitTimeSeconds)),
	})

	if err != nil {
		return err
	}

	wg := sync.WaitGroup{}

	for _, message := range output.Messages {
		if aws.StringValue(message.Body) == "" {
			continue
		}

		wg.Add(1)

		go func(m *sqs.Message) {
			defer wg.Done()

			if handleErr := handleIncomingRequest([]byte(aws.StringValue(m.Body)), s.handler); handleErr != nil {
				log.Err(handleErr).Str("id", aws.StringValue(m.MessageId)).
					Msg("failed to handle incoming compile request")
			}

			if _, deleteErr := s.sqsQueue.DeleteMessage(&sqs.DeleteMessageInput{
				QueueUrl:      aws.String(s.config.QueueURL),
				ReceiptHandle: m.ReceiptHandle,
			}); deleteErr != nil {
				log.Err(deleteErr).Str("id", aws.StringValue(m.MessageId)).
					Msg("failed to delete compile request")
			}
		}(message)
	}

	wg.Wait()
	return nil
}

func (s *SqsQueue) SubmitMessageToQueue(data []byte) error {
	_, err := s.sqsQueue.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(data)),
		QueueUrl:    aws.String(s.config.QueueURL),
	})

	return errors.Wrap(err, "failed to send SQS message")
}

func (s *SqsQueue) Stop() {
	log.Info().Msg("stopping SQS queue")

	s.cancel()
	<-s.done
}
