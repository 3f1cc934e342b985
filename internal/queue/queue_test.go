package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type recordingHandler struct {
	mu       sync.Mutex
	messages []*CompileMessage
	received chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{received: make(chan struct{}, 100)}
}

func (r *recordingHandler) HandleCompileMessage(_ context.Context, message *CompileMessage) error {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()

	r.received <- struct{}{}
	return nil
}

func (r *recordingHandler) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.messages))

	for _, m := range r.messages {
		ids = append(ids, m.ID)
	}

	return ids
}

type QueueSuite struct {
	suite.Suite
	handler *recordingHandler
}

func (s *QueueSuite) SetupTest() {
	s.handler = newRecordingHandler()
}

func (s *QueueSuite) encode(message *CompileMessage) []byte {
	data, err := EncodeMessage(message)
	s.Require().NoError(err)

	return data
}

func (s *QueueSuite) waitFor(count int) {
	for i := 0; i < count; i++ {
		select {
		case <-s.handler.received:
		case <-time.After(5 * time.Second):
			s.FailNow("timed out waiting for messages")
		}
	}
}

func (s *QueueSuite) TestLocalQueueProcessesInOrder() {
	queue, err := NewQueue(&Config{ForceLocalMode: true, Handler: s.handler})
	s.Require().NoError(err)

	var expected []string

	for i := 0; i < 5; i++ {
		id := uuid.NewString()
		expected = append(expected, id)
		s.NoError(queue.SubmitMessageToQueue(s.encode(&CompileMessage{ID: id, Language: "python", Code: "print(1)"})))
	}

	s.waitFor(5)
	queue.Stop()

	s.Equal(expected, s.handler.ids())
}

func (s *QueueSuite) TestLocalQueueRejectsAfterStop() {
	queue, err := NewQueue(&Config{ForceLocalMode: true, Handler: s.handler})
	s.Require().NoError(err)

	queue.Stop()
	queue.Stop()

	s.True(errors.Is(queue.SubmitMessageToQueue([]byte("{}")), ErrStopped))
}

func (s *QueueSuite) TestLocalQueueRequiresHandler() {
	_, err := NewQueue(&Config{ForceLocalMode: true})
	s.Error(err)
}

func (s *QueueSuite) TestIgnoresEmptyAndRejectsInvalidMessages() {
	s.NoError(handleIncomingRequest(nil, s.handler))
	s.Error(handleIncomingRequest([]byte("not json"), s.handler))
	s.Empty(s.handler.ids())
}

func (s *QueueSuite) TestSqsPollMessages() {
	id := uuid.NewString()
	fake := &fakeSQS{messages: []*sqs.Message{{
		MessageId:     aws.String("m-1"),
		ReceiptHandle: aws.String("r-1"),
		Body:          aws.String(string(s.encode(&CompileMessage{ID: id, Language: "python"}))),
	}, {
		MessageId:     aws.String("m-2"),
		ReceiptHandle: aws.String("r-2"),
		Body:          aws.String(""),
	}}}

	queue, err := startSqsQueue(&SqsConfig{QueueURL: "queue", MaxInFlight: 2}, s.handler, fake)
	s.Require().NoError(err)

	s.NoError(queue.pollMessages(context.Background()))

	s.Equal([]string{id}, s.handler.ids())
	s.Equal([]string{"r-1"}, fake.deleted)
	s.Equal(int64(2), fake.requestedMax)
}

func (s *QueueSuite) TestSqsSubmit() {
	fake := &fakeSQS{}

	queue, err := startSqsQueue(&SqsConfig{QueueURL: "queue"}, nil, fake)
	s.Require().NoError(err)

	s.NoError(queue.SubmitMessageToQueue([]byte(`{"id":"x"}`)))
	queue.Stop()

	s.Equal([]string{`{"id":"x"}`}, fake.sent)
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

type fakeSQS struct {
	sqsiface.SQSAPI

	mu           sync.Mutex
	messages     []*sqs.Message
	deleted      []string
	sent         []string
	requestedMax int64
}

func (f *fakeSQS) ReceiveMessageWithContext(_ aws.Context, input *sqs.ReceiveMessageInput, _ ...request.Option) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requestedMax = aws.Int64Value(input.MaxNumberOfMessages)
	messages := f.messages
	f.messages = nil

	return &sqs.ReceiveMessageOutput{Messages: messages}, nil
}

func (f *fakeSQS) DeleteMessage(input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, aws.StringValue(input.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) SendMessage(input *sqs.SendMessageInput) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, aws.StringValue(input.MessageBody))
	return &sqs.SendMessageOutput{}, nil
}
