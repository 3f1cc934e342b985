//go:generate go run github.com/golang/mock/mockgen -source=queue.go -destination=../mocks/mock_queue.go -package=mocks

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrStopped is returned when submitting to a queue that has been stopped.
var ErrStopped = errors.New("queue has been stopped")

// handleTimeout bounds a single message, it needs to cover the execution
// timeout together with writing out the results.
const handleTimeout = 5 * time.Minute

type CompileMessage struct {
	ID        string `json:"id" validate:"required,uuid"`
	SessionID string `json:"session_id"`
	Language  string `json:"language" validate:"required"`
	Code      string `json:"code"`
}

func (m *CompileMessage) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", m.ID).
		Str("sessionId", m.SessionID).
		Str("language", m.Language).
		Int("codeBytes", len(m.Code))
}

// Handler processes a single compile message taken from the queue.
type Handler interface {
	HandleCompileMessage(ctx context.Context, message *CompileMessage) error
}

type HandlerFunc func(ctx context.Context, message *CompileMessage) error

func (f HandlerFunc) HandleCompileMessage(ctx context.Context, message *CompileMessage) error {
	return f(ctx, message)
}

type Queue interface {
	SubmitMessageToQueue(data []byte) error
	Stop()
}

type NsqConfig struct {
	Topic            string
	Channel          string
	NsqLookupAddress string
	NsqLookupPort    int
	MaxInFlight      int
	Consumer         bool
	Producer         bool
}

type SqsConfig struct {
	QueueURL        string
	WaitTimeSeconds int
	MaxInFlight     int
	Consumer        bool
}

type LocalConfig struct {
	MaxInFlight int
	BufferSize  int
}

type Config struct {
	// ForceLocalMode processes every message in this process without an
	// external broker.
	ForceLocalMode bool

	Local *LocalConfig
	Nsq   *NsqConfig
	Sqs   *SqsConfig

	// Handler is required when consuming, producers can leave it empty.
	Handler Handler
}

// NewQueue picks the local queue when local mode is forced, SQS when a queue
// url is configured and NSQ otherwise.
func NewQueue(config *Config) (Queue, error) {
	if config.ForceLocalMode {
		if config.Handler == nil {
			return nil, errors.New("local queue requires a handler")
		}

		local := config.Local

		if local == nil {
			local = &LocalConfig{}
		}

		return newLocalQueue(local, config.Handler), nil
	}

	if config.Sqs != nil && config.Sqs.QueueURL != "" {
		return newSqsQueue(config.Sqs, config.Handler)
	}

	if config.Nsq != nil {
		return newNsqQueue(config.Nsq, config.Handler)
	}

	return nil, errors.New("no queue has been configured")
}

// EncodeMessage marshals the message for submission.
func EncodeMessage(message *CompileMessage) ([]byte, error) {
	data, err := json.Marshal(message)
	return data, errors.Wrap(err, "failed to encode compile message")
}

func handleIncomingRequest(data []byte, handler Handler) error {
	if len(data) == 0 {
		return nil
	}

	var message CompileMessage

	if err := json.Unmarshal(data, &message); err != nil {
		return errors.Wrap(err, "failed to parse compile message")
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	return handler.HandleCompileMessage(ctx, &message)
}
