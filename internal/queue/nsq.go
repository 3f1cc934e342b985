package queue

import (
	"fmt"
	"strings"

	"github.com/nsqio/go-nsq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type NsqQueue struct {
	config   *NsqConfig
	producer *nsq.Producer
	consumer *nsq.Consumer
}

// NsqLogger forwards the NSQ client logs into zerolog.
type NsqLogger struct {
	Logger zerolog.Logger
}

func (l NsqLogger) Output(_ int, s string) error {
	l.Logger.Debug().Msg(strings.TrimSpace(s))
	return nil
}

// NsqAddress formats the nsqd address from its host and port.
func NsqAddress(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

func newNsqQueue(config *NsqConfig, handler Handler) (*NsqQueue, error) {
	queue := &NsqQueue{config: config}
	address := NsqAddress(config.NsqLookupAddress, config.NsqLookupPort)
	nsqLogger := NsqLogger{Logger: log.With().Str("component", "nsq").Logger()}

	if config.Producer {
		producer, err := nsq.NewProducer(address, nsq.NewConfig())

		if err != nil {
			return nil, errors.Wrap(err, "failed to create NSQ producer")
		}

		producer.SetLogger(nsqLogger, nsq.LogLevelWarning)
		queue.producer = producer
	}

	if config.Consumer {
		if handler == nil {
			return nil, errors.New("NSQ consumer requires a handler")
		}

		nsqConfig := nsq.NewConfig()
		nsqConfig.MaxInFlight = max(config.MaxInFlight, 1)

		consumer, err := nsq.NewConsumer(config.Topic, config.Channel, nsqConfig)

		if err != nil {
			return nil, errors.Wrap(err, "failed to create NSQ consumer")
		}

		consumer.SetLogger(nsqLogger, nsq.LogLevelWarning)
		consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
			if err := handleIncomingRequest(m.Body, handler); err != nil {
				log.Error().Err(err).Str("id", string(m.ID[:])).
					Msg("failed to handle incoming compile request")
			}

			// executions are never retried, a failure is final for the message.
			return nil
		}), nsqConfig.MaxInFlight)

		if err := consumer.ConnectToNSQD(address); err != nil {
			return nil, errors.Wrap(err, "failed to connect to NSQ")
		}

		queue.consumer = consumer
	}

	return queue, nil
}

func (n *NsqQueue) SubmitMessageToQueue(data []byte) error {
	if n.producer == nil {
		return errors.New("NSQ queue is not configured as a producer")
	}

	return errors.Wrap(n.producer.Publish(n.config.Topic, data), "failed to publish to NSQ")
}

func (n *NsqQueue) Stop() {
	log.Info().Msg("stopping NSQ queue")

	if n.consumer != nil {
		n.consumer.Stop()
		<-n.consumer.StopChan
	}

	if n.producer != nil {
		n.producer.Stop()
	}
}
