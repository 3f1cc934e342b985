package stream

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"code-runner/internal/queue"
)

// NsqPublisher publishes events to a topic so they reach the api instances
// holding the websocket connections.
type NsqPublisher struct {
	topic    string
	producer *nsq.Producer
}

func NewNsqPublisher(address, topic string) (*NsqPublisher, error) {
	producer, err := nsq.NewProducer(address, nsq.NewConfig())

	if err != nil {
		return nil, errors.Wrap(err, "failed to create NSQ event producer")
	}

	producer.SetLogger(queue.NsqLogger{Logger: log.With().Str("component", "nsq-events").Logger()}, nsq.LogLevelWarning)

	return &NsqPublisher{topic: topic, producer: producer}, nil
}

func (n *NsqPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)

	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}

	return errors.Wrap(n.producer.Publish(n.topic, data), "failed to publish event")
}

func (n *NsqPublisher) Stop() {
	n.producer.Stop()
}

// NsqRelay consumes the event topic on an ephemeral channel, every api
// instance gets its own copy of every event and forwards it to its hub.
type NsqRelay struct {
	consumer *nsq.Consumer
}

func NewNsqRelay(address, topic string, target Publisher) (*NsqRelay, error) {
	channel := "api-" + uuid.NewString()[:8] + "#ephemeral"

	consumer, err := nsq.NewConsumer(topic, channel, nsq.NewConfig())

	if err != nil {
		return nil, errors.Wrap(err, "failed to create NSQ event consumer")
	}

	consumer.SetLogger(queue.NsqLogger{Logger: log.With().Str("component", "nsq-relay").Logger()}, nsq.LogLevelWarning)
	consumer.AddHandler(nsq.HandlerFunc(func(m *nsq.Message) error {
		return relayEvent(m.Body, target)
	}))

	if err := consumer.ConnectToNSQD(address); err != nil {
		return nil, errors.Wrap(err, "failed to connect the event relay to NSQ")
	}

	return &NsqRelay{consumer: consumer}, nil
}

func relayEvent(data []byte, target Publisher) error {
	var event Event

	if err := json.Unmarshal(data, &event); err != nil {
		log.Warn().Err(err).Msg("dropping malformed event")
		return nil
	}

	return target.Publish(event)
}

func (n *NsqRelay) Stop() {
	n.consumer.Stop()
	<-n.consumer.StopChan
}
