package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// ErrMalformed marks a message that can never be handled. The processor
// commits such messages so they do not block the partition.
var ErrMalformed = errors.New("malformed bridge message")

// Reader describes the kafka.Reader functions the processor interacts with.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler processes decoded Kafka messages.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message represents a decoded Kafka record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	EventType string
	Origin    string
	Payload   json.RawMessage
	Timestamp time.Time
	Headers   map[string]string
}

// Option configures processor behaviour.
type Option func(*Processor)

// WithLogger sets a custom logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Processor) { p.logger = l }
}

// Processor coordinates the consumer loop.
type Processor struct {
	reader  Reader
	handler Handler
	logger  logrus.FieldLogger
}

// NewProcessor constructs a processor from a reader/handler pair.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{reader: reader, handler: handler, logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes messages until ctx cancellation.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			p.logger.WithError(err).Warn("fetch error")
			continue
		}

		log := p.logger.WithFields(logrus.Fields{"topic": msg.Topic, "offset": msg.Offset})

		decoded, err := decode(msg)
		if err != nil {
			log.WithError(err).Warn("dropping undecodable message")
			recordRelayed("unknown", "malformed")
			p.commit(ctx, log, msg)
			continue
		}

		if err := p.handler.Handle(ctx, decoded); err != nil {
			if errors.Is(err, ErrMalformed) {
				log.WithError(err).Warn("dropping malformed message")
				recordRelayed(decoded.EventType, "malformed")
				p.commit(ctx, log, msg)
				continue
			}
			log.WithError(err).Error("handler error")
			recordRelayed(decoded.EventType, "error")
			continue
		}

		recordRelayed(decoded.EventType, "ok")
		recordLastMessage(decoded)
		p.commit(ctx, log, msg)
	}
}

func (p *Processor) commit(ctx context.Context, log logrus.FieldLogger, msg kafka.Message) {
	if err := p.reader.CommitMessages(ctx, msg); err != nil {
		log.WithError(err).Warn("commit error")
	}
}

func decode(msg kafka.Message) (Message, error) {
	decoded := Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Payload:   append(json.RawMessage{}, msg.Value...),
		Timestamp: msg.Time,
		Headers:   make(map[string]string, len(msg.Headers)),
	}
	for _, header := range msg.Headers {
		decoded.Headers[header.Key] = string(header.Value)
	}
	decoded.EventType = decoded.Headers[HeaderEventType]
	decoded.Origin = decoded.Headers[HeaderOrigin]

	if decoded.EventType == "" {
		return Message{}, fmt.Errorf("%w: missing %s header", ErrMalformed, HeaderEventType)
	}
	if !json.Valid(decoded.Payload) {
		return Message{}, fmt.Errorf("%w: payload is not json", ErrMalformed)
	}
	return decoded, nil
}

// NewKafkaReader builds the bridge consumer. Every process should use its own
// groupID so that each one sees every refresh.
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
}
