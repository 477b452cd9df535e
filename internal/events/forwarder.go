package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Message headers used on the bridge topic.
const (
	HeaderEventType = "event_type"
	HeaderOrigin    = "origin"
)

// MessageWriter is the subset of KafkaProducer the forwarder needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// Forwarder copies locally published events onto a Kafka topic, tagged with
// this process's origin.
type Forwarder struct {
	writer  MessageWriter
	topic   string
	origin  string
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewForwarder constructs a Forwarder writing to kafkaTopic.
func NewForwarder(writer MessageWriter, kafkaTopic, origin string, logger logrus.FieldLogger) *Forwarder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Forwarder{
		writer:  writer,
		topic:   kafkaTopic,
		origin:  origin,
		timeout: 5 * time.Second,
		logger:  logger.WithFields(logrus.Fields{"component": "forwarder", "topic": kafkaTopic}),
	}
}

// Attach subscribes the forwarder to every bus topic. The returned function
// detaches it.
func (f *Forwarder) Attach(bus *Bus) func() {
	cancelWorkouts := bus.WorkoutsRefreshed.Subscribe(func(ev WorkoutsRefreshed) {
		if ev.Remote {
			return
		}
		f.forward(TopicWorkoutsRefreshed, ev.TraineeID.String(), ev)
	})
	cancelCatalog := bus.CatalogChanged.Subscribe(func(ev CatalogChanged) {
		if ev.Remote {
			return
		}
		f.forward(TopicCatalogChanged, ev.Resource, ev)
	})
	return func() {
		cancelWorkouts()
		cancelCatalog()
	}
}

func (f *Forwarder) forward(eventType, key string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		f.logger.WithError(err).WithField("event_type", eventType).Error("encode refresh event")
		recordForwarded(eventType, "encode_error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderOrigin, Value: []byte(f.origin)},
			{Key: "content_type", Value: []byte("application/json")},
		},
	}
	if err := f.writer.WriteMessages(ctx, f.topic, msg); err != nil {
		f.logger.WithError(err).WithField("event_type", eventType).Warn("refresh event not forwarded")
		recordForwarded(eventType, "error")
		return
	}
	recordForwarded(eventType, "ok")
}
