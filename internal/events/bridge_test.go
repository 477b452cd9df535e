package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/logging"
)

type captureWriter struct {
	mu       sync.Mutex
	topic    string
	messages []kafka.Message
	err      error
}

func (w *captureWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.topic = topic
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestForwarderWritesLocalEvents(t *testing.T) {
	bus := NewBus()
	writer := &captureWriter{}
	detach := NewForwarder(writer, "trainmate.refresh", "origin-a", logging.Discard()).Attach(bus)

	bus.WorkoutsRefreshed.Publish(WorkoutsRefreshed{
		TraineeID:  "7",
		ExerciseID: "3",
		Date:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	bus.CatalogChanged.Publish(CatalogChanged{Resource: ResourceExerciseTypes, ID: "5", Remote: true})
	detach()
	bus.CatalogChanged.Publish(CatalogChanged{Resource: ResourceExercises})

	require.Equal(t, "trainmate.refresh", writer.topic)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	require.Equal(t, "7", string(msg.Key))
	require.JSONEq(t, `{"traineeId":7,"exerciseId":3,"date":"2026-04-01T00:00:00Z"}`, string(msg.Value))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	require.Equal(t, TopicWorkoutsRefreshed, headers[HeaderEventType])
	require.Equal(t, "origin-a", headers[HeaderOrigin])
}

func TestForwarderSwallowsWriteErrors(t *testing.T) {
	bus := NewBus()
	writer := &captureWriter{err: errors.New("no brokers")}
	NewForwarder(writer, "t", "o", logging.Discard()).Attach(bus)

	require.NotPanics(t, func() {
		bus.CatalogChanged.Publish(CatalogChanged{Resource: ResourceExercises})
	})
}

func TestRelayRepublishesRemoteEvents(t *testing.T) {
	bus := NewBus()
	relay := NewRelayHandler(bus, "me", logging.Discard())

	var got []WorkoutsRefreshed
	bus.WorkoutsRefreshed.Subscribe(func(ev WorkoutsRefreshed) { got = append(got, ev) })

	require.NoError(t, relay.Handle(context.Background(), Message{
		EventType: TopicWorkoutsRefreshed,
		Origin:    "someone-else",
		Payload:   []byte(`{"traineeId":"7"}`),
	}))
	require.NoError(t, relay.Handle(context.Background(), Message{
		EventType: TopicWorkoutsRefreshed,
		Origin:    "me",
		Payload:   []byte(`{"traineeId":"8"}`),
	}))

	require.Len(t, got, 1)
	require.Equal(t, domain.ID("7"), got[0].TraineeID)
	require.True(t, got[0].Remote)
}

func TestRelayDoesNotEchoThroughForwarder(t *testing.T) {
	bus := NewBus()
	writer := &captureWriter{}
	NewForwarder(writer, "t", "me", logging.Discard()).Attach(bus)
	relay := NewRelayHandler(bus, "me", logging.Discard())

	var got []CatalogChanged
	bus.CatalogChanged.Subscribe(func(ev CatalogChanged) { got = append(got, ev) })

	require.NoError(t, relay.Handle(context.Background(), Message{
		EventType: TopicCatalogChanged,
		Origin:    "other",
		Payload:   []byte(`{"resource":"exerciseTypes","id":2}`),
	}))

	require.Len(t, got, 1)
	require.Equal(t, ResourceExerciseTypes, got[0].Resource)
	require.Empty(t, writer.messages)
}

func TestRelayFlagsMalformedPayloads(t *testing.T) {
	relay := NewRelayHandler(NewBus(), "me", logging.Discard())

	err := relay.Handle(context.Background(), Message{EventType: TopicCatalogChanged, Payload: []byte(`[1]`)})
	require.ErrorIs(t, err, ErrMalformed)

	require.NoError(t, relay.Handle(context.Background(), Message{EventType: "something.else", Payload: []byte(`{}`)}))
}
