package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/trainmate/internal/logging"
)

func TestProcessorCommitsOnSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := kafka.Message{
		Topic:  "trainmate.refresh",
		Offset: 10,
		Time:   time.Now().UTC(),
		Value:  []byte(`{"traineeId":7}`),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(TopicWorkoutsRefreshed)},
			{Key: HeaderOrigin, Value: []byte("other")},
		},
	}

	reader := &stubReader{messages: []kafka.Message{msg}, after: contextCanceled}
	handler := &stubHandler{}

	processor := NewProcessor(reader, handler, WithLogger(logging.Discard()))

	err := processor.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 1, reader.commitCalls)
	require.Equal(t, TopicWorkoutsRefreshed, handler.last.EventType)
	require.Equal(t, "other", handler.last.Origin)
	require.JSONEq(t, `{"traineeId":7}`, string(handler.last.Payload))
}

func TestProcessorSkipsCommitOnHandlerError(t *testing.T) {
	reader := &stubReader{
		messages: []kafka.Message{{
			Topic:   "trainmate.refresh",
			Value:   []byte(`{}`),
			Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(TopicCatalogChanged)}},
		}},
		after: contextCanceled,
	}
	handler := &stubHandler{err: errors.New("boom")}

	err := NewProcessor(reader, handler, WithLogger(logging.Discard())).Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 0, reader.commitCalls)
}

func TestProcessorCommitsPoisonMessages(t *testing.T) {
	reader := &stubReader{
		messages: []kafka.Message{
			{Topic: "trainmate.refresh", Value: []byte(`{}`)},
			{Topic: "trainmate.refresh", Value: []byte(`not json`), Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(TopicCatalogChanged)}}},
			{Topic: "trainmate.refresh", Value: []byte(`{}`), Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(TopicCatalogChanged)}}},
		},
		after: contextCanceled,
	}
	handler := &stubHandler{err: ErrMalformed}

	err := NewProcessor(reader, handler, WithLogger(logging.Discard())).Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, handler.calls)
	require.Equal(t, 3, reader.commitCalls)
}

func TestProcessorContinuesAfterFetchError(t *testing.T) {
	reader := &stubReader{
		fetchErrs: []error{errors.New("broker gone")},
		messages: []kafka.Message{{
			Value:   []byte(`{}`),
			Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(TopicCatalogChanged)}},
		}},
		after: contextCanceled,
	}
	handler := &stubHandler{}

	err := NewProcessor(reader, handler, WithLogger(logging.Discard())).Run(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, handler.calls)
}

type stubReader struct {
	fetchErrs   []error
	messages    []kafka.Message
	index       int
	commitCalls int
	after       func() error
}

func (r *stubReader) FetchMessage(context.Context) (kafka.Message, error) {
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafka.Message{}, err
	}
	if r.index >= len(r.messages) {
		if r.after != nil {
			return kafka.Message{}, r.after()
		}
		return kafka.Message{}, context.Canceled
	}
	msg := r.messages[r.index]
	r.index++
	return msg, nil
}

func (r *stubReader) CommitMessages(_ context.Context, _ ...kafka.Message) error {
	r.commitCalls++
	return nil
}

func (r *stubReader) Close() error { return nil }

func contextCanceled() error { return context.Canceled }

type stubHandler struct {
	calls int
	err   error
	last  Message
}

func (h *stubHandler) Handle(_ context.Context, msg Message) error {
	h.calls++
	h.last = msg
	return h.err
}
