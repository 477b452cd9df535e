package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTopicPublishReachesCurrentSubscribers(t *testing.T) {
	topic := NewTopic[int]("numbers")

	var a, b []int
	cancelA := topic.Subscribe(func(v int) { a = append(a, v) })
	topic.Subscribe(func(v int) { b = append(b, v) })

	topic.Publish(1)
	cancelA()
	cancelA()
	topic.Publish(2)

	require.Equal(t, []int{1}, a)
	require.Equal(t, []int{1, 2}, b)
	require.Equal(t, "numbers", topic.Name())
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	require.NotPanics(t, func() {
		bus.WorkoutsRefreshed.Publish(WorkoutsRefreshed{TraineeID: "1", Date: time.Now()})
		bus.CatalogChanged.Publish(CatalogChanged{Resource: ResourceExercises})
	})
}

func TestSubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	topic := NewTopic[string]("s")
	calls := 0
	var cancel func()
	cancel = topic.Subscribe(func(string) {
		calls++
		cancel()
	})

	topic.Publish("x")
	topic.Publish("y")
	require.Equal(t, 1, calls)
}
