// Package events carries refresh signals between collections, in process and,
// optionally, across processes over Kafka.
package events

import "sync"

// Topic is a typed in-process broadcast channel. Publish runs every listener
// registered at that moment, synchronously and in no particular order.
type Topic[T any] struct {
	name string

	mu        sync.Mutex
	listeners map[uint64]func(T)
	nextID    uint64
}

// NewTopic constructs an empty topic.
func NewTopic[T any](name string) *Topic[T] {
	return &Topic[T]{name: name, listeners: make(map[uint64]func(T))}
}

// Name returns the topic name used on the wire.
func (t *Topic[T]) Name() string { return t.name }

// Subscribe registers fn and returns its cancel function.
func (t *Topic[T]) Subscribe(fn func(T)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.listeners, id)
		})
	}
}

// Publish delivers event to the current listeners.
func (t *Topic[T]) Publish(event T) {
	t.mu.Lock()
	listeners := make([]func(T), 0, len(t.listeners))
	for _, fn := range t.listeners {
		listeners = append(listeners, fn)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// Bus groups the topics shared by the client.
type Bus struct {
	WorkoutsRefreshed *Topic[WorkoutsRefreshed]
	CatalogChanged    *Topic[CatalogChanged]
}

// NewBus constructs a bus with every topic ready.
func NewBus() *Bus {
	return &Bus{
		WorkoutsRefreshed: NewTopic[WorkoutsRefreshed](TopicWorkoutsRefreshed),
		CatalogChanged:    NewTopic[CatalogChanged](TopicCatalogChanged),
	}
}
