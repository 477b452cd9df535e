// Package resourcesync keeps a local list in step with a remote collection:
// load with stale-response discard, validated create, confirm-then-apply
// update and optimistic remove with rollback.
package resourcesync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/observability"
)

var (
	// ErrStale reports a load response superseded by a newer load or by Dispose.
	ErrStale = errors.New("stale load discarded")
	// ErrDisposed is returned by operations started after Dispose.
	ErrDisposed = errors.New("collection disposed")
)

// DefaultTimeout bounds each remote call when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Phase is the load lifecycle of a collection.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot handed to observers.
type State[T any] struct {
	Phase Phase
	Items []T
	Err   error
}

// Validator is implemented by mutation inputs.
type Validator interface {
	Validate() error
}

// Config wires a Collection to its remote.
type Config[T any] struct {
	// Name labels metrics, logs and notifications, e.g. "trainees".
	Name string
	// Label is the singular noun used in success messages, e.g. "Trainee".
	Label string
	// Key returns the identity of an item.
	Key func(T) string
	// Fetch lists the remote collection in its natural order.
	Fetch    func(ctx context.Context) ([]T, error)
	Notifier Notifier
	Logger   logrus.FieldLogger
	Timeout  time.Duration
}

// Collection is a locally held ordered list mirroring a remote collection.
type Collection[T any] struct {
	name     string
	label    string
	key      func(T) string
	fetch    func(ctx context.Context) ([]T, error)
	notifier Notifier
	logger   logrus.FieldLogger
	timeout  time.Duration

	mu       sync.Mutex
	state    State[T]
	loadSeq  uint64
	commits  uint64
	disposed bool

	// version stamps every snapshot taken for observers; emitted is the
	// newest version delivered.
	version uint64
	emitMu  sync.Mutex
	emitted uint64

	observersMu sync.Mutex
	observers   map[uint64]func(State[T])
	nextID      uint64
}

type stamped[T any] struct {
	state   State[T]
	version uint64
}

// New constructs a Collection in the Idle phase.
func New[T any](cfg Config[T]) *Collection[T] {
	c := &Collection[T]{
		name:      cfg.Name,
		label:     cfg.Label,
		key:       cfg.Key,
		fetch:     cfg.Fetch,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
		timeout:   cfg.Timeout,
		observers: make(map[uint64]func(State[T])),
	}
	if c.label == "" {
		c.label = "Item"
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
	c.logger = c.logger.WithField("collection", c.name)
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Load fetches the remote list. The newest load wins: a response that is no
// longer the latest, or that arrives after Dispose, is dropped with ErrStale.
// On failure the previous items are kept.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	c.loadSeq++
	seq := c.loadSeq
	c.state.Phase = PhaseLoading
	c.state.Err = nil
	snap := c.stampLocked()
	c.mu.Unlock()
	c.emit(snap)

	callCtx, cancel := c.bound(ctx)
	items, err := c.fetch(callCtx)
	cancel()

	c.mu.Lock()
	if c.disposed || seq != c.loadSeq {
		c.mu.Unlock()
		observability.RecordStaleLoad(c.name)
		c.logger.WithField("seq", seq).Debug("discarding stale load response")
		return ErrStale
	}
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = err
		snap = c.stampLocked()
		c.mu.Unlock()
		c.emit(snap)
		c.report(SeverityError, MessageFor(err, "Failed to load "+c.name), err)
		return err
	}
	c.state = State[T]{Phase: PhaseReady, Items: cloneItems(items)}
	c.commits++
	snap = c.stampLocked()
	c.mu.Unlock()

	observability.RecordLoaded(c.name, time.Now())
	c.emit(snap)
	return nil
}

// Create validates input, calls the remote and merges the returned record.
// Invalid input never reaches the remote.
func (c *Collection[T]) Create(ctx context.Context, input Validator, call func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if c.isDisposed() {
		return zero, ErrDisposed
	}
	if err := c.validate(input); err != nil {
		return zero, err
	}

	callCtx, cancel := c.bound(ctx)
	item, err := call(callCtx)
	cancel()
	if err != nil {
		c.report(SeverityError, MessageFor(err, "Failed to create "+c.label), err)
		return zero, err
	}

	if c.key(item) == "" {
		// the remote confirmed without echoing the record; refetch rather
		// than merge a keyless item
		c.report(SeveritySuccess, c.label+" added", nil)
		if err := c.Load(ctx); err != nil && !errors.Is(err, ErrStale) && !errors.Is(err, ErrDisposed) {
			c.logger.WithError(err).Warn("reload after create failed")
		}
		return item, nil
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return item, nil
	}
	c.state.Items = c.mergeLocked(item)
	snap := c.stampLocked()
	c.mu.Unlock()

	c.emit(snap)
	c.report(SeveritySuccess, c.label+" added", nil)
	return item, nil
}

// Update validates input, calls the remote and, only after it confirms,
// patches the local item with apply. A failed call changes nothing locally.
func (c *Collection[T]) Update(ctx context.Context, id string, input Validator, call func(ctx context.Context) error, apply func(T) T) error {
	if c.isDisposed() {
		return ErrDisposed
	}
	if err := c.validate(input); err != nil {
		return err
	}

	callCtx, cancel := c.bound(ctx)
	err := call(callCtx)
	cancel()
	if err != nil {
		c.report(SeverityError, MessageFor(err, "Failed to update "+c.label), err)
		return err
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	changed := false
	if apply != nil {
		if idx := c.indexLocked(id); idx >= 0 {
			items := cloneItems(c.state.Items)
			items[idx] = apply(items[idx])
			c.state.Items = items
			changed = true
		}
	}
	snap := c.stampLocked()
	c.mu.Unlock()

	if changed {
		c.emit(snap)
	}
	c.report(SeveritySuccess, c.label+" updated", nil)
	return nil
}

// Remove drops id locally, then calls the remote. If the remote fails the
// pre-removal list is restored, unless a newer load committed meanwhile.
func (c *Collection[T]) Remove(ctx context.Context, id string, call func(ctx context.Context) error) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	before := cloneItems(c.state.Items)
	commits := c.commits
	kept := make([]T, 0, len(before))
	for _, item := range before {
		if c.key(item) != id {
			kept = append(kept, item)
		}
	}
	c.state.Items = kept
	snap := c.stampLocked()
	c.mu.Unlock()
	c.emit(snap)

	callCtx, cancel := c.bound(ctx)
	err := call(callCtx)
	cancel()

	if err == nil {
		c.report(SeveritySuccess, c.label+" deleted", nil)
		return nil
	}

	c.mu.Lock()
	restored := false
	if !c.disposed && c.commits == commits {
		c.state.Items = before
		restored = true
	}
	snap = c.stampLocked()
	c.mu.Unlock()

	if restored {
		observability.RecordRollback(c.name)
		c.emit(snap)
	}
	c.report(SeverityError, MessageFor(err, "Failed to delete "+c.label), err)
	return err
}

// Submit runs a validated remote action that does not touch the local list
// directly, such as reporting a workout. success is the notification text.
func (c *Collection[T]) Submit(ctx context.Context, input Validator, call func(ctx context.Context) error, success string) error {
	if c.isDisposed() {
		return ErrDisposed
	}
	if err := c.validate(input); err != nil {
		return err
	}

	callCtx, cancel := c.bound(ctx)
	err := call(callCtx)
	cancel()
	if err != nil {
		c.report(SeverityError, MessageFor(err, "Request failed"), err)
		return err
	}
	if success != "" {
		c.report(SeveritySuccess, success, nil)
	}
	return nil
}

// Items returns a copy of the current list in remote order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.state.Items)
}

// Find returns the item with the given key.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(id); idx >= 0 {
		return c.state.Items[idx], true
	}
	var zero T
	return zero, false
}

// Snapshot returns the current state.
func (c *Collection[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Observe registers fn for state changes and returns its cancel function.
// Observers run one at a time and see snapshots in commit order; a snapshot
// older than one already delivered is skipped. fn must not call Load, Create,
// Update, Remove or Submit on the same collection synchronously.
func (c *Collection[T]) Observe(fn func(State[T])) func() {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.observersMu.Lock()
		defer c.observersMu.Unlock()
		delete(c.observers, id)
	}
}

// Dispose turns every in-flight and future effect into a no-op.
func (c *Collection[T]) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()

	c.observersMu.Lock()
	c.observers = make(map[uint64]func(State[T]))
	c.observersMu.Unlock()
}

func (c *Collection[T]) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// RejectInput reports err as invalid input, exactly as a failed Validate on
// Create or Update would, and returns it. Use it for input that fails to parse
// before a mutation input can be built.
func (c *Collection[T]) RejectInput(err error) error {
	if err == nil {
		return nil
	}
	observability.RecordValidationFailure(c.name)
	c.report(SeverityWarning, MessageFor(err, "Invalid input"), err)
	return err
}

func (c *Collection[T]) validate(input Validator) error {
	if input == nil {
		return nil
	}
	return c.RejectInput(input.Validate())
}

func (c *Collection[T]) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Collection[T]) report(sev Severity, msg string, err error) {
	if c.isDisposed() {
		return
	}
	c.notifier.Notify(Notification{Severity: sev, Message: msg, Collection: c.name, Err: err})
}

func (c *Collection[T]) emit(snap stamped[T]) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if snap.version <= c.emitted {
		return
	}
	c.emitted = snap.version
	state := snap.state

	c.observersMu.Lock()
	observers := make([]func(State[T]), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.observersMu.Unlock()

	for _, fn := range observers {
		fn(State[T]{Phase: state.Phase, Items: cloneItems(state.Items), Err: state.Err})
	}
}

func (c *Collection[T]) mergeLocked(item T) []T {
	items := cloneItems(c.state.Items)
	if idx := c.indexLocked(c.key(item)); idx >= 0 {
		items[idx] = item
		return items
	}
	return append(items, item)
}

func (c *Collection[T]) indexLocked(id string) int {
	for i, item := range c.state.Items {
		if c.key(item) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) stampLocked() stamped[T] {
	c.version++
	return stamped[T]{state: c.snapshotLocked(), version: c.version}
}

func (c *Collection[T]) snapshotLocked() State[T] {
	return State[T]{Phase: c.state.Phase, Items: cloneItems(c.state.Items), Err: c.state.Err}
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
