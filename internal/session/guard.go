// Package session owns the authenticated identity for the life of the process
// and gates role-restricted commands.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/observability"
	"example.com/trainmate/internal/session/storage"
)

// DefaultKey names the durable slot holding the serialized identity.
const DefaultKey = "auth"

// Storage is a durable key/value slot. Load returns storage.ErrNotFound for
// absent keys.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Listener observes identity changes. It receives nil after logout.
type Listener func(*domain.Identity)

// Option configures optional behaviour for the Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger overrides the logger used to report degraded storage.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds the single current identity and mirrors it into durable storage.
type Store struct {
	storage Storage
	key     string
	logger  logrus.FieldLogger
	now     func() time.Time

	mu      sync.RWMutex
	current *domain.Identity

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// NewStore constructs a Store over the provided storage.
func NewStore(st Storage, opts ...Option) *Store {
	s := &Store{
		storage:   st,
		key:       DefaultKey,
		logger:    logrus.StandardLogger(),
		now:       time.Now,
		listeners: make(map[uint64]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "session")
	return s
}

// Restore loads the persisted identity and makes it current. Absent, corrupt
// or expired data yields nil; restore never fails.
func (s *Store) Restore(ctx context.Context) *domain.Identity {
	identity := s.readSlot(ctx)

	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	role := ""
	if identity != nil {
		role = string(identity.Role)
	}
	observability.RecordSessionTransition("restore", role)
	s.notify(identity)
	return clone(identity)
}

func (s *Store) readSlot(ctx context.Context) *domain.Identity {
	raw, err := s.safely(func() ([]byte, error) { return s.storage.Load(ctx, s.key) })
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(err).Warn("session slot unreadable, continuing unauthenticated")
			observability.RecordSessionStorageError("load")
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		s.logger.Debug("session slot holds unparseable data, treating as logged out")
		return nil
	}
	if err := identity.Validate(); err != nil {
		s.logger.Debug("session slot holds an invalid identity, treating as logged out")
		return nil
	}
	if !tokenUsable(identity.Token, s.now()) {
		s.logger.Info("stored session token expired, sign in again")
		s.deleteSlot(ctx)
		return nil
	}
	identity = identity.Normalized()
	return &identity
}

// Login validates and installs identity, persists it and notifies subscribers.
// A storage failure is logged; the in-memory session still takes effect.
func (s *Store) Login(ctx context.Context, identity domain.Identity) error {
	if err := identity.Validate(); err != nil {
		return err
	}
	identity = identity.Normalized()

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if _, err := s.safely(func() ([]byte, error) { return nil, s.storage.Save(ctx, s.key, raw) }); err != nil {
		s.logger.WithError(err).Warn("session slot not writable, session will not survive restart")
		observability.RecordSessionStorageError("save")
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()

	observability.RecordSessionTransition("login", string(identity.Role))
	s.notify(&identity)
	return nil
}

// Logout clears the current identity and its persisted copy. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.deleteSlot(ctx)

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	observability.RecordSessionTransition("logout", "")
	s.notify(nil)
}

func (s *Store) deleteSlot(ctx context.Context) {
	_, err := s.safely(func() ([]byte, error) { return nil, s.storage.Delete(ctx, s.key) })
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.WithError(err).Warn("session slot not cleared")
		observability.RecordSessionStorageError("delete")
	}
}

// Current returns a copy of the current identity, or nil.
func (s *Store) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// Token returns the bearer token of the current identity, if any.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Authorize applies Authorize to the current identity.
func (s *Store) Authorize(required domain.Role) Decision {
	return Authorize(s.Current(), required)
}

// Subscribe registers fn for identity changes and returns its cancel function.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(identity *domain.Identity) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(clone(identity))
	}
}

// safely runs a storage call, converting a panic into an error so the guard
// keeps working.
func (s *Store) safely(call func() ([]byte, error)) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session storage panic: %v", r)
		}
	}()
	return call()
}

func clone(identity *domain.Identity) *domain.Identity {
	if identity == nil {
		return nil
	}
	cp := *identity
	return &cp
}
