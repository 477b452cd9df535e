// Package app assembles the client from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/apiclient"
	"example.com/trainmate/internal/config"
	"example.com/trainmate/internal/events"
	"example.com/trainmate/internal/resources"
	"example.com/trainmate/internal/resourcesync"
	"example.com/trainmate/internal/session"
	"example.com/trainmate/internal/session/storage"
)

// App holds the long-lived collaborators shared by every command.
type App struct {
	Config   config.Config
	Logger   logrus.FieldLogger
	Session  *session.Store
	API      *apiclient.Client
	Bus      *events.Bus
	Notifier resourcesync.Notifier
	// Origin identifies this process on the refresh bridge.
	Origin string

	closers []func() error
}

// New opens the session slot, restores any saved identity and, when brokers
// are configured, forwards local refresh events to Kafka.
func New(ctx context.Context, cfg config.Config, logger logrus.FieldLogger, notifier resourcesync.Notifier) (*App, error) {
	if notifier == nil {
		notifier = resourcesync.LogNotifier{Logger: logger}
	}
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Bus:      events.NewBus(),
		Notifier: notifier,
		Origin:   uuid.NewString(),
	}

	slot, closeSlot, err := OpenStorage(ctx, cfg.Session)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeSlot)

	a.Session = session.NewStore(slot, session.WithKey(cfg.Session.Key), session.WithLogger(logger))
	a.Session.Restore(ctx)

	a.API = apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Endpoints: apiclient.Endpoints{
			Trainees:      cfg.API.Endpoints.Trainees,
			ExerciseTypes: cfg.API.Endpoints.ExerciseTypes,
			Exercises:     cfg.API.Endpoints.Exercises,
			Workouts:      cfg.API.Endpoints.Workouts,
			Auth:          cfg.API.Endpoints.Auth,
		},
		Timeout: cfg.API.Timeout,
		Tokens:  a.Session,
	})

	if a.BridgeEnabled() {
		producer := events.NewKafkaProducer(cfg.Events.KafkaBrokers)
		detach := events.NewForwarder(producer, cfg.Events.Topic, a.Origin, logger).Attach(a.Bus)
		a.closers = append(a.closers, func() error {
			detach()
			return producer.Close()
		})
	}
	return a, nil
}

// BridgeEnabled reports whether Kafka brokers are configured.
func (a *App) BridgeEnabled() bool {
	return len(a.Config.Events.KafkaBrokers) > 0 && a.Config.Events.Topic != ""
}

// RunRelay consumes the bridge topic until ctx is cancelled, republishing
// other processes' events on the local bus.
func (a *App) RunRelay(ctx context.Context) error {
	if !a.BridgeEnabled() {
		return nil
	}
	groupID := a.Config.Events.GroupID
	if groupID == "" {
		groupID = "trainmate-" + a.Origin
	}
	reader := events.NewKafkaReader(a.Config.Events.KafkaBrokers, a.Config.Events.Topic, groupID)
	defer reader.Close()

	handler := events.NewRelayHandler(a.Bus, a.Origin, a.Logger)
	proc := events.NewProcessor(reader, handler, events.WithLogger(a.Logger.WithField("component", "relay")))
	err := proc.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Options returns the shared options for resource bindings.
func (a *App) Options() resources.Options {
	return resources.Options{
		Notifier: a.Notifier,
		Logger:   a.Logger,
		Timeout:  a.Config.Sync.Timeout,
		Bus:      a.Bus,
	}
}

// Trainees builds the trainee binding.
func (a *App) Trainees() *resources.Trainees { return resources.NewTrainees(a.API, a.Options()) }

// ExerciseTypes builds the exercise type binding.
func (a *App) ExerciseTypes() *resources.ExerciseTypes {
	return resources.NewExerciseTypes(a.API, a.Options())
}

// Exercises builds the exercise binding.
func (a *App) Exercises() *resources.Exercises { return resources.NewExercises(a.API, a.Options()) }

// Workouts builds a workout binding for filter.
func (a *App) Workouts(filter resources.WorkoutFilter) *resources.Workouts {
	return resources.NewWorkouts(a.API, filter, a.Options())
}

// Accounts builds the sign-in/registration flow.
func (a *App) Accounts() *resources.Accounts {
	return resources.NewAccounts(a.API, a.Session, a.Options())
}

// Close releases storage handles and Kafka writers.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStorage selects the session slot backend named by cfg.Backend.
func OpenStorage(ctx context.Context, cfg config.SessionConfig) (session.Storage, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "memory":
		return storage.NewMemory(), noop, nil
	case "", "file":
		st, err := storage.NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case "sqlite":
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		st := storage.NewSQLite(db)
		if err := st.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return st, db.Close, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		st := storage.NewPostgres(pool)
		if err := st.Init(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, func() error { pool.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
