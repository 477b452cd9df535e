// Package resources binds each backend collection to a synchronised list.
package resources

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/events"
	"example.com/trainmate/internal/resourcesync"
)

// Options carries the collaborators shared by every binding.
type Options struct {
	Notifier resourcesync.Notifier
	Logger   logrus.FieldLogger
	Timeout  time.Duration
	// Bus is optional; without it no refresh signals are published or followed.
	Bus *events.Bus
	// Now overrides the clock used for default date ranges.
	Now func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func collectionConfig[T any](o Options, name, label string, key func(T) string, fetch func(context.Context) ([]T, error)) resourcesync.Config[T] {
	return resourcesync.Config[T]{
		Name:     name,
		Label:    label,
		Key:      key,
		Fetch:    fetch,
		Notifier: o.Notifier,
		Logger:   o.logger(),
		Timeout:  o.Timeout,
	}
}

// reloadInBackground is used by event listeners so a publisher never waits on
// another collection's network call.
func reloadInBackground(ctx context.Context, logger logrus.FieldLogger, load func(context.Context) error) {
	go func() {
		if err := load(ctx); err != nil && err != resourcesync.ErrStale && err != resourcesync.ErrDisposed {
			logger.WithError(err).Debug("refresh-triggered reload failed")
		}
	}()
}

func traineeKey(t domain.Trainee) string           { return t.ID.String() }
func exerciseTypeKey(t domain.ExerciseType) string { return t.ID.String() }
func exerciseKey(e domain.Exercise) string         { return e.ID.String() }
func workoutKey(w domain.Workout) string           { return w.ID.String() }
