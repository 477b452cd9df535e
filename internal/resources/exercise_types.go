package resources

import (
	"context"
	"strings"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/events"
	"example.com/trainmate/internal/resourcesync"
)

// ExerciseTypeAPI is the backend surface used by ExerciseTypes.
type ExerciseTypeAPI interface {
	ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error)
	CreateExerciseType(ctx context.Context, in domain.ExerciseTypeInput) (domain.ExerciseType, error)
	UpdateExerciseType(ctx context.Context, id domain.ID, in domain.ExerciseTypeInput) error
	DeleteExerciseType(ctx context.Context, id domain.ID) error
}

// ExerciseTypes is the exercise type catalog.
type ExerciseTypes struct {
	*resourcesync.Collection[domain.ExerciseType]
	api    ExerciseTypeAPI
	bus    *events.Bus
	cancel func()
}

// NewExerciseTypes constructs the catalog binding. With a bus it reloads when
// another process reports a catalog change.
func NewExerciseTypes(api ExerciseTypeAPI, opts Options) *ExerciseTypes {
	et := &ExerciseTypes{
		Collection: resourcesync.New(collectionConfig(opts, "exerciseTypes", "Exercise type", exerciseTypeKey, api.ListExerciseTypes)),
		api:        api,
		bus:        opts.Bus,
		cancel:     func() {},
	}
	if opts.Bus != nil {
		logger := opts.logger()
		et.cancel = opts.Bus.CatalogChanged.Subscribe(func(ev events.CatalogChanged) {
			if ev.Remote && ev.Resource == events.ResourceExerciseTypes {
				reloadInBackground(context.Background(), logger, et.Load)
			}
		})
	}
	return et
}

// Create validates and adds a type, then announces the catalog change.
func (e *ExerciseTypes) Create(ctx context.Context, in domain.ExerciseTypeInput) (domain.ExerciseType, error) {
	in.Name = strings.TrimSpace(in.Name)
	created, err := e.Collection.Create(ctx, in, func(ctx context.Context) (domain.ExerciseType, error) {
		return e.api.CreateExerciseType(ctx, in)
	})
	if err != nil {
		return created, err
	}
	e.announce(created.ID)
	return created, nil
}

// Update renames a type once the backend accepts it.
func (e *ExerciseTypes) Update(ctx context.Context, id domain.ID, in domain.ExerciseTypeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	err := e.Collection.Update(ctx, id.String(), in,
		func(ctx context.Context) error { return e.api.UpdateExerciseType(ctx, id, in) },
		func(t domain.ExerciseType) domain.ExerciseType { t.Name = in.Name; return t },
	)
	if err == nil {
		e.announce(id)
	}
	return err
}

// Remove deletes a type optimistically.
func (e *ExerciseTypes) Remove(ctx context.Context, id domain.ID) error {
	return e.Collection.Remove(ctx, id.String(), func(ctx context.Context) error {
		return e.api.DeleteExerciseType(ctx, id)
	})
}

// Dispose detaches from the bus and disposes the list.
func (e *ExerciseTypes) Dispose() {
	e.cancel()
	e.Collection.Dispose()
}

func (e *ExerciseTypes) announce(id domain.ID) {
	if e.bus != nil {
		e.bus.CatalogChanged.Publish(events.CatalogChanged{Resource: events.ResourceExerciseTypes, ID: id})
	}
}
