package resources

import (
	"context"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/events"
	"example.com/trainmate/internal/resourcesync"
)

// ExerciseAPI is the backend surface used by Exercises.
type ExerciseAPI interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, in domain.ExerciseInput) (domain.Exercise, error)
	UpdateExercise(ctx context.Context, id domain.ID, in domain.ExercisePatch) error
	DeleteExercise(ctx context.Context, id domain.ID) error
}

// Exercises is the list of sets/reps prescriptions.
type Exercises struct {
	*resourcesync.Collection[domain.Exercise]
	api    ExerciseAPI
	bus    *events.Bus
	cancel func()
}

// NewExercises constructs the exercise binding. With a bus it reloads when a
// type is renamed or another process changes the exercise catalog.
func NewExercises(api ExerciseAPI, opts Options) *Exercises {
	ex := &Exercises{
		Collection: resourcesync.New(collectionConfig(opts, "exercises", "Exercise", exerciseKey, api.ListExercises)),
		api:        api,
		bus:        opts.Bus,
		cancel:     func() {},
	}
	if opts.Bus != nil {
		logger := opts.logger()
		ex.cancel = opts.Bus.CatalogChanged.Subscribe(func(ev events.CatalogChanged) {
			if ev.Resource == events.ResourceExercises && !ev.Remote {
				return
			}
			if ev.Resource == events.ResourceExercises || ev.Resource == events.ResourceExerciseTypes {
				reloadInBackground(context.Background(), logger, ex.Load)
			}
		})
	}
	return ex
}

// Create validates and adds an exercise, then announces the catalog change.
func (e *Exercises) Create(ctx context.Context, in domain.ExerciseInput) (domain.Exercise, error) {
	created, err := e.Collection.Create(ctx, in, func(ctx context.Context) (domain.Exercise, error) {
		return e.api.CreateExercise(ctx, in)
	})
	if err != nil {
		return created, err
	}
	if e.bus != nil {
		e.bus.CatalogChanged.Publish(events.CatalogChanged{Resource: events.ResourceExercises, ID: created.ID})
	}
	return created, nil
}

// Update changes repetitions and sets once the backend accepts them.
func (e *Exercises) Update(ctx context.Context, id domain.ID, in domain.ExercisePatch) error {
	return e.Collection.Update(ctx, id.String(), in,
		func(ctx context.Context) error { return e.api.UpdateExercise(ctx, id, in) },
		func(ex domain.Exercise) domain.Exercise {
			ex.Repetitions = in.Repetitions
			ex.Sets = in.Sets
			return ex
		},
	)
}

// Remove deletes an exercise optimistically.
func (e *Exercises) Remove(ctx context.Context, id domain.ID) error {
	return e.Collection.Remove(ctx, id.String(), func(ctx context.Context) error {
		return e.api.DeleteExercise(ctx, id)
	})
}

// FilterByType returns the loaded exercises of one type, in list order. A
// zero typeID returns every exercise.
func (e *Exercises) FilterByType(typeID domain.ID) []domain.Exercise {
	items := e.Items()
	if typeID.IsZero() {
		return items
	}
	out := make([]domain.Exercise, 0, len(items))
	for _, ex := range items {
		if ex.ExerciseTypeID == typeID || (ex.ExerciseType != nil && ex.ExerciseType.ID == typeID) {
			out = append(out, ex)
		}
	}
	return out
}

// Dispose detaches from the bus and disposes the list.
func (e *Exercises) Dispose() {
	e.cancel()
	e.Collection.Dispose()
}
