package resources

import (
	"context"
	"sync"
	"time"

	"example.com/trainmate/internal/apiclient"
	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/events"
	"example.com/trainmate/internal/resourcesync"
)

// WorkoutAPI is the backend surface used by Workouts.
type WorkoutAPI interface {
	ListWorkouts(ctx context.Context, q apiclient.WorkoutQuery) ([]domain.Workout, error)
	ReportExercise(ctx context.Context, in domain.ReportInput) error
}

// WorkoutFilter scopes the workout list. A zero TraineeID lists every trainee
// the backend allows; a missing bound selects the default range.
type WorkoutFilter struct {
	TraineeID domain.ID
	Start     time.Time
	End       time.Time
}

// Workouts is a trainee's workout history within a date range.
type Workouts struct {
	*resourcesync.Collection[domain.Workout]
	api    WorkoutAPI
	bus    *events.Bus
	now    func() time.Time
	cancel func()

	mu     sync.RWMutex
	filter WorkoutFilter
}

// NewWorkouts constructs the workout binding. With a bus it reloads whenever
// a refresh concerns its trainee.
func NewWorkouts(api WorkoutAPI, filter WorkoutFilter, opts Options) *Workouts {
	w := &Workouts{
		api:    api,
		bus:    opts.Bus,
		now:    opts.clock(),
		cancel: func() {},
		filter: filter,
	}
	w.Collection = resourcesync.New(collectionConfig(opts, "workouts", "Workout", workoutKey, w.fetch))

	if opts.Bus != nil {
		logger := opts.logger()
		w.cancel = opts.Bus.WorkoutsRefreshed.Subscribe(func(ev events.WorkoutsRefreshed) {
			if w.concerns(ev.TraineeID) {
				reloadInBackground(context.Background(), logger, w.Load)
			}
		})
	}
	return w
}

// Filter returns the active filter.
func (w *Workouts) Filter() WorkoutFilter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter
}

// SetFilter replaces the filter and reloads.
func (w *Workouts) SetFilter(ctx context.Context, filter WorkoutFilter) error {
	w.mu.Lock()
	w.filter = filter
	w.mu.Unlock()
	return w.Load(ctx)
}

// Query resolves the filter into the backend query, applying the default range
// when either bound is missing.
func (w *Workouts) Query() apiclient.WorkoutQuery {
	filter := w.Filter()
	rng := domain.DateRange{Start: filter.Start, End: filter.End}
	if rng.Start.IsZero() || rng.End.IsZero() {
		rng = domain.DefaultRange(w.now())
	}
	return apiclient.WorkoutQuery{TraineeID: filter.TraineeID, Range: rng}
}

func (w *Workouts) fetch(ctx context.Context) ([]domain.Workout, error) {
	return w.api.ListWorkouts(ctx, w.Query())
}

func (w *Workouts) concerns(traineeID domain.ID) bool {
	own := w.Filter().TraineeID
	return own.IsZero() || traineeID.IsZero() || own == traineeID
}

// Report records an exercise occurrence for a trainee on a date and signals
// every interested list to refresh.
func (w *Workouts) Report(ctx context.Context, in domain.ReportInput) error {
	err := w.Submit(ctx, in, func(ctx context.Context) error {
		return w.api.ReportExercise(ctx, in)
	}, "Workout reported")
	if err != nil {
		return err
	}
	if w.bus != nil {
		w.bus.WorkoutsRefreshed.Publish(events.WorkoutsRefreshed{
			TraineeID:  in.TraineeID,
			ExerciseID: in.ExerciseID,
			Date:       in.Date,
		})
	}
	return nil
}

// Dispose detaches from the bus and disposes the list.
func (w *Workouts) Dispose() {
	w.cancel()
	w.Collection.Dispose()
}
