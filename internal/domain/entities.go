// Package domain defines the TrainMate entities and their local validation rules.
package domain

import "time"

// Trainee is an end-user whose workouts are tracked. The stored credential is
// never part of the read model.
type Trainee struct {
	ID   ID
	Name string
}

// ExerciseType is a named category of exercise, e.g. squat.
type ExerciseType struct {
	ID   ID
	Name string
}

// Exercise is a sets/reps prescription tied to an ExerciseType.
type Exercise struct {
	ID             ID
	ExerciseTypeID ID
	// ExerciseType is populated when the backend embeds the referenced type.
	ExerciseType *ExerciseType
	Repetitions  int
	Sets         int
}

// TypeName returns the embedded type name, falling back to the type id.
func (e Exercise) TypeName() string {
	if e.ExerciseType != nil && e.ExerciseType.Name != "" {
		return e.ExerciseType.Name
	}
	if !e.ExerciseTypeID.IsZero() {
		return e.ExerciseTypeID.String()
	}
	return "Exercise"
}

// Workout is a dated record associating a Trainee with exercise occurrences.
type Workout struct {
	ID        ID
	TraineeID ID
	Trainee   *Trainee
	Date      time.Time
	Exercises []Exercise
}

// TraineeName returns the embedded trainee name or a placeholder.
func (w Workout) TraineeName() string {
	if w.Trainee != nil && w.Trainee.Name != "" {
		return w.Trainee.Name
	}
	return "unknown"
}

// DateRange bounds a workout query; both ends are inclusive calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultRangeSpan is the distance either side of today used when a workout
// query has no explicit range.
const DefaultRangeSpan = 30 * 24 * time.Hour

// DefaultRange returns today ±30 days relative to now.
func DefaultRange(now time.Time) DateRange {
	return DateRange{
		Start: now.Add(-DefaultRangeSpan),
		End:   now.Add(DefaultRangeSpan),
	}
}

// DateLayout is the calendar-day format exchanged with the backend.
const DateLayout = "2006-01-02"
