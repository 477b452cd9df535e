package events

import (
	"time"

	"example.com/trainmate/internal/domain"
)

const (
	TopicWorkoutsRefreshed = "workouts.refreshed"
	TopicCatalogChanged    = "catalog.changed"
)

// Catalog resources named by CatalogChanged.
const (
	ResourceExerciseTypes = "exerciseTypes"
	ResourceExercises     = "exercises"
	ResourceTrainees      = "trainees"
)

// WorkoutsRefreshed signals that a trainee's workouts changed on the backend.
type WorkoutsRefreshed struct {
	TraineeID  domain.ID `json:"traineeId,omitempty"`
	ExerciseID domain.ID `json:"exerciseId,omitempty"`
	Date       time.Time `json:"date,omitzero"`
	// Remote is set on events that arrived over the bridge.
	Remote bool `json:"-"`
}

// CatalogChanged signals that a catalog collection gained or changed an entry.
type CatalogChanged struct {
	Resource string    `json:"resource"`
	ID       domain.ID `json:"id,omitempty"`
	Remote   bool      `json:"-"`
}
