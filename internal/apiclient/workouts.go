package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"example.com/trainmate/internal/domain"
)

// WorkoutQuery filters the workout listing. Zero fields are omitted.
type WorkoutQuery struct {
	TraineeID domain.ID
	Range     domain.DateRange
}

func (q WorkoutQuery) values() url.Values {
	params := url.Values{}
	if !q.TraineeID.IsZero() {
		params.Set("traineeId", q.TraineeID.String())
	}
	if !q.Range.Start.IsZero() {
		params.Set("start", q.Range.Start.Format(domain.DateLayout))
	}
	if !q.Range.End.IsZero() {
		params.Set("end", q.Range.End.Format(domain.DateLayout))
	}
	return params
}

// ListWorkouts fetches workouts for a trainee within a date range.
func (c *Client) ListWorkouts(ctx context.Context, q WorkoutQuery) ([]domain.Workout, error) {
	var dtos []workoutDTO
	err := c.do(ctx, call{
		resource: "workouts", method: http.MethodGet,
		url: c.endpoints.Workouts + "/by-trainee?" + q.values().Encode(),
		out: &dtos, fallback: "Failed to fetch workouts",
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Workout, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ReportExercise records that a trainee performed an exercise on a date.
func (c *Client) ReportExercise(ctx context.Context, in domain.ReportInput) error {
	return c.do(ctx, call{
		resource: "workouts", method: http.MethodPost, url: c.endpoints.Workouts,
		body: reportWrite{
			WorkoutDate: in.Date.Format(domain.DateLayout),
			TraineeID:   in.TraineeID,
			ExerciseID:  in.ExerciseID,
		},
		fallback: "Failed to report exercise",
	})
}
