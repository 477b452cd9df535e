package apiclient

import (
	"context"
	"net/http"

	"example.com/trainmate/internal/domain"
)

// ListExercises fetches every exercise definition.
func (c *Client) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	var dtos []exerciseDTO
	err := c.do(ctx, call{
		resource: "exercises", method: http.MethodGet, url: c.endpoints.Exercises,
		out: &dtos, fallback: "Failed to fetch exercises",
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Exercise, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateExercise adds an exercise definition.
func (c *Client) CreateExercise(ctx context.Context, in domain.ExerciseInput) (domain.Exercise, error) {
	var dto exerciseDTO
	err := c.do(ctx, call{
		resource: "exercises", method: http.MethodPost, url: c.endpoints.Exercises,
		body: exerciseWrite{ExerciseTypeID: in.ExerciseTypeID, Repetitions: in.Repetitions, Sets: in.Sets},
		out:  &dto, fallback: "Failed to create exercise",
	})
	if err != nil {
		return domain.Exercise{}, err
	}
	if dto.ExerciseTypeID.IsZero() && dto.ExerciseType == nil {
		dto.ExerciseTypeID = in.ExerciseTypeID
	}
	return dto.toDomain(), nil
}

// UpdateExercise changes the repetitions and sets of exercise id.
func (c *Client) UpdateExercise(ctx context.Context, id domain.ID, in domain.ExercisePatch) error {
	return c.do(ctx, call{
		resource: "exercises", method: http.MethodPut, url: itemURL(c.endpoints.Exercises, id.String()),
		body:     exercisePatch{Repetitions: in.Repetitions, Sets: in.Sets},
		fallback: "Failed to update exercise",
	})
}

// DeleteExercise removes exercise id.
func (c *Client) DeleteExercise(ctx context.Context, id domain.ID) error {
	return c.do(ctx, call{
		resource: "exercises", method: http.MethodDelete, url: itemURL(c.endpoints.Exercises, id.String()),
		fallback: "Failed to delete exercise",
	})
}
