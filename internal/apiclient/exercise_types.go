package apiclient

import (
	"context"
	"net/http"

	"example.com/trainmate/internal/domain"
)

// ListExerciseTypes fetches the exercise type catalog.
func (c *Client) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	var dtos []exerciseTypeDTO
	err := c.do(ctx, call{
		resource: "exerciseTypes", method: http.MethodGet, url: c.endpoints.ExerciseTypes,
		out: &dtos, fallback: "Failed to fetch exercise types",
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ExerciseType, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateExerciseType adds a type to the catalog.
func (c *Client) CreateExerciseType(ctx context.Context, in domain.ExerciseTypeInput) (domain.ExerciseType, error) {
	var dto exerciseTypeDTO
	err := c.do(ctx, call{
		resource: "exerciseTypes", method: http.MethodPost, url: c.endpoints.ExerciseTypes,
		body: exerciseTypeWrite{Name: in.Name},
		out:  &dto, fallback: "Failed to create exercise type",
	})
	if err != nil {
		return domain.ExerciseType{}, err
	}
	if dto.Name == "" {
		dto.Name = in.Name
	}
	return dto.toDomain(), nil
}

// UpdateExerciseType renames type id.
func (c *Client) UpdateExerciseType(ctx context.Context, id domain.ID, in domain.ExerciseTypeInput) error {
	return c.do(ctx, call{
		resource: "exerciseTypes", method: http.MethodPut, url: itemURL(c.endpoints.ExerciseTypes, id.String()),
		body:     exerciseTypeWrite{Name: in.Name},
		fallback: "Failed to update exercise type",
	})
}

// DeleteExerciseType removes type id.
func (c *Client) DeleteExerciseType(ctx context.Context, id domain.ID) error {
	return c.do(ctx, call{
		resource: "exerciseTypes", method: http.MethodDelete, url: itemURL(c.endpoints.ExerciseTypes, id.String()),
		fallback: "Failed to delete exercise type",
	})
}
