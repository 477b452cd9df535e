package apiclient

import (
	"context"
	"net/http"

	"example.com/trainmate/internal/domain"
)

// ListTrainees fetches every trainee.
func (c *Client) ListTrainees(ctx context.Context) ([]domain.Trainee, error) {
	var dtos []traineeDTO
	err := c.do(ctx, call{
		resource: "trainees", method: http.MethodGet, url: c.endpoints.Trainees,
		out: &dtos, fallback: "Failed to fetch trainees",
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Trainee, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateTrainee creates a trainee and returns the stored record.
func (c *Client) CreateTrainee(ctx context.Context, in domain.TraineeInput) (domain.Trainee, error) {
	var dto traineeDTO
	err := c.do(ctx, call{
		resource: "trainees", method: http.MethodPost, url: c.endpoints.Trainees,
		body: traineeWrite{Name: in.Name, Password: in.Password},
		out:  &dto, fallback: "Failed to create trainee",
	})
	if err != nil {
		return domain.Trainee{}, err
	}
	if dto.Name == "" {
		dto.Name = in.Name
	}
	return dto.toDomain(), nil
}

// UpdateTrainee replaces name and password of trainee id.
func (c *Client) UpdateTrainee(ctx context.Context, id domain.ID, in domain.TraineeInput) error {
	return c.do(ctx, call{
		resource: "trainees", method: http.MethodPut, url: itemURL(c.endpoints.Trainees, id.String()),
		body:     traineeWrite{Name: in.Name, Password: in.Password},
		fallback: "Failed to update trainee",
	})
}

// DeleteTrainee removes trainee id.
func (c *Client) DeleteTrainee(ctx context.Context, id domain.ID) error {
	return c.do(ctx, call{
		resource: "trainees", method: http.MethodDelete, url: itemURL(c.endpoints.Trainees, id.String()),
		fallback: "Failed to delete trainee",
	})
}
