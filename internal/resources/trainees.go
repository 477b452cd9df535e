package resources

import (
	"context"
	"strings"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/resourcesync"
)

// TraineeAPI is the backend surface used by Trainees.
type TraineeAPI interface {
	ListTrainees(ctx context.Context) ([]domain.Trainee, error)
	CreateTrainee(ctx context.Context, in domain.TraineeInput) (domain.Trainee, error)
	UpdateTrainee(ctx context.Context, id domain.ID, in domain.TraineeInput) error
	DeleteTrainee(ctx context.Context, id domain.ID) error
}

// Trainees is the admin-managed trainee list.
type Trainees struct {
	*resourcesync.Collection[domain.Trainee]
	api TraineeAPI
}

// NewTrainees constructs the trainee binding.
func NewTrainees(api TraineeAPI, opts Options) *Trainees {
	return &Trainees{
		Collection: resourcesync.New(collectionConfig(opts, "trainees", "Trainee", traineeKey, api.ListTrainees)),
		api:        api,
	}
}

// Create validates and adds a trainee.
func (t *Trainees) Create(ctx context.Context, in domain.TraineeInput) (domain.Trainee, error) {
	in.Name = strings.TrimSpace(in.Name)
	return t.Collection.Create(ctx, in, func(ctx context.Context) (domain.Trainee, error) {
		return t.api.CreateTrainee(ctx, in)
	})
}

// Update replaces a trainee's name and password once the backend accepts it.
func (t *Trainees) Update(ctx context.Context, id domain.ID, in domain.TraineeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	return t.Collection.Update(ctx, id.String(), in,
		func(ctx context.Context) error { return t.api.UpdateTrainee(ctx, id, in) },
		func(tr domain.Trainee) domain.Trainee { tr.Name = in.Name; return tr },
	)
}

// Remove deletes a trainee optimistically.
func (t *Trainees) Remove(ctx context.Context, id domain.ID) error {
	return t.Collection.Remove(ctx, id.String(), func(ctx context.Context) error {
		return t.api.DeleteTrainee(ctx, id)
	})
}
