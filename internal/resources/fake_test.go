package resources

import (
	"context"
	"strconv"
	"sync"

	"example.com/trainmate/internal/apiclient"
	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/resourcesync"
)

// fakeAPI is an in-memory backend covering every resource interface.
type fakeAPI struct {
	mu sync.Mutex

	trainees  []domain.Trainee
	passwords map[string]string
	types     []domain.ExerciseType
	exercises []domain.Exercise
	workouts  []domain.Workout
	reports   []domain.ReportInput
	queries   []apiclient.WorkoutQuery
	nextID    int

	failDelete error
	failCreate error
	failAuth   error
	calls      map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{passwords: map[string]string{}, calls: map[string]int{}, nextID: 100}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) hit(op string) {
	f.calls[op]++
}

func (f *fakeAPI) id() domain.ID {
	f.nextID++
	return domain.ID(strconv.Itoa(f.nextID))
}

func (f *fakeAPI) ListTrainees(context.Context) ([]domain.Trainee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("ListTrainees")
	return append([]domain.Trainee(nil), f.trainees...), nil
}

func (f *fakeAPI) CreateTrainee(_ context.Context, in domain.TraineeInput) (domain.Trainee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("CreateTrainee")
	if f.failCreate != nil {
		return domain.Trainee{}, f.failCreate
	}
	t := domain.Trainee{ID: f.id(), Name: in.Name}
	f.trainees = append(f.trainees, t)
	f.passwords[in.Name] = in.Password
	return t, nil
}

func (f *fakeAPI) UpdateTrainee(_ context.Context, id domain.ID, in domain.TraineeInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("UpdateTrainee")
	for i := range f.trainees {
		if f.trainees[i].ID == id {
			f.trainees[i].Name = in.Name
		}
	}
	return nil
}

func (f *fakeAPI) DeleteTrainee(_ context.Context, id domain.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("DeleteTrainee")
	return f.failDelete
}

func (f *fakeAPI) ListExerciseTypes(context.Context) ([]domain.ExerciseType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("ListExerciseTypes")
	return append([]domain.ExerciseType(nil), f.types...), nil
}

func (f *fakeAPI) CreateExerciseType(_ context.Context, in domain.ExerciseTypeInput) (domain.ExerciseType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("CreateExerciseType")
	t := domain.ExerciseType{ID: f.id(), Name: in.Name}
	f.types = append(f.types, t)
	return t, nil
}

func (f *fakeAPI) UpdateExerciseType(context.Context, domain.ID, domain.ExerciseTypeInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("UpdateExerciseType")
	return nil
}

func (f *fakeAPI) DeleteExerciseType(context.Context, domain.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("DeleteExerciseType")
	return f.failDelete
}

func (f *fakeAPI) ListExercises(context.Context) ([]domain.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("ListExercises")
	return append([]domain.Exercise(nil), f.exercises...), nil
}

func (f *fakeAPI) CreateExercise(_ context.Context, in domain.ExerciseInput) (domain.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("CreateExercise")
	ex := domain.Exercise{ID: f.id(), ExerciseTypeID: in.ExerciseTypeID, Repetitions: in.Repetitions, Sets: in.Sets}
	f.exercises = append(f.exercises, ex)
	return ex, nil
}

func (f *fakeAPI) UpdateExercise(context.Context, domain.ID, domain.ExercisePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("UpdateExercise")
	return nil
}

func (f *fakeAPI) DeleteExercise(context.Context, domain.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("DeleteExercise")
	return f.failDelete
}

func (f *fakeAPI) ListWorkouts(_ context.Context, q apiclient.WorkoutQuery) ([]domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("ListWorkouts")
	f.queries = append(f.queries, q)
	out := make([]domain.Workout, 0, len(f.workouts))
	for _, w := range f.workouts {
		if q.TraineeID.IsZero() || w.TraineeID == q.TraineeID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAPI) ReportExercise(_ context.Context, in domain.ReportInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("ReportExercise")
	f.reports = append(f.reports, in)
	f.workouts = append(f.workouts, domain.Workout{
		ID:        f.id(),
		TraineeID: in.TraineeID,
		Date:      in.Date,
		Exercises: []domain.Exercise{{ID: in.ExerciseID}},
	})
	return nil
}

func (f *fakeAPI) Authenticate(_ context.Context, creds domain.Credentials) (domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hit("Authenticate")
	if f.failAuth != nil {
		return domain.Identity{}, f.failAuth
	}
	if creds.Role == domain.RoleAdmin {
		return domain.Identity{Role: domain.RoleAdmin, DisplayName: creds.Name}, nil
	}
	for _, t := range f.trainees {
		if t.Name == creds.Name && f.passwords[t.Name] == creds.Password {
			return domain.Identity{Role: domain.RoleClient, SubjectID: t.ID, DisplayName: t.Name}, nil
		}
	}
	return domain.Identity{}, &apiclient.RequestError{Op: "Login failed", Status: 401, Body: "invalid credentials"}
}

type recorder struct {
	mu    sync.Mutex
	notes []resourcesync.Notification
}

func (r *recorder) Notify(n resourcesync.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) last() resourcesync.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return resourcesync.Notification{}
	}
	return r.notes[len(r.notes)-1]
}
