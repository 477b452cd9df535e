package apiclient

import (
	"strings"

	"example.com/trainmate/internal/domain"
)

type traineeDTO struct {
	ID   domain.ID `json:"traineeId"`
	Name string    `json:"traineeName"`
}

func (d traineeDTO) toDomain() domain.Trainee {
	return domain.Trainee{ID: d.ID, Name: d.Name}
}

type traineeWrite struct {
	Name     string `json:"traineeName"`
	Password string `json:"password"`
}

type exerciseTypeDTO struct {
	ID   domain.ID `json:"exerciseTypeId"`
	Name string    `json:"exerciseTypeName"`
}

func (d exerciseTypeDTO) toDomain() domain.ExerciseType {
	return domain.ExerciseType{ID: d.ID, Name: d.Name}
}

type exerciseTypeWrite struct {
	Name string `json:"exerciseTypeName"`
}

type exerciseDTO struct {
	ID             domain.ID        `json:"exerciseId"`
	ExerciseTypeID domain.ID        `json:"exerciseTypeId"`
	ExerciseType   *exerciseTypeDTO `json:"exerciseType,omitempty"`
	Repetitions    int              `json:"repetitions"`
	Sets           int              `json:"sets"`
}

func (d exerciseDTO) toDomain() domain.Exercise {
	out := domain.Exercise{
		ID:             d.ID,
		ExerciseTypeID: d.ExerciseTypeID,
		Repetitions:    d.Repetitions,
		Sets:           d.Sets,
	}
	if d.ExerciseType != nil {
		t := d.ExerciseType.toDomain()
		out.ExerciseType = &t
		if out.ExerciseTypeID.IsZero() {
			out.ExerciseTypeID = t.ID
		}
	}
	return out
}

type exerciseWrite struct {
	ExerciseTypeID domain.ID `json:"exerciseTypeId"`
	Repetitions    int       `json:"repetitions"`
	Sets           int       `json:"sets"`
}

type exercisePatch struct {
	Repetitions int `json:"repetitions"`
	Sets        int `json:"sets"`
}

type workoutDTO struct {
	ID          domain.ID     `json:"workoutId"`
	TraineeID   domain.ID     `json:"traineeId"`
	Trainee     *traineeDTO   `json:"trainee,omitempty"`
	WorkoutDate string        `json:"workoutDate"`
	Date        string        `json:"date"`
	Exercises   []exerciseDTO `json:"exercises"`
}

func (d workoutDTO) toDomain() domain.Workout {
	out := domain.Workout{ID: d.ID, TraineeID: d.TraineeID}
	if d.Trainee != nil {
		t := d.Trainee.toDomain()
		out.Trainee = &t
		if out.TraineeID.IsZero() {
			out.TraineeID = t.ID
		}
	}

	raw := d.WorkoutDate
	if strings.TrimSpace(raw) == "" {
		raw = d.Date
	}
	// unparseable dates stay zero and render as unknown
	if parsed, err := domain.ParseDate(raw); err == nil {
		out.Date = parsed
	}

	out.Exercises = make([]domain.Exercise, 0, len(d.Exercises))
	for _, ex := range d.Exercises {
		out.Exercises = append(out.Exercises, ex.toDomain())
	}
	return out
}

type reportWrite struct {
	WorkoutDate string    `json:"workoutDate"`
	TraineeID   domain.ID `json:"traineeId"`
	ExerciseID  domain.ID `json:"exerciseId"`
}

type loginWrite struct {
	Role     domain.Role `json:"role"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
}
