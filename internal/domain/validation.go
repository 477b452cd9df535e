package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted on trainee create/update.
const MinPasswordLength = 8

// ValidationError reports input rejected locally, before any remote call.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap exposes the sentinel behind the failure, if any.
func (e *ValidationError) Unwrap() error { return e.cause }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TraineeInput is the payload for creating or replacing a trainee.
type TraineeInput struct {
	Name     string
	Password string
}

// Validate ensures request correctness.
func (in TraineeInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("traineeName", "trainee name is required")
	}
	if len(in.Password) < MinPasswordLength {
		return invalid("password", "password must be at least 8 characters")
	}
	return nil
}

// ExerciseTypeInput is the payload for creating or renaming an exercise type.
type ExerciseTypeInput struct {
	Name string
}

// Validate ensures request correctness.
func (in ExerciseTypeInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("exerciseTypeName", "exercise type name is required")
	}
	return nil
}

// ExerciseInput is the payload for creating an exercise definition.
type ExerciseInput struct {
	ExerciseTypeID ID
	Repetitions    int
	Sets           int
}

// Validate ensures request correctness.
func (in ExerciseInput) Validate() error {
	if in.ExerciseTypeID.IsZero() {
		return invalid("exerciseTypeId", "select an exercise type first")
	}
	return ExercisePatch{Repetitions: in.Repetitions, Sets: in.Sets}.Validate()
}

// ExercisePatch updates the prescription of an existing exercise.
type ExercisePatch struct {
	Repetitions int
	Sets        int
}

// Validate ensures request correctness.
func (p ExercisePatch) Validate() error {
	if p.Repetitions <= 0 {
		return invalid("repetitions", "repetitions must be greater than zero")
	}
	if p.Sets <= 0 {
		return invalid("sets", "sets must be greater than zero")
	}
	return nil
}

// ReportInput associates an existing exercise with a trainee on a date.
type ReportInput struct {
	TraineeID  ID
	ExerciseID ID
	Date       time.Time
}

// Validate ensures request correctness.
func (in ReportInput) Validate() error {
	if in.TraineeID.IsZero() {
		return invalid("traineeId", "select a trainee")
	}
	if in.Date.IsZero() {
		return invalid("workoutDate", "select a workout date")
	}
	if in.ExerciseID.IsZero() {
		return invalid("exerciseId", "select an existing exercise or add a new one")
	}
	return nil
}

// Credentials are submitted to the backend for verification; they are never
// compared locally.
type Credentials struct {
	Role     Role
	Name     string
	Password string
}

// Validate ensures request correctness.
func (c Credentials) Validate() error {
	if !c.Role.Valid() {
		return invalid("role", "role must be client or admin")
	}
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "user name is required")
	}
	if c.Password == "" {
		return invalid("password", "password is required")
	}
	return nil
}

// ParseCount parses a user-entered count, rejecting non-numeric, non-finite,
// fractional and non-positive values.
func ParseCount(field, raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(field, field+" must be a number")
	}
	if f <= 0 {
		return 0, invalid(field, field+" must be greater than zero")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, invalid(field, field+" must be a whole number")
	}
	return int(f), nil
}

// ParseDate parses a calendar day (yyyy-mm-dd) or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, invalid("date", "date must be yyyy-mm-dd")
	}
	return t, nil
}
