package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExerciseInputRejectsNonPositiveCounts(t *testing.T) {
	cases := []ExerciseInput{
		{ExerciseTypeID: "1", Repetitions: 0, Sets: 3},
		{ExerciseTypeID: "1", Repetitions: 10, Sets: -1},
		{Repetitions: 10, Sets: 3},
	}
	for _, in := range cases {
		err := in.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input %+v", in)
	}

	require.NoError(t, ExerciseInput{ExerciseTypeID: "1", Repetitions: 12, Sets: 3}.Validate())
}

func TestTraineeInputRequiresEightCharacterPassword(t *testing.T) {
	err := TraineeInput{Name: "Dana", Password: "short"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "password", verr.Field)

	require.Error(t, TraineeInput{Name: "   ", Password: "longenough"}.Validate())
	require.NoError(t, TraineeInput{Name: "Dana", Password: "longenough"}.Validate())
}

func TestReportInputChecksEachField(t *testing.T) {
	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.Error(t, ReportInput{ExerciseID: "2", Date: day}.Validate())
	require.Error(t, ReportInput{TraineeID: "1", ExerciseID: "2"}.Validate())
	require.Error(t, ReportInput{TraineeID: "1", Date: day}.Validate())
	require.NoError(t, ReportInput{TraineeID: "1", ExerciseID: "2", Date: day}.Validate())
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount("sets", " 4 ")
	require.NoError(t, err)
	require.Equal(t, 4, n)

	for _, raw := range []string{"", "abc", "0", "-1", "2.5", "NaN", "Inf"} {
		_, err := ParseCount("sets", raw)
		require.Error(t, err, "raw %q", raw)
	}
}

func TestParseDateAcceptsDayAndTimestamp(t *testing.T) {
	d, err := ParseDate("2025-03-04")
	require.NoError(t, err)
	require.Equal(t, 4, d.Day())

	ts, err := ParseDate("2025-03-04T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 10, ts.Hour())

	_, err = ParseDate("04/03/2025")
	require.Error(t, err)
}

func TestIdentityInvariants(t *testing.T) {
	require.NoError(t, Identity{Role: RoleAdmin, DisplayName: "Admin"}.Validate())
	require.NoError(t, Identity{Role: RoleClient, SubjectID: "7", DisplayName: "Dana"}.Validate())

	err := Identity{Role: RoleClient, DisplayName: "Dana"}.Validate()
	require.True(t, errors.Is(err, ErrInvalidIdentity))
	require.Error(t, Identity{Role: "coach"}.Validate())

	normalized := Identity{Role: RoleAdmin, SubjectID: "9", DisplayName: " Admin "}.Normalized()
	require.True(t, normalized.SubjectID.IsZero())
	require.Equal(t, " Admin ", normalized.DisplayName)

	client := Identity{Role: RoleClient, SubjectID: "7", DisplayName: " Dana "}
	require.Equal(t, client, client.Normalized())
}
