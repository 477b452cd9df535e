package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"example.com/trainmate/internal/domain"
)

func table(out io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func printIdentity(out io.Writer, identity *domain.Identity) {
	if identity == nil {
		fmt.Fprintln(out, "not signed in")
		return
	}
	if identity.IsAdmin() {
		fmt.Fprintf(out, "%s (admin)\n", identity.DisplayName)
		return
	}
	fmt.Fprintf(out, "%s (client, trainee %s)\n", identity.DisplayName, identity.SubjectID)
}

func printTrainees(out io.Writer, items []domain.Trainee) {
	tw := table(out, "ID", "NAME")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Name)
	}
	_ = tw.Flush()
}

func printExerciseTypes(out io.Writer, items []domain.ExerciseType) {
	tw := table(out, "ID", "NAME")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Name)
	}
	_ = tw.Flush()
}

func printExercises(out io.Writer, items []domain.Exercise) {
	tw := table(out, "ID", "TYPE", "SETS", "REPS")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", e.ID, e.TypeName(), e.Sets, e.Repetitions)
	}
	_ = tw.Flush()
}

func printWorkouts(out io.Writer, items []domain.Workout) {
	if len(items) == 0 {
		fmt.Fprintln(out, "no workouts to show")
		return
	}
	tw := table(out, "WORKOUT", "DATE", "TRAINEE", "EXERCISES")
	for _, w := range items {
		date := "unknown"
		if !w.Date.IsZero() {
			date = w.Date.Format(domain.DateLayout)
		}
		names := make([]string, 0, len(w.Exercises))
		for _, ex := range w.Exercises {
			if ex.Sets > 0 || ex.Repetitions > 0 {
				names = append(names, fmt.Sprintf("%s %dx%d", ex.TypeName(), ex.Sets, ex.Repetitions))
			} else {
				names = append(names, ex.TypeName())
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s\n", w.ID, date, w.TraineeName(), w.TraineeID, strings.Join(names, ", "))
	}
	_ = tw.Flush()
}
