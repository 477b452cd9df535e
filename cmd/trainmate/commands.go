package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"example.com/trainmate/internal/app"
	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/resources"
	"example.com/trainmate/internal/session"
)

var (
	errUsage    = errors.New("usage")
	errReported = errors.New("reported")
)

type command struct {
	name    string
	summary string
	usage   string
	// public commands skip the session gate.
	public bool
	// role is required when set; otherwise any signed-in identity passes.
	role domain.Role
	run  func(ctx context.Context, a *app.App, args []string, out io.Writer) error
}

var commands = map[string]command{}

func register(c command) { commands[c.name] = c }

func init() {
	register(command{name: "login", summary: "sign in as client or admin", usage: "-role client|admin -name NAME [-password PASS]", public: true, run: runLogin})
	register(command{name: "register", summary: "create a trainee account and sign in", usage: "-name NAME [-password PASS]", public: true, run: runRegister})
	register(command{name: "logout", summary: "forget the saved session", public: true, run: runLogout})
	register(command{name: "whoami", summary: "show the current identity", run: runWhoami})
	register(command{name: "trainees", summary: "manage trainees (admin)", usage: "list | add -name N -password P | update -id ID -name N -password P | delete -id ID", role: domain.RoleAdmin, run: runTrainees})
	register(command{name: "types", summary: "manage exercise types (admin)", usage: "list | add -name N | rename -id ID -name N | delete -id ID", role: domain.RoleAdmin, run: runTypes})
	register(command{name: "exercises", summary: "manage exercises (admin)", usage: "list [-type ID] | add -type ID -reps N -sets N | update -id ID -reps N -sets N | delete -id ID", role: domain.RoleAdmin, run: runExercises})
	register(command{name: "workouts", summary: "list or report workouts", usage: "list [-trainee ID] [-start DATE] [-end DATE] | report [-trainee ID] -exercise ID -date DATE", run: runWorkouts})
	register(command{name: "watch", summary: "follow a workout list and serve metrics", usage: "[-trainee ID] [-start DATE] [-end DATE]", run: runWatch})
}

// gate applies the session guard before a command runs.
func gate(a *app.App, cmd command) error {
	if cmd.public {
		return nil
	}
	switch a.Session.Authorize(cmd.role) {
	case session.RedirectToLogin:
		return errors.New("not signed in; run `trainmate login` first")
	case session.RedirectToHome:
		return fmt.Errorf("%s requires the %s role", cmd.name, cmd.role)
	default:
		return nil
	}
}

// reported marks an error that already reached the user as a notification.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errReported, err)
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func passwordOr(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("TRAINMATE_PASSWORD")
}

func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func runLogin(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("login")
	role := fs.String("role", string(domain.RoleClient), "client or admin")
	name := fs.String("name", "", "user name")
	password := fs.String("password", "", "password (or TRAINMATE_PASSWORD)")
	if err := parse(fs, args); err != nil {
		return err
	}

	identity, err := a.Accounts().SignIn(ctx, domain.Credentials{
		Role:     domain.Role(*role),
		Name:     *name,
		Password: passwordOr(*password),
	})
	if err != nil {
		return reported(err)
	}
	printIdentity(out, &identity)
	return nil
}

func runRegister(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := newFlags("register")
	name := fs.String("name", "", "trainee name")
	password := fs.String("password", "", "password, at least 8 characters (or TRAINMATE_PASSWORD)")
	if err := parse(fs, args); err != nil {
		return err
	}

	identity, err := a.Accounts().Register(ctx, *name, passwordOr(*password))
	if err != nil {
		return reported(err)
	}
	printIdentity(out, &identity)
	return nil
}

func runLogout(ctx context.Context, a *app.App, _ []string, _ io.Writer) error {
	a.Accounts().SignOut(ctx)
	return nil
}

func runWhoami(_ context.Context, a *app.App, _ []string, out io.Writer) error {
	printIdentity(out, a.Session.Current())
	return nil
}

func runTrainees(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	sub, rest := subcommand(args)
	list := a.Trainees()
	defer list.Dispose()

	fs := newFlags("trainees " + sub)
	id := fs.String("id", "", "trainee id")
	name := fs.String("name", "", "trainee name")
	password := fs.String("password", "", "password (or TRAINMATE_PASSWORD)")
	if err := parse(fs, rest); err != nil {
		return err
	}
	in := domain.TraineeInput{Name: *name, Password: passwordOr(*password)}

	switch sub {
	case "list":
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		printTrainees(out, list.Items())
	case "add":
		created, err := list.Create(ctx, in)
		if err != nil {
			return reported(err)
		}
		printTrainees(out, []domain.Trainee{created})
	case "update":
		if *id == "" {
			return errUsage
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Update(ctx, domain.ID(*id), in))
	case "delete":
		if *id == "" {
			return errUsage
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Remove(ctx, domain.ID(*id)))
	default:
		return errUsage
	}
	return nil
}

func runTypes(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	sub, rest := subcommand(args)
	list := a.ExerciseTypes()
	defer list.Dispose()

	fs := newFlags("types " + sub)
	id := fs.String("id", "", "exercise type id")
	name := fs.String("name", "", "exercise type name")
	if err := parse(fs, rest); err != nil {
		return err
	}
	in := domain.ExerciseTypeInput{Name: *name}

	switch sub {
	case "list":
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		printExerciseTypes(out, list.Items())
	case "add":
		created, err := list.Create(ctx, in)
		if err != nil {
			return reported(err)
		}
		printExerciseTypes(out, []domain.ExerciseType{created})
	case "rename":
		if *id == "" {
			return errUsage
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Update(ctx, domain.ID(*id), in))
	case "delete":
		if *id == "" {
			return errUsage
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Remove(ctx, domain.ID(*id)))
	default:
		return errUsage
	}
	return nil
}

func runExercises(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	sub, rest := subcommand(args)
	list := a.Exercises()
	defer list.Dispose()

	fs := newFlags("exercises " + sub)
	id := fs.String("id", "", "exercise id")
	typeID := fs.String("type", "", "exercise type id")
	reps := fs.String("reps", "", "repetitions")
	sets := fs.String("sets", "", "sets")
	if err := parse(fs, rest); err != nil {
		return err
	}

	counts := func() (domain.ExercisePatch, error) {
		r, err := domain.ParseCount("repetitions", *reps)
		if err != nil {
			return domain.ExercisePatch{}, err
		}
		s, err := domain.ParseCount("sets", *sets)
		if err != nil {
			return domain.ExercisePatch{}, err
		}
		return domain.ExercisePatch{Repetitions: r, Sets: s}, nil
	}

	switch sub {
	case "list":
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		printExercises(out, list.FilterByType(domain.ID(*typeID)))
	case "add":
		patch, err := counts()
		if err != nil {
			return reported(list.RejectInput(err))
		}
		created, err := list.Create(ctx, domain.ExerciseInput{
			ExerciseTypeID: domain.ID(*typeID),
			Repetitions:    patch.Repetitions,
			Sets:           patch.Sets,
		})
		if err != nil {
			return reported(err)
		}
		printExercises(out, []domain.Exercise{created})
	case "update":
		if *id == "" {
			return errUsage
		}
		patch, err := counts()
		if err != nil {
			return reported(list.RejectInput(err))
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Update(ctx, domain.ID(*id), patch))
	case "delete":
		if *id == "" {
			return errUsage
		}
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		return reported(list.Remove(ctx, domain.ID(*id)))
	default:
		return errUsage
	}
	return nil
}

// workoutFilterFlags registers the shared trainee/date flags.
func workoutFilterFlags(fs *flag.FlagSet) (trainee, start, end *string) {
	trainee = fs.String("trainee", "", "trainee id (admins only; clients always see their own)")
	start = fs.String("start", "", "first day, yyyy-mm-dd")
	end = fs.String("end", "", "last day, yyyy-mm-dd")
	return trainee, start, end
}

// resolveFilter pins clients to their own trainee id.
func resolveFilter(a *app.App, trainee, start, end string) (resources.WorkoutFilter, error) {
	var filter resources.WorkoutFilter
	identity := a.Session.Current()
	if identity != nil && !identity.IsAdmin() {
		filter.TraineeID = identity.SubjectID
	} else {
		filter.TraineeID = domain.ID(strings.TrimSpace(trainee))
	}

	var err error
	if filter.Start, err = domain.ParseDate(start); err != nil {
		return filter, err
	}
	if filter.End, err = domain.ParseDate(end); err != nil {
		return filter, err
	}
	return filter, nil
}

func runWorkouts(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	sub, rest := subcommand(args)

	fs := newFlags("workouts " + sub)
	trainee, start, end := workoutFilterFlags(fs)
	exercise := fs.String("exercise", "", "exercise id to report")
	date := fs.String("date", "", "workout day, yyyy-mm-dd")
	if err := parse(fs, rest); err != nil {
		return err
	}

	filter, err := resolveFilter(a, *trainee, *start, *end)
	if err != nil {
		return err
	}
	list := a.Workouts(filter)
	defer list.Dispose()

	switch sub {
	case "list":
		if err := list.Load(ctx); err != nil {
			return reported(err)
		}
		printWorkouts(out, list.Items())
	case "report":
		day, err := domain.ParseDate(*date)
		if err != nil {
			return err
		}
		return reported(list.Report(ctx, domain.ReportInput{
			TraineeID:  filter.TraineeID,
			ExerciseID: domain.ID(strings.TrimSpace(*exercise)),
			Date:       day,
		}))
	default:
		return errUsage
	}
	return nil
}
