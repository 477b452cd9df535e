package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/domain"
	"example.com/trainmate/internal/resourcesync"
)

var (
	// ErrNameTaken rejects a registration whose name is already in use.
	ErrNameTaken = errors.New("trainee name already taken, choose another")
	// ErrRoleMismatch rejects a sign-in the backend vouched for under another role.
	ErrRoleMismatch = errors.New("account does not have the requested role")
)

// AccountAPI is the backend surface used by Accounts.
type AccountAPI interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Identity, error)
	ListTrainees(ctx context.Context) ([]domain.Trainee, error)
	CreateTrainee(ctx context.Context, in domain.TraineeInput) (domain.Trainee, error)
}

// SessionStore receives the identity once sign-in succeeds.
type SessionStore interface {
	Login(ctx context.Context, identity domain.Identity) error
	Logout(ctx context.Context)
}

// Accounts handles sign-in, registration and sign-out.
type Accounts struct {
	api      AccountAPI
	session  SessionStore
	notifier resourcesync.Notifier
	logger   logrus.FieldLogger
}

// NewAccounts constructs Accounts.
func NewAccounts(api AccountAPI, session SessionStore, opts Options) *Accounts {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = resourcesync.NotifierFunc(func(resourcesync.Notification) {})
	}
	return &Accounts{
		api:      api,
		session:  session,
		notifier: notifier,
		logger:   opts.logger().WithField("component", "accounts"),
	}
}

// SignIn verifies credentials with the backend and installs the identity.
func (a *Accounts) SignIn(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	if err := creds.Validate(); err != nil {
		a.notify(resourcesync.SeverityWarning, err)
		return domain.Identity{}, err
	}

	identity, err := a.api.Authenticate(ctx, creds)
	if err != nil {
		a.notify(resourcesync.SeverityError, err)
		return domain.Identity{}, err
	}
	if identity.Role != creds.Role {
		a.notify(resourcesync.SeverityError, ErrRoleMismatch)
		return domain.Identity{}, ErrRoleMismatch
	}
	if err := a.session.Login(ctx, identity); err != nil {
		a.notify(resourcesync.SeverityError, err)
		return domain.Identity{}, err
	}

	a.logger.WithField("role", identity.Role).Info("signed in")
	a.notifier.Notify(resourcesync.Notification{
		Severity:   resourcesync.SeveritySuccess,
		Message:    "Welcome, " + identity.Normalized().DisplayName,
		Collection: "accounts",
	})
	return identity.Normalized(), nil
}

// Register creates a trainee account under a unique name and signs it in.
func (a *Accounts) Register(ctx context.Context, name, password string) (domain.Identity, error) {
	in := domain.TraineeInput{Name: strings.TrimSpace(name), Password: password}
	if err := in.Validate(); err != nil {
		a.notify(resourcesync.SeverityWarning, err)
		return domain.Identity{}, err
	}

	existing, err := a.api.ListTrainees(ctx)
	if err != nil {
		a.notify(resourcesync.SeverityError, err)
		return domain.Identity{}, err
	}
	for _, t := range existing {
		if strings.EqualFold(strings.TrimSpace(t.Name), in.Name) {
			a.notify(resourcesync.SeverityWarning, ErrNameTaken)
			return domain.Identity{}, ErrNameTaken
		}
	}

	if _, err := a.api.CreateTrainee(ctx, in); err != nil {
		a.notify(resourcesync.SeverityError, err)
		return domain.Identity{}, err
	}

	identity, err := a.SignIn(ctx, domain.Credentials{Role: domain.RoleClient, Name: in.Name, Password: in.Password})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("registered %q but sign-in failed: %w", in.Name, err)
	}
	return identity, nil
}

// SignOut clears the session.
func (a *Accounts) SignOut(ctx context.Context) {
	a.session.Logout(ctx)
	a.notifier.Notify(resourcesync.Notification{
		Severity:   resourcesync.SeverityInfo,
		Message:    "Signed out",
		Collection: "accounts",
	})
}

func (a *Accounts) notify(sev resourcesync.Severity, err error) {
	a.notifier.Notify(resourcesync.Notification{
		Severity:   sev,
		Message:    resourcesync.MessageFor(err, "Sign-in failed"),
		Collection: "accounts",
		Err:        err,
	})
}
