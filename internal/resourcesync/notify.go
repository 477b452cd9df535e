package resourcesync

import (
	"errors"

	"github.com/sirupsen/logrus"

	"example.com/trainmate/internal/domain"
)

// Severity grades a Notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient, user-facing outcome of a collection operation.
type Notification struct {
	Severity   Severity
	Message    string
	Collection string
	Err        error
}

// Notifier receives notifications. Implementations must not block for long.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger logrus.FieldLogger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(n Notification) {
	entry := l.Logger.WithField("collection", n.Collection)
	if n.Err != nil {
		entry = entry.WithError(n.Err)
	}
	switch n.Severity {
	case SeverityError:
		entry.Error(n.Message)
	case SeverityWarning:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}

// MessageFor derives the user-facing text for err. Validation failures show
// their message only; everything else shows err.Error(), which for backend
// rejections already carries the status and response text.
func MessageFor(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
