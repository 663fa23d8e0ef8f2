// ABOUTME: User-visible notification boundary used for all error and success messaging
// ABOUTME: Controllers never panic or propagate errors past a handler; they notify
package controller

import (
	"errors"
	"time"

	"github.com/vestryhq/vestry/api"
)

// Variant classifies a notification for display.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// Notification is one transient toast.
type Notification struct {
	Title    string
	Message  string
	Variant  Variant
	Duration time.Duration
}

// Notifier is the single sink for user-visible messaging.
type Notifier interface {
	Notify(Notification)
}

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(Notification)

func (f NotifyFunc) Notify(n Notification) { f(n) }

const defaultToastDuration = 4 * time.Second

// notifyError converts a call failure into a notification, preferring the
// server-provided message and naming missing credentials explicitly.
func notifyError(n Notifier, title string, err error) {
	if n == nil {
		return
	}
	msg := "Something went wrong. Please try again."
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrNoCredential):
		title = "Authentication error"
		msg = "You are not logged in. Run login and try again."
	case errors.As(err, &apiErr) && apiErr.Message != "":
		msg = apiErr.Message
	case err != nil:
		msg = err.Error()
	}
	n.Notify(Notification{Title: title, Message: msg, Variant: VariantError, Duration: defaultToastDuration})
}

func notifySuccess(n Notifier, title, msg string) {
	if n == nil {
		return
	}
	n.Notify(Notification{Title: title, Message: msg, Variant: VariantSuccess, Duration: defaultToastDuration})
}

func notifyWarning(n Notifier, title, msg string) {
	if n == nil {
		return
	}
	n.Notify(Notification{Title: title, Message: msg, Variant: VariantWarning, Duration: defaultToastDuration})
}
