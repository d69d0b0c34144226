// Package notifier defines the trigger-notification capability the reminder
// core schedules against, plus a local badger-backed implementation that
// delivers through webhooks.
package notifier

import "context"

// AuthorizationStatus is the notifier-reported permission state for raising
// notifications.
type AuthorizationStatus int

// Authorization statuses.
const (
	// AuthorizationNotDetermined means the user has not been asked yet.
	AuthorizationNotDetermined AuthorizationStatus = iota
	// AuthorizationDenied means the user declined notifications.
	AuthorizationDenied
	// AuthorizationAuthorized means notifications are fully allowed.
	AuthorizationAuthorized
	// AuthorizationProvisional means only silent notifications are allowed.
	AuthorizationProvisional
)

// String returns a stable name for the status, used for persistence.
func (s AuthorizationStatus) String() string {
	switch s {
	case AuthorizationNotDetermined:
		return "not_determined"
	case AuthorizationDenied:
		return "denied"
	case AuthorizationAuthorized:
		return "authorized"
	case AuthorizationProvisional:
		return "provisional"
	}
	return "unknown"
}

// ParseAuthorizationStatus resolves a persisted status name.
func ParseAuthorizationStatus(name string) (AuthorizationStatus, bool) {
	switch name {
	case "not_determined":
		return AuthorizationNotDetermined, true
	case "denied":
		return AuthorizationDenied, true
	case "authorized":
		return AuthorizationAuthorized, true
	case "provisional":
		return AuthorizationProvisional, true
	}
	return 0, false
}

// NotificationSettings is the result of a permission query or request.
type NotificationSettings struct {
	AuthorizationStatus AuthorizationStatus `json:"authorizationStatus"`
}

// Channel describes a notification channel (create-or-get, idempotent).
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Notification is the payload of a trigger notification.
type Notification struct {
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
}

// Name returns the payload tag identifying the notification's feature, or
// an empty string when untagged.
func (n Notification) Name() string {
	return n.Data["name"]
}

// TriggerType discriminates trigger kinds. Only timestamp triggers exist
// today.
type TriggerType int

// TriggerTypeTimestamp fires at an absolute instant.
const TriggerTypeTimestamp TriggerType = iota

// RepeatFrequency is the cadence a trigger re-fires at after its first
// delivery.
type RepeatFrequency int

// Repeat frequencies.
const (
	RepeatNone RepeatFrequency = iota
	RepeatHourly
	RepeatDaily
	RepeatWeekly
)

// Trigger describes when a notification fires.
type Trigger struct {
	Type TriggerType `json:"type"`
	// Timestamp is the next fire instant in milliseconds since the epoch.
	Timestamp       int64           `json:"timestamp"`
	RepeatFrequency RepeatFrequency `json:"repeatFrequency"`
	// AllowWhileIdle lets the trigger fire even when the host is idle.
	AllowWhileIdle bool `json:"allowWhileIdle"`
}

// EventType classifies notification lifecycle events.
type EventType int

// Event types.
const (
	// EventDelivered fires when a notification is presented.
	EventDelivered EventType = iota
	// EventDismissed fires when the user dismisses a notification.
	EventDismissed
	// EventPressed fires when the user activates a notification.
	EventPressed
	// EventTriggerCreated fires when a trigger notification is registered.
	EventTriggerCreated
)

// Event is delivered to registered event handlers.
type Event struct {
	Type         EventType
	Notification Notification
}

// Handler receives notification lifecycle events. Registrations live for
// the rest of the process; there is no unsubscribe.
type Handler func(ctx context.Context, event Event) error

// TriggerScheduler is the notification capability the reminder core runs
// against. The local webhook-backed implementation lives in this package;
// tests substitute capturing fakes.
type TriggerScheduler interface {
	// GetNotificationSettings reports the current authorization status
	// without prompting.
	GetNotificationSettings(ctx context.Context) (NotificationSettings, error)

	// RequestPermission asks for notification permission, prompting the
	// user if they have not decided yet, and reports the resulting status.
	RequestPermission(ctx context.Context) (NotificationSettings, error)

	// CreateChannel creates the channel if it does not exist and returns
	// its id.
	CreateChannel(ctx context.Context, ch Channel) (string, error)

	// CreateTriggerNotification registers a notification to fire per the
	// trigger.
	CreateTriggerNotification(ctx context.Context, n Notification, t Trigger) error

	// TriggerNotificationIDs lists the ids of all pending trigger
	// notifications.
	TriggerNotificationIDs(ctx context.Context) ([]string, error)

	// CancelTriggerNotifications cancels the given pending notifications
	// as one batch.
	CancelTriggerNotifications(ctx context.Context, ids []string) error

	// OnForegroundEvent registers a handler for events raised while the
	// owning process is in the foreground.
	OnForegroundEvent(h Handler)

	// OnBackgroundEvent registers a handler for events raised from the
	// background delivery process.
	OnBackgroundEvent(h Handler)
}
