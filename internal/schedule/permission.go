package schedule

import (
	"context"
	"fmt"

	"github.com/learntime/learntime/internal/notifier"
)

// PermissionState is the tri-state result of a permission query. It is
// derived from the notifier on demand, never stored.
type PermissionState int

// Permission states.
const (
	// PermissionUndetermined means the user has not decided, or holds only
	// a provisional grant. It is not a hard denial.
	PermissionUndetermined PermissionState = iota
	// PermissionDenied means the user declined notifications.
	PermissionDenied
	// PermissionGranted means notifications are fully authorized.
	PermissionGranted
)

// Granted reports whether notifications may be scheduled.
func (s PermissionState) Granted() bool {
	return s == PermissionGranted
}

// String returns a human-readable name for the state.
func (s PermissionState) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUndetermined:
		return "undetermined"
	}
	return "unknown"
}

// convertAuthorizationStatus maps the notifier's four-valued authorization
// status onto the domain's tri-state. The switch is exhaustive over the
// defined statuses; anything else is a bug in the capability, not a
// legitimate "undetermined".
func convertAuthorizationStatus(settings notifier.NotificationSettings) (PermissionState, error) {
	switch settings.AuthorizationStatus {
	case notifier.AuthorizationAuthorized:
		return PermissionGranted, nil
	case notifier.AuthorizationDenied:
		return PermissionDenied, nil
	case notifier.AuthorizationNotDetermined:
		return PermissionUndetermined, nil
	case notifier.AuthorizationProvisional:
		return PermissionUndetermined, nil
	}
	return PermissionUndetermined, fmt.Errorf("unhandled authorization status %d", settings.AuthorizationStatus)
}

// HasNotificationPermission reports the current permission state without
// prompting the user.
func HasNotificationPermission(ctx context.Context, n notifier.TriggerScheduler) (PermissionState, error) {
	settings, err := n.GetNotificationSettings(ctx)
	if err != nil {
		return PermissionUndetermined, err
	}
	return convertAuthorizationStatus(settings)
}

// RequestNotificationPermission asks for permission, prompting the user if
// they have not been asked before, and reports the resulting state.
func RequestNotificationPermission(ctx context.Context, n notifier.TriggerScheduler) (PermissionState, error) {
	settings, err := n.RequestPermission(ctx)
	if err != nil {
		return PermissionUndetermined, err
	}
	return convertAuthorizationStatus(settings)
}
