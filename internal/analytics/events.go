package analytics

import (
	"context"

	"github.com/learntime/learntime/internal/notifier"
)

// App states reported on notification events.
const (
	appStateForeground = "foreground"
	appStateBackground = "background"
)

// TrackForegroundNotificationEvents subscribes to notification lifecycle
// events raised while the app is in the foreground and forwards them to the
// given track function. The subscription lives for the rest of the process.
func TrackForegroundNotificationEvents(n notifier.TriggerScheduler, track TrackFunc) {
	n.OnForegroundEvent(func(ctx context.Context, event notifier.Event) error {
		return trackNotificationEvent(ctx, track, appStateForeground, event)
	})
}

// TrackBackgroundNotificationEvents subscribes to notification lifecycle
// events raised from the background delivery process. No live analytics
// context exists there, so a standalone track function is built instead of
// injected.
func TrackBackgroundNotificationEvents(n notifier.TriggerScheduler) {
	n.OnBackgroundEvent(func(ctx context.Context, event notifier.Event) error {
		return trackNotificationEvent(ctx, Standalone(), appStateBackground, event)
	})
}

// trackNotificationEvent maps delivered, dismissed and pressed events to
// their analytics names. Every other event type is ignored.
func trackNotificationEvent(ctx context.Context, track TrackFunc, appState string, event notifier.Event) error {
	trackEvent := func(eventName string) error {
		return track(ctx, eventName, AreaReminders, Properties{
			"app_state":         appState,
			"notification_name": event.Notification.Name(),
		})
	}

	switch event.Type {
	case notifier.EventDelivered:
		return trackEvent("Deliver notification")
	case notifier.EventDismissed:
		return trackEvent("Dismiss notification")
	case notifier.EventPressed:
		return trackEvent("Press notification")
	}
	return nil
}
