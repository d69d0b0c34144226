package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/learntime/learntime/internal/logging"
	"github.com/learntime/learntime/internal/model"
	"github.com/learntime/learntime/internal/storage"
)

// keyAuthorization stores the user's notification-permission decision.
const keyAuthorization = "notifierAuthorization"

// triggerRecord is a pending trigger notification as persisted.
type triggerRecord struct {
	Key          string       `json:"key"`
	ID           string       `json:"id"`
	Notification Notification `json:"notification"`
	Trigger      Trigger      `json:"trigger"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SetKey sets the database key for this record.
func (r *triggerRecord) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this record.
func (r *triggerRecord) GetKey() string {
	return r.Key
}

func triggerKey(id string) string {
	return fmt.Sprintf("%s:%s", model.PrefixTrigger, id)
}

// channelRecord is a notification channel as persisted.
type channelRecord struct {
	Key     string  `json:"key"`
	Channel Channel `json:"channel"`
}

// SetKey sets the database key for this record.
func (r *channelRecord) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this record.
func (r *channelRecord) GetKey() string {
	return r.Key
}

func channelKey(id string) string {
	return fmt.Sprintf("%s:%s", model.PrefixChannel, id)
}

// Local is the badger-backed TriggerScheduler. Triggers and channels are
// persisted; delivery is driven by a Deliverer sweeping for due triggers.
type Local struct {
	db *storage.DB

	mu         sync.Mutex
	foreground []Handler
	background []Handler
}

// NewLocal creates a local notifier over the given database.
func NewLocal(db *storage.DB) *Local {
	return &Local{db: db}
}

var _ TriggerScheduler = (*Local)(nil)

// authorizationStatus reads the stored permission decision. An absent key
// means the user was never asked.
func (l *Local) authorizationStatus() (AuthorizationStatus, error) {
	raw, err := l.db.GetBytes(keyAuthorization)
	if err != nil {
		if storage.IsErrKeyNotFound(err) {
			return AuthorizationNotDetermined, nil
		}
		return AuthorizationNotDetermined, err
	}

	status, ok := ParseAuthorizationStatus(string(raw))
	if !ok {
		return AuthorizationNotDetermined, fmt.Errorf("corrupt authorization status %q", raw)
	}
	return status, nil
}

// SetAuthorizationStatus overwrites the stored permission decision. The CLI
// permission command uses it to mirror what a mobile OS settings screen
// would do.
func (l *Local) SetAuthorizationStatus(status AuthorizationStatus) error {
	return l.db.SetBytes(keyAuthorization, []byte(status.String()))
}

// GetNotificationSettings reports the current authorization status without
// prompting.
func (l *Local) GetNotificationSettings(ctx context.Context) (NotificationSettings, error) {
	status, err := l.authorizationStatus()
	if err != nil {
		return NotificationSettings{}, err
	}
	return NotificationSettings{AuthorizationStatus: status}, nil
}

// RequestPermission asks for notification permission. Running the command
// is itself the user's consent, so a first-time ask grants; an explicit
// denial is never overridden here.
func (l *Local) RequestPermission(ctx context.Context) (NotificationSettings, error) {
	status, err := l.authorizationStatus()
	if err != nil {
		return NotificationSettings{}, err
	}

	if status == AuthorizationNotDetermined {
		status = AuthorizationAuthorized
		if err := l.SetAuthorizationStatus(status); err != nil {
			return NotificationSettings{}, err
		}
	}
	return NotificationSettings{AuthorizationStatus: status}, nil
}

// CreateChannel creates the channel if it does not exist and returns its
// id.
func (l *Local) CreateChannel(ctx context.Context, ch Channel) (string, error) {
	exists, err := l.db.Exists(channelKey(ch.ID))
	if err != nil {
		return "", err
	}
	if exists {
		return ch.ID, nil
	}

	record := &channelRecord{Key: channelKey(ch.ID), Channel: ch}
	if err := l.db.Set(record); err != nil {
		return "", err
	}
	return ch.ID, nil
}

// CreateTriggerNotification persists a pending trigger and announces its
// creation to event subscribers.
func (l *Local) CreateTriggerNotification(ctx context.Context, n Notification, t Trigger) error {
	id := uuid.New().String()
	record := &triggerRecord{
		Key:          triggerKey(id),
		ID:           id,
		Notification: n,
		Trigger:      t,
		CreatedAt:    time.Now(),
	}
	if err := l.db.Set(record); err != nil {
		return err
	}

	l.emit(ctx, Event{Type: EventTriggerCreated, Notification: n})
	return nil
}

// TriggerNotificationIDs lists the ids of all pending trigger notifications.
func (l *Local) TriggerNotificationIDs(ctx context.Context) ([]string, error) {
	keys, err := l.db.ListByPrefix(model.PrefixTrigger + ":")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, key[len(model.PrefixTrigger)+1:])
	}
	return ids, nil
}

// CancelTriggerNotifications removes the given pending notifications in a
// single transaction.
func (l *Local) CancelTriggerNotifications(ctx context.Context, ids []string) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, triggerKey(id))
	}
	return l.db.DeleteBatch(keys)
}

// OnForegroundEvent registers a handler for events raised in-process.
func (l *Local) OnForegroundEvent(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.foreground = append(l.foreground, h)
}

// OnBackgroundEvent registers a handler for events raised by the delivery
// daemon.
func (l *Local) OnBackgroundEvent(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.background = append(l.background, h)
}

// emit delivers an event to every registered handler. Handler failures are
// logged, never propagated: event delivery must not take down the notifier.
func (l *Local) emit(ctx context.Context, event Event) {
	l.mu.Lock()
	handlers := make([]Handler, 0, len(l.foreground)+len(l.background))
	handlers = append(handlers, l.foreground...)
	handlers = append(handlers, l.background...)
	l.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			logging.Warn("notification event handler failed", "err", err)
		}
	}
}

// pendingTriggers returns all persisted trigger records.
func (l *Local) pendingTriggers() ([]*triggerRecord, error) {
	return storage.GetAllByPrefix(l.db, model.PrefixTrigger+":", func() *triggerRecord {
		return &triggerRecord{}
	})
}

// saveTrigger persists an updated trigger record.
func (l *Local) saveTrigger(r *triggerRecord) error {
	return l.db.Set(r)
}

// deleteTrigger removes a trigger record.
func (l *Local) deleteTrigger(r *triggerRecord) error {
	return l.db.Delete(r.Key)
}
