package storage

import (
	"time"

	"github.com/learntime/learntime/internal/model"
)

// WebhookRepo provides operations for webhook delivery targets.
type WebhookRepo struct {
	db *DB
}

// NewWebhookRepo creates a new webhook repository.
func NewWebhookRepo(db *DB) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// Create stores a new webhook.
func (r *WebhookRepo) Create(w *model.Webhook) error {
	if w.Key == "" {
		w.Key = model.GenerateWebhookKey(w.Name)
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	return r.db.Set(w)
}

// Get retrieves a webhook by name.
func (r *WebhookRepo) Get(name string) (*model.Webhook, error) {
	w := &model.Webhook{}
	if err := r.db.Get(model.GenerateWebhookKey(name), w); err != nil {
		return nil, err
	}
	return w, nil
}

// List retrieves all webhooks.
func (r *WebhookRepo) List() ([]*model.Webhook, error) {
	return GetAllByPrefix(r.db, model.PrefixWebhook+":", func() *model.Webhook {
		return &model.Webhook{}
	})
}

// ListEnabled retrieves all enabled webhooks.
func (r *WebhookRepo) ListEnabled() ([]*model.Webhook, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var enabled []*model.Webhook
	for _, w := range all {
		if w.Enabled {
			enabled = append(enabled, w)
		}
	}
	return enabled, nil
}

// Delete removes a webhook by name.
func (r *WebhookRepo) Delete(name string) error {
	return r.db.Delete(model.GenerateWebhookKey(name))
}

// UpdateLastUsed records the outcome of the most recent delivery attempt.
func (r *WebhookRepo) UpdateLastUsed(name string, deliveryErr error) error {
	w, err := r.Get(name)
	if err != nil {
		return err
	}

	w.LastUsed = time.Now()
	if deliveryErr != nil {
		w.LastError = deliveryErr.Error()
	} else {
		w.LastError = ""
	}
	return r.db.Set(w)
}
