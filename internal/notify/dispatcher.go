package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/learntime/learntime/internal/storage"
)

// Dispatcher sends reminder payloads to all enabled webhooks.
type Dispatcher struct {
	webhookRepo *storage.WebhookRepo
	httpClient  *HTTPClient
}

// NewDispatcher creates a dispatcher over the given webhook repository and
// HTTP client.
func NewDispatcher(webhookRepo *storage.WebhookRepo, httpClient *HTTPClient) *Dispatcher {
	return &Dispatcher{
		webhookRepo: webhookRepo,
		httpClient:  httpClient,
	}
}

// DispatchResult contains the result of dispatching to a single webhook.
type DispatchResult struct {
	WebhookName string
	Success     bool
	StatusCode  int
	Duration    time.Duration
	Error       error
}

// Send delivers a payload to every enabled webhook concurrently.
func (d *Dispatcher) Send(ctx context.Context, p Payload) []DispatchResult {
	webhooks, err := d.webhookRepo.ListEnabled()
	if err != nil {
		return []DispatchResult{{
			WebhookName: "all",
			Error:       fmt.Errorf("failed to list webhooks: %w", err),
		}}
	}

	if len(webhooks) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	results := make([]DispatchResult, len(webhooks))

	for i, webhook := range webhooks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.sendToWebhook(ctx, p, webhook.Name, webhook.Type, webhook.URL)
		}()
	}

	wg.Wait()
	return results
}

// sendToWebhook delivers a payload to a single webhook and records the
// outcome on the webhook record.
func (d *Dispatcher) sendToWebhook(ctx context.Context, p Payload, name, webhookType, url string) DispatchResult {
	result := DispatchResult{WebhookName: name}

	formatter := GetFormatter(webhookType)

	body, err := formatter.Format(p)
	if err != nil {
		result.Error = fmt.Errorf("failed to format payload: %w", err)
		d.updateWebhookStatus(name, result.Error)
		return result
	}

	sendResult := d.httpClient.Send(ctx, url, formatter.ContentType(), body)

	result.StatusCode = sendResult.StatusCode
	result.Duration = sendResult.Duration
	result.Error = sendResult.Error
	result.Success = sendResult.Error == nil

	d.updateWebhookStatus(name, sendResult.Error)

	return result
}

// updateWebhookStatus records the last delivery outcome. Failures to update
// the record are not critical and are ignored.
func (d *Dispatcher) updateWebhookStatus(name string, err error) {
	_ = d.webhookRepo.UpdateLastUsed(name, err)
}
