package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/learntime/learntime/internal/model"
)

// Payload is a reminder notification as seen by delivery targets.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// Name is the feature tag carried by the notification, e.g.
	// "learning_reminder".
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Formatter formats payloads for a specific webhook type.
type Formatter interface {
	// Format converts a payload into the webhook-specific body.
	Format(p Payload) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the body.
	ContentType() string
}

// GetFormatter returns the appropriate formatter for a webhook type.
func GetFormatter(webhookType string) Formatter {
	switch webhookType {
	case model.WebhookTypeDiscord:
		return &DiscordFormatter{}
	case model.WebhookTypeSlack:
		return &SlackFormatter{}
	default:
		return &GenericFormatter{}
	}
}

// GenericFormatter posts the payload as plain JSON.
type GenericFormatter struct{}

// Format converts a payload to the generic webhook format.
func (f *GenericFormatter) Format(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}

// DiscordFormatter formats payloads as Discord embeds.
type DiscordFormatter struct{}

// discordColorReminder is the embed accent used for reminders.
const discordColorReminder = 0xFEE75C

// Format converts a payload to a Discord webhook body.
func (f *DiscordFormatter) Format(p Payload) ([]byte, error) {
	body := map[string]any{
		"embeds": []map[string]any{
			{
				"title":       p.Title,
				"description": p.Body,
				"color":       discordColorReminder,
				"timestamp":   p.Timestamp.UTC().Format(time.RFC3339),
			},
		},
	}
	return json.Marshal(body)
}

// ContentType returns the content type for Discord webhooks.
func (f *DiscordFormatter) ContentType() string {
	return "application/json"
}

// SlackFormatter formats payloads as Slack messages.
type SlackFormatter struct{}

// Format converts a payload to a Slack webhook body.
func (f *SlackFormatter) Format(p Payload) ([]byte, error) {
	body := map[string]any{
		"text": fmt.Sprintf("*%s*\n%s", p.Title, p.Body),
	}
	return json.Marshal(body)
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}
