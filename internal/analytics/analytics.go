// Package analytics emits product events to a configured HTTP sink.
package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/learntime/learntime/internal/config"
	"github.com/learntime/learntime/internal/logging"
	"github.com/learntime/learntime/internal/notify"
)

// Area groups related events, mirroring the product's feature areas.
type Area string

// Event areas.
const (
	AreaAccount   Area = "Account"
	AreaCourse    Area = "Course"
	AreaReminders Area = "Reminders"
)

// Properties are free-form event properties.
type Properties map[string]any

// TrackFunc records one named event. Implementations must be safe for
// concurrent use.
type TrackFunc func(ctx context.Context, eventName string, area Area, properties Properties) error

// Client posts events to an analytics endpoint. With no endpoint configured
// it degrades to a logged no-op, so callers never need to special-case a
// disabled sink.
type Client struct {
	endpoint string
	token    string
	http     *notify.HTTPClient
}

// NewClient creates an analytics client from configuration.
func NewClient(cfg config.AnalyticsConfig, httpClient *notify.HTTPClient) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		http:     httpClient,
	}
}

// Track records a single event. The area and any extra properties are
// flattened into the event body alongside the name and client timestamp.
func (c *Client) Track(ctx context.Context, eventName string, area Area, properties Properties) error {
	if c.endpoint == "" {
		logging.Debug("analytics disabled, dropping event", "event", eventName, "area", area)
		return nil
	}

	body := Properties{
		"event": eventName,
		"area":  area,
		"time":  time.Now().UnixMilli(),
	}
	if c.token != "" {
		body["token"] = c.token
	}
	for k, v := range properties {
		body[k] = v
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	result := c.http.Send(ctx, c.endpoint, "application/json", raw)
	return result.Error
}

// TrackFunc adapts the client to the TrackFunc signature.
func (c *Client) TrackFunc() TrackFunc {
	return c.Track
}

// standalone is the lazily-built client used by code that runs without a
// wired-up application context, such as the background event tracker.
var standalone = sync.OnceValue(func() *Client {
	cfg := config.FromEnv()
	return NewClient(cfg.Analytics, notify.NewHTTPClient(cfg.HTTP))
})

// Standalone returns a track function backed by a lazily-initialized client
// configured from the environment.
func Standalone() TrackFunc {
	return func(ctx context.Context, eventName string, area Area, properties Properties) error {
		return standalone().Track(ctx, eventName, area, properties)
	}
}
