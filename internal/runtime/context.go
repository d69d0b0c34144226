// Package runtime provides the application runtime context for LearnTime.
package runtime

import (
	"os"

	"github.com/jmhodges/clock"

	"github.com/learntime/learntime/internal/analytics"
	"github.com/learntime/learntime/internal/config"
	"github.com/learntime/learntime/internal/notifier"
	"github.com/learntime/learntime/internal/notify"
	"github.com/learntime/learntime/internal/output"
	"github.com/learntime/learntime/internal/schedule"
	"github.com/learntime/learntime/internal/storage"
)

// Context holds the wired-up application services.
type Context struct {
	Config    *config.Config
	DB        *storage.DB
	Formatter *output.Formatter
	Clock     clock.Clock

	// Repositories
	SettingsRepo *storage.SettingsRepo
	PromptRepo   *storage.PromptRepo
	WebhookRepo  *storage.WebhookRepo

	// Services
	Notifier   *notifier.Local
	Dispatcher *notify.Dispatcher
	Analytics  *analytics.Client
	Reminders  *schedule.Service

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath: storage.DefaultPath(),
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("LEARNTIME_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	cfg := config.FromEnv()

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	settingsRepo := storage.NewSettingsRepo(db)
	promptRepo := storage.NewPromptRepo(db)
	webhookRepo := storage.NewWebhookRepo(db)

	clk := clock.New()

	// First run: start the reminders-prompt clock.
	if _, err := promptRepo.FirstLaunch(clk.Now()); err != nil {
		_ = db.Close()
		return nil, err
	}

	httpClient := notify.NewHTTPClient(cfg.HTTP)
	dispatcher := notify.NewDispatcher(webhookRepo, httpClient)
	analyticsClient := analytics.NewClient(cfg.Analytics, httpClient)

	localNotifier := notifier.NewLocal(db)
	reminders := schedule.NewService(settingsRepo, promptRepo, localNotifier, analyticsClient.TrackFunc(), clk)

	// The CLI is the foreground process: its notification events go through
	// the wired-up analytics client.
	analytics.TrackForegroundNotificationEvents(localNotifier, analyticsClient.TrackFunc())

	formatter := output.NewFormatter()
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Config:       cfg,
		DB:           db,
		Formatter:    formatter,
		Clock:        clk,
		SettingsRepo: settingsRepo,
		PromptRepo:   promptRepo,
		WebhookRepo:  webhookRepo,
		Notifier:     localNotifier,
		Dispatcher:   dispatcher,
		Analytics:    analyticsClient,
		Reminders:    reminders,
		Debug:        opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
