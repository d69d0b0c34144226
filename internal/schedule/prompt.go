package schedule

import (
	"context"
	"time"

	"github.com/learntime/learntime/internal/analytics"
	"github.com/learntime/learntime/internal/storage"
)

// remindersPromptMinAge is how long after first launch the reminders prompt
// becomes eligible; brand-new users are left alone.
const remindersPromptMinAge = 10 * time.Minute

// ShouldShowRemindersPrompt reports whether the one-time "set up learning
// reminders" prompt should be offered: never shown before, reminders still
// off, and the first launch at least ten minutes ago.
func (s *Service) ShouldShowRemindersPrompt() (bool, error) {
	shown, err := s.prompts.HasBeenShown(storage.PromptLearningReminders, time.Time{})
	if err != nil {
		return false, err
	}
	if shown {
		return false, nil
	}

	settings, err := s.settings.Get()
	if err != nil {
		return false, err
	}
	if settings.UseReminders {
		return false, nil
	}

	firstLaunch, err := s.prompts.FirstLaunch(s.clk.Now())
	if err != nil {
		return false, err
	}
	if firstLaunch.After(s.clk.Now().Add(-remindersPromptMinAge)) {
		return false, nil
	}
	return true, nil
}

// MarkRemindersPromptShown records the prompt as shown and tracks the
// exposure.
func (s *Service) MarkRemindersPromptShown(ctx context.Context) error {
	if err := s.prompts.MarkAsShown(storage.PromptLearningReminders, s.clk.Now()); err != nil {
		return err
	}
	return s.track(ctx, "Show reminders prompt", analytics.AreaReminders, nil)
}
