package storage

import (
	"fmt"
	"strconv"
	"time"
)

// PromptKey identifies a promotional prompt.
type PromptKey string

// PromptLearningReminders is the one-time prompt nudging users to set up
// learning reminders.
const PromptLearningReminders PromptKey = "LearningReminders"

// PromptStorageKey returns the database key recording when a prompt was
// last shown.
func PromptStorageKey(key PromptKey) string {
	return fmt.Sprintf("PromptLastShown_%s", key)
}

// PromptRepo records when promotional prompts were last shown.
type PromptRepo struct {
	db *DB
}

// NewPromptRepo creates a new prompt repository.
func NewPromptRepo(db *DB) *PromptRepo {
	return &PromptRepo{db: db}
}

// MarkAsShown records the prompt as shown now. The timestamp is stored as a
// decimal millisecond-epoch string.
func (r *PromptRepo) MarkAsShown(key PromptKey, now time.Time) error {
	value := strconv.FormatInt(now.UnixMilli(), 10)
	return r.db.SetBytes(PromptStorageKey(key), []byte(value))
}

// keyFirstLaunch records when the app was first run.
const keyFirstLaunch = "firstLaunchAt"

// FirstLaunch returns the instant the app was first run, recording now on
// the very first call.
func (r *PromptRepo) FirstLaunch(now time.Time) (time.Time, error) {
	raw, err := r.db.GetBytes(keyFirstLaunch)
	if err != nil {
		if IsErrKeyNotFound(err) {
			value := strconv.FormatInt(now.UnixMilli(), 10)
			if err := r.db.SetBytes(keyFirstLaunch, []byte(value)); err != nil {
				return time.Time{}, err
			}
			return time.UnixMilli(now.UnixMilli()), nil
		}
		return time.Time{}, err
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing first-launch timestamp: %w", err)
	}
	return time.UnixMilli(millis), nil
}

// HasBeenShown reports whether the prompt was ever shown, or, when since is
// non-zero, whether it was shown after that instant.
func (r *PromptRepo) HasBeenShown(key PromptKey, since time.Time) (bool, error) {
	raw, err := r.db.GetBytes(PromptStorageKey(key))
	if err != nil {
		if IsErrKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if since.IsZero() {
		return true, nil
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return false, fmt.Errorf("parsing prompt timestamp: %w", err)
	}
	return time.UnixMilli(millis).After(since), nil
}
