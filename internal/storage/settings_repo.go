package storage

import (
	"encoding/json"
	"fmt"

	"github.com/learntime/learntime/internal/model"
)

// SettingsRepo provides access to the persisted reminder preferences.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get reads the saved reminder settings. A missing key is not an error: it
// returns the defaults (reminders off, no days, noon). Read and parse
// failures propagate to the caller.
func (r *SettingsRepo) Get() (model.RemindersData, error) {
	raw, err := r.db.GetBytes(model.KeyRemindersSettings)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return model.DefaultRemindersData(), nil
		}
		return model.RemindersData{}, fmt.Errorf("reading reminder settings: %w", err)
	}

	var data model.RemindersData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.RemindersData{}, fmt.Errorf("parsing reminder settings: %w", err)
	}
	return data, nil
}

// Save overwrites the stored settings wholesale. There is no merging; the
// caller always supplies the complete record.
func (r *SettingsRepo) Save(data model.RemindersData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := r.db.SetBytes(model.KeyRemindersSettings, raw); err != nil {
		return fmt.Errorf("saving reminder settings: %w", err)
	}
	return nil
}
