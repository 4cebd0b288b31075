package store

import (
	"encoding/json"
	"fmt"
)

// GetSettings returns the persisted settings record, or the defaults if
// none exists yet. Never fails outward: a read error degrades to defaults.
func (s *Store) GetSettings() Settings {
	data, err := s.readBlob(keySettings)
	if err != nil {
		s.log.Error("get settings", "err", err)
		return DefaultSettings()
	}
	if data == nil {
		return DefaultSettings()
	}
	cfg := DefaultSettings()
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.log.Error("decode settings", "err", err)
		return DefaultSettings()
	}
	return cfg
}

// UpdateSettings merges patch over the current (or default) settings,
// persists and returns the merged record.
func (s *Store) UpdateSettings(patch SettingsPatch) (Settings, error) {
	cfg := s.GetSettings()
	if patch.DailyReminderTime != nil {
		cfg.DailyReminderTime = *patch.DailyReminderTime
	}
	if patch.StrictStreakMode != nil {
		cfg.StrictStreakMode = *patch.StrictStreakMode
	}
	if patch.Theme != nil {
		cfg.Theme = *patch.Theme
	}
	if err := s.writeBlob(keySettings, cfg); err != nil {
		return Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return cfg, nil
}
