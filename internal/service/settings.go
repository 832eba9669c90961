package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
)

// SettingsStore persists the global settings record.
type SettingsStore struct {
	mu       sync.RWMutex
	store    store.Store
	logger   *slog.Logger
	metrics  *monitor.Metrics
	settings model.GlobalSettings
}

func NewSettingsStore(st store.Store, opts ...Option) *SettingsStore {
	o := buildOptions(opts)

	return &SettingsStore{
		store:    st,
		logger:   o.logger,
		metrics:  o.metrics,
		settings: model.DefaultSettings(),
	}
}

// Load reads the settings slot. Keys missing from the stored record keep
// their defaults; an unreadable record yields the defaults.
func (ss *SettingsStore) Load() model.GlobalSettings {
	settings := model.DefaultSettings()

	data, err := ss.store.Get(store.SlotSettings)

	switch {
	case errors.Is(err, store.ErrSlotNotFound):
	case err != nil:
		ss.logger.Warn("failed to read settings", "slot", store.SlotSettings, "error", err)
		ss.metrics.PersistenceError(store.SlotSettings, "read")
	default:
		if perr := decodeSettings(data, &settings); perr != nil {
			ss.logger.Warn("discarding unreadable settings", "error", perr)
			ss.metrics.PersistenceError(store.SlotSettings, "parse")

			settings = model.DefaultSettings()
		}
	}

	ss.mu.Lock()
	ss.settings = settings
	ss.mu.Unlock()

	return settings
}

func decodeSettings(data []byte, into *model.GlobalSettings) error {
	if err := encoding.ParseJSONInto(data, into); err != nil {
		return &PersistenceParseError{Slot: store.SlotSettings, Err: err}
	}

	return nil
}

// Settings returns the current settings without touching the slot.
func (ss *SettingsStore) Settings() model.GlobalSettings {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.settings
}

// Save replaces the stored record.
func (ss *SettingsStore) Save(settings model.GlobalSettings) error {
	data, err := encoding.ToJSON(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.store.Put(store.SlotSettings, data); err != nil {
		ss.metrics.PersistenceError(store.SlotSettings, "write")
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ss.settings = settings

	return nil
}

// Set changes one key and saves.
func (ss *SettingsStore) Set(key string, on bool) (model.GlobalSettings, error) {
	next, err := ss.Settings().With(key, on)
	if err != nil {
		return ss.Settings(), err
	}

	if err := ss.Save(next); err != nil {
		return ss.Settings(), err
	}

	return next, nil
}
