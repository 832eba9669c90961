package model

import "fmt"

// GlobalSettings holds the default toggles shown in the settings screen.
// They are stored but not applied to new profiles.
type GlobalSettings struct {
	// AutoRandomize rotates the device ID on every launch
	AutoRandomize bool `json:"autoRandomize"`

	// AutoSpoof assigns a virtual location on every launch
	AutoSpoof bool `json:"autoSpoof"`

	// HideRootGlobally hides root from every clone
	HideRootGlobally bool `json:"hideRootGlobally"`

	// DarkMode switches the UI theme
	DarkMode bool `json:"darkMode"`
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		AutoRandomize:    true,
		AutoSpoof:        true,
		HideRootGlobally: true,
		DarkMode:         false,
	}
}

// SettingKeys lists the settings keys in display order.
func SettingKeys() []string {
	return []string{"autoRandomize", "autoSpoof", "hideRootGlobally", "darkMode"}
}

// SettingLabel returns the label shown for a settings key.
func SettingLabel(key string) string {
	switch key {
	case "autoRandomize":
		return "Auto-Randomize IMEI"
	case "autoSpoof":
		return "Auto-Spoof Location"
	case "hideRootGlobally":
		return "Hide Root Globally"
	case "darkMode":
		return "Dark Mode"
	}

	return key
}

// Get returns the value of a settings key.
func (s GlobalSettings) Get(key string) (bool, error) {
	switch key {
	case "autoRandomize":
		return s.AutoRandomize, nil
	case "autoSpoof":
		return s.AutoSpoof, nil
	case "hideRootGlobally":
		return s.HideRootGlobally, nil
	case "darkMode":
		return s.DarkMode, nil
	}

	return false, fmt.Errorf("unknown setting %q", key)
}

// With returns a copy with one key changed.
func (s GlobalSettings) With(key string, on bool) (GlobalSettings, error) {
	switch key {
	case "autoRandomize":
		s.AutoRandomize = on
	case "autoSpoof":
		s.AutoSpoof = on
	case "hideRootGlobally":
		s.HideRootGlobally = on
	case "darkMode":
		s.DarkMode = on
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}

	return s, nil
}
