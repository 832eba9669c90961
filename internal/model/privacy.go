package model

import (
	"fmt"
	"strings"
)

// PrivacyConfig holds five independent toggles. They describe a clone and
// are not enforced anywhere.
type PrivacyConfig struct {
	RandomizeID   bool `json:"randomizeId"`
	SpoofLocation bool `json:"spoofLocation"`
	IncognitoMode bool `json:"incognitoMode"`
	BlockTrackers bool `json:"blockTrackers"`
	HideRoot      bool `json:"hideRoot"`
}

// PrivacyFlag names one field of PrivacyConfig
type PrivacyFlag string

const (
	FlagRandomizeID   PrivacyFlag = "randomizeId"
	FlagSpoofLocation PrivacyFlag = "spoofLocation"
	FlagIncognitoMode PrivacyFlag = "incognitoMode"
	FlagBlockTrackers PrivacyFlag = "blockTrackers"
	FlagHideRoot      PrivacyFlag = "hideRoot"
)

// PrivacyFlags lists every flag in display order.
func PrivacyFlags() []PrivacyFlag {
	return []PrivacyFlag{
		FlagRandomizeID,
		FlagSpoofLocation,
		FlagIncognitoMode,
		FlagBlockTrackers,
		FlagHideRoot,
	}
}

// Label returns the human readable name used by the UIs.
func (f PrivacyFlag) Label() string {
	switch f {
	case FlagRandomizeID:
		return "Randomize Device ID"
	case FlagSpoofLocation:
		return "Spoof GPS Location"
	case FlagIncognitoMode:
		return "Incognito Mode"
	case FlagBlockTrackers:
		return "Block Trackers"
	case FlagHideRoot:
		return "Hide Root / Magisk"
	}

	return string(f)
}

// ParsePrivacyFlag resolves a flag name. Matching ignores case, dashes and
// underscores, so "hide-root" and "HIDE_ROOT" both work.
func ParsePrivacyFlag(s string) (PrivacyFlag, error) {
	want := normalizeFlagName(s)

	for _, f := range PrivacyFlags() {
		if normalizeFlagName(string(f)) == want {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown privacy flag %q", s)
}

func normalizeFlagName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")

	return strings.ReplaceAll(s, "_", "")
}

// Get returns the value of one flag.
func (c PrivacyConfig) Get(f PrivacyFlag) bool {
	switch f {
	case FlagRandomizeID:
		return c.RandomizeID
	case FlagSpoofLocation:
		return c.SpoofLocation
	case FlagIncognitoMode:
		return c.IncognitoMode
	case FlagBlockTrackers:
		return c.BlockTrackers
	case FlagHideRoot:
		return c.HideRoot
	}

	return false
}

// Set returns a copy with one flag changed. Unknown flags leave c unchanged.
func (c PrivacyConfig) Set(f PrivacyFlag, on bool) PrivacyConfig {
	switch f {
	case FlagRandomizeID:
		c.RandomizeID = on
	case FlagSpoofLocation:
		c.SpoofLocation = on
	case FlagIncognitoMode:
		c.IncognitoMode = on
	case FlagBlockTrackers:
		c.BlockTrackers = on
	case FlagHideRoot:
		c.HideRoot = on
	}

	return c
}

// Enabled returns the flags that are on, in display order.
func (c PrivacyConfig) Enabled() []PrivacyFlag {
	var out []PrivacyFlag

	for _, f := range PrivacyFlags() {
		if c.Get(f) {
			out = append(out, f)
		}
	}

	return out
}

// AllPrivacy returns a config with every flag on.
func AllPrivacy() PrivacyConfig {
	return PrivacyConfig{
		RandomizeID:   true,
		SpoofLocation: true,
		IncognitoMode: true,
		BlockTrackers: true,
		HideRoot:      true,
	}
}
