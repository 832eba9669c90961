package model

import (
	"slices"
	"strings"
)

const (
	// DefaultIcon is the icon name stored on every wizard-created profile
	DefaultIcon = "Box"

	// DefaultTag is applied when a profile is created without tags
	DefaultTag = "Cloned"
)

// Profile represents one virtual app clone
type Profile struct {
	// ID is the unique identifier, generated at creation and never changed
	ID string `json:"id"`

	// Name is the display label shown on the dashboard
	Name string `json:"name"`

	// AppName is the source application (e.g., "WhatsApp")
	AppName string `json:"appName"`

	// Description is free text, usually supplied by a suggestion
	Description string `json:"description"`

	// ThemeColor is the display color from the fixed palette
	ThemeColor ThemeColor `json:"themeColor"`

	// Icon is a display icon name placeholder
	Icon string `json:"icon"`

	// CreatedAt is when the wizard submitted the profile
	CreatedAt Timestamp `json:"createdAt"`

	// Stats are usage counters, initialized at creation
	Stats Stats `json:"stats"`

	// Tags is an ordered set of labels
	Tags []string `json:"tags"`

	// PrivacyConfig holds the decorative privacy toggles
	PrivacyConfig PrivacyConfig `json:"privacyConfig"`

	// DeviceIdentity is the spoofed identity, present only if one was generated
	DeviceIdentity *DeviceIdentity `json:"deviceIdentity,omitempty"`
}

// Stats are per-profile usage counters
type Stats struct {
	ItemsCount   int       `json:"itemsCount"`
	LastAccessed Timestamp `json:"lastAccessed"`
}

// Location is a spoofed geographic position
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	City string  `json:"city"`
}

// DeviceIdentity is the fake device a clone pretends to run on
type DeviceIdentity struct {
	IMEI           string   `json:"imei"`
	Model          string   `json:"model"`
	Manufacturer   string   `json:"manufacturer"`
	AndroidVersion string   `json:"androidVersion"`
	Location       Location `json:"location"`
}

// ValidIMEI reports whether the identity carries a 15-digit numeric IMEI.
func (d *DeviceIdentity) ValidIMEI() bool {
	if d == nil || len(d.IMEI) != 15 {
		return false
	}

	for _, r := range d.IMEI {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// IsZero reports whether d is nil or carries no identity data.
func (d *DeviceIdentity) IsZero() bool {
	return d == nil || *d == DeviceIdentity{}
}

// Clone returns a copy that shares no memory with d.
func (d *DeviceIdentity) Clone() *DeviceIdentity {
	if d == nil {
		return nil
	}

	c := *d

	return &c
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.Tags = slices.Clone(p.Tags)
	p.DeviceIdentity = p.DeviceIdentity.Clone()

	return p
}

// HasTag reports whether the profile carries the given tag (case-insensitive).
func (p Profile) HasTag(tag string) bool {
	return slices.ContainsFunc(p.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// NormalizeTags trims tags, drops empty entries and duplicates (first wins,
// case-insensitive), and returns the result in the original order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, t)
	}

	return out
}
