// Package session simulates a running clone: a fixed boot delay followed by
// a read-only summary of the profile's spoofed identity.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

const (
	// BootDuration is how long a session stays in the booting phase
	BootDuration = 2 * time.Second

	// EngineVersion is the version tag shown in the session header
	EngineVersion = "V 2.4.1"

	// AndroidIDPlaceholder is the truncated Android ID shown for every clone
	AndroidIDPlaceholder = "e3b0c44298fc1c14..."

	unknownIMEI     = "Generating..."
	unknownLocation = "Unknown"
)

// Phase is the session lifecycle stage
type Phase int

const (
	PhaseBooting Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	if p == PhaseRunning {
		return "running"
	}

	return "booting"
}

// BootStep is one line of the boot checklist
type BootStep struct {
	Label string
	Done  string
}

// BootSteps lists the checklist shown while booting.
func BootSteps() []BootStep {
	return []BootStep{
		{Label: "Spoofing IMEI...", Done: "Done"},
		{Label: "Mocking GPS...", Done: "Done"},
		{Label: "Hiding Root...", Done: "Done"},
	}
}

// Session is one simulated launch of a profile.
type Session struct {
	profile model.Profile
	started time.Time
	phase   Phase
}

// Start begins booting profile at now.
func Start(profile model.Profile, now time.Time) *Session {
	return &Session{profile: profile.Clone(), started: now, phase: PhaseBooting}
}

// Profile returns the profile being shown.
func (s *Session) Profile() model.Profile { return s.profile.Clone() }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Advance moves to Running once BootDuration has elapsed since Start.
func (s *Session) Advance(now time.Time) Phase {
	if s.phase == PhaseBooting && now.Sub(s.started) >= BootDuration {
		s.phase = PhaseRunning
	}

	return s.phase
}

// Finish ends the boot at once. The terminal UI calls it when its boot timer
// fires.
func (s *Session) Finish() {
	s.phase = PhaseRunning
}

// Remaining is the boot time left at now.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.phase == PhaseRunning {
		return 0
	}

	return max(BootDuration-now.Sub(s.started), 0)
}

// Summary is the read-only view of a running clone.
type Summary struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	AppName        string           `json:"appName"`
	ThemeColor     model.ThemeColor `json:"themeColor"`
	Initial        string           `json:"initial"`
	Version        string           `json:"version"`
	IMEI           string           `json:"imei"`
	Location       string           `json:"location"`
	Model          string           `json:"model"`
	Manufacturer   string           `json:"manufacturer"`
	AndroidVersion string           `json:"androidVersion"`
	DeviceStatus   string           `json:"deviceStatus"`
	RootAccess     string           `json:"rootAccess"`
	AndroidID      string           `json:"androidId"`
	RunningIn      string           `json:"runningIn"`
	Belief         string           `json:"belief"`
	Privacy        []string         `json:"privacy"`
}

// Summary describes the session's profile.
func (s *Session) Summary() Summary {
	return Summarize(s.profile)
}

// Summarize builds the running-view summary for a profile. Missing identity
// fields show placeholders.
func Summarize(p model.Profile) Summary {
	sum := Summary{
		ID:           p.ID,
		Name:         p.Name,
		AppName:      p.AppName,
		ThemeColor:   model.ParseTheme(string(p.ThemeColor)),
		Initial:      initial(p.AppName),
		Version:      EngineVersion,
		IMEI:         unknownIMEI,
		Location:     unknownLocation,
		DeviceStatus: "Clean",
		RootAccess:   "Hidden",
		AndroidID:    AndroidIDPlaceholder,
		Privacy:      []string{},
	}

	if id := p.DeviceIdentity; id != nil {
		if id.IMEI != "" {
			sum.IMEI = id.IMEI
		}

		if id.Location.City != "" {
			sum.Location = id.Location.City
		}

		sum.Model = id.Model
		sum.Manufacturer = id.Manufacturer
		sum.AndroidVersion = id.AndroidVersion
	}

	sum.RunningIn = strings.TrimSpace("Running in Virtual " + sum.Model)
	sum.Belief = fmt.Sprintf("This application believes it is running on a %s in %s.",
		strings.TrimSpace(sum.Manufacturer+" "+sum.Model), sum.Location)

	for _, f := range p.PrivacyConfig.Enabled() {
		sum.Privacy = append(sum.Privacy, f.Label())
	}

	return sum
}

func initial(appName string) string {
	for _, r := range strings.TrimSpace(appName) {
		return strings.ToUpper(string(r))
	}

	return "A"
}
