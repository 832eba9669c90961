// Package wizard implements the clone creation flow as a state machine with
// no UI attached. The terminal UI, the CLI and the web API all drive the same
// Controller. The stages run Scanning, Listing, Configuring and end in
// Submitted or Cancelled; Back returns from Configuring to Listing.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

const (
	// ScanTarget is the number of "installed packages" the scan reports
	ScanTarget = 142

	// TickInterval is the pause between scan ticks
	TickInterval = 50 * time.Millisecond

	// MaxScanStep bounds the random increment of one tick (exclusive)
	MaxScanStep = 10
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current state
	ErrInvalidTransition = errors.New("invalid wizard transition")

	// ErrSubmitDisabled is returned by Submit while the app name is blank or
	// a suggestion is pending
	ErrSubmitDisabled = errors.New("submission is disabled")
)

// State is a wizard stage
type State int

const (
	StateScanning State = iota
	StateListing
	StateConfiguring
	StateSubmitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateListing:
		return "listing"
	case StateConfiguring:
		return "configuring"
	case StateSubmitted:
		return "submitted"
	case StateCancelled:
		return "cancelled"
	}

	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateCancelled
}

// Draft is the in-progress profile edited in Configuring.
type Draft struct {
	AppName        string
	CustomName     string
	Description    string
	ThemeColor     model.ThemeColor
	Tags           []string
	PrivacyConfig  model.PrivacyConfig
	SecurityNote   string
	DeviceIdentity *model.DeviceIdentity

	// Manual is set when the user chose to type the app name
	Manual bool
}

func emptyDraft() Draft {
	return Draft{ThemeColor: model.DefaultTheme}
}

func (d Draft) clone() Draft {
	d.Tags = append([]string(nil), d.Tags...)
	d.DeviceIdentity = d.DeviceIdentity.Clone()

	return d
}

// DefaultName is the clone name proposed for appName.
func DefaultName(appName string) string {
	return fmt.Sprintf("%s (Clone)", strings.TrimSpace(appName))
}

// Request identifies one suggestion call. Results carrying an older Seq than
// the latest request are ignored.
type Request struct {
	Seq     uint64
	AppName string
}

// Run performs the request against p.
func (r *Request) Run(ctx context.Context, p suggest.Provider) suggest.Result {
	return p.Suggest(ctx, r.AppName)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed suggestions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand sets the random source used by TickRandom.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithIDFunc replaces the profile id generator.
func WithIDFunc(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Controller is one run of the wizard. It is not safe for concurrent use;
// UIs feed it from a single event loop.
type Controller struct {
	state   State
	scanned int
	draft   Draft
	pending bool
	seq     uint64
	lastErr *suggest.SuggestionError
	profile *model.Profile

	rng    *rand.Rand
	logger *slog.Logger
	newID  func() string
}

// New starts a wizard in Scanning with the counter at zero.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:  StateScanning,
		draft:  emptyDraft(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.Default(),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) State() State { return c.state }

// Scanned returns the scan counter.
func (c *Controller) Scanned() int { return c.scanned }

// Progress returns the scan progress in [0,1].
func (c *Controller) Progress() float64 {
	return float64(c.scanned) / float64(ScanTarget)
}

// Tick advances the scan counter by step. Reaching the target clamps the
// counter and moves to Listing; the return value reports that transition.
// Ticks outside Scanning are ignored.
func (c *Controller) Tick(step int) bool {
	if c.state != StateScanning {
		return false
	}

	c.scanned += max(step, 0)
	if c.scanned < ScanTarget {
		return false
	}

	c.scanned = ScanTarget
	c.state = StateListing

	return true
}

// TickRandom advances the scan by a random step in [0, MaxScanStep).
func (c *Controller) TickRandom() bool {
	return c.Tick(c.rng.IntN(MaxScanStep))
}

// SkipScan completes the scan at once.
func (c *Controller) SkipScan() bool {
	return c.Tick(ScanTarget)
}

// Catalog returns the selectable applications.
func (c *Controller) Catalog() []model.CatalogApp { return Catalog() }

// Search filters the selectable applications.
func (c *Controller) Search(query string) []model.CatalogApp { return Search(query) }

// Select picks appName from the list, enters Configuring and returns the
// suggestion request the caller must run and later pass to Resolve.
func (c *Controller) Select(appName string) (*Request, error) {
	if c.state != StateListing {
		return nil, c.invalid("select")
	}

	appName = strings.TrimSpace(appName)
	if appName == "" {
		return nil, fmt.Errorf("%w: app name is required", ErrInvalidTransition)
	}

	c.draft = emptyDraft()
	c.draft.AppName = appName
	c.draft.CustomName = DefaultName(appName)
	c.lastErr = nil
	c.state = StateConfiguring

	return c.newRequest(), nil
}

// SelectManual enters Configuring with no app name and no suggestion.
func (c *Controller) SelectManual() error {
	if c.state != StateListing {
		return c.invalid("select manually")
	}

	c.draft = emptyDraft()
	c.draft.Manual = true
	c.lastErr = nil
	c.state = StateConfiguring

	return nil
}

// SetAppName backfills the app name on the manual path.
func (c *Controller) SetAppName(name string) error {
	if c.state != StateConfiguring || !c.draft.Manual {
		return c.invalid("set app name")
	}

	c.draft.AppName = strings.TrimSpace(name)

	return nil
}

// RequestSuggestion asks for a suggestion for the current app name, for
// example after it was typed on the manual path. Any earlier request is
// superseded.
func (c *Controller) RequestSuggestion() (*Request, error) {
	if c.state != StateConfiguring {
		return nil, c.invalid("request suggestion")
	}

	if strings.TrimSpace(c.draft.AppName) == "" {
		return nil, fmt.Errorf("%w: app name is required", ErrInvalidTransition)
	}

	return c.newRequest(), nil
}

func (c *Controller) newRequest() *Request {
	c.seq++
	c.pending = true

	return &Request{Seq: c.seq, AppName: c.draft.AppName}
}

// Resolve applies the outcome of req. It reports whether the result was
// used; results for superseded requests or arriving after the wizard left
// Configuring are dropped.
func (c *Controller) Resolve(req *Request, res suggest.Result) bool {
	if req == nil || c.state != StateConfiguring || !c.pending || req.Seq != c.seq {
		return false
	}

	c.pending = false

	s, ok := res.Suggestion()
	if !ok {
		c.lastErr = res.Err()
		c.logger.Warn("suggestion unavailable, keeping defaults", "app", req.AppName, "error", c.lastErr)

		return true
	}

	s = suggest.Normalize(s)
	previousDefault := DefaultName(c.draft.AppName)

	c.lastErr = nil
	c.draft.Description = s.Description
	c.draft.ThemeColor = model.ParseTheme(s.ThemeColor)
	c.draft.Tags = s.Tags
	c.draft.PrivacyConfig = s.PrivacyConfig
	c.draft.SecurityNote = s.SecurityNote
	c.draft.DeviceIdentity = nil
	if identity := s.DeviceIdentity; !identity.IsZero() {
		c.draft.DeviceIdentity = &identity
	}

	if strings.TrimSpace(c.draft.CustomName) == "" || c.draft.CustomName == previousDefault {
		c.draft.CustomName = DefaultName(req.AppName)
	}

	return true
}

// SkipSuggestion drops the outstanding request and keeps the defaults.
func (c *Controller) SkipSuggestion() {
	if !c.pending {
		return
	}

	c.pending = false
	c.seq++
}

// SetCustomName edits the clone name.
func (c *Controller) SetCustomName(name string) error {
	if c.state != StateConfiguring {
		return c.invalid("set name")
	}

	c.draft.CustomName = name

	return nil
}

// SetPrivacy sets one privacy flag.
func (c *Controller) SetPrivacy(flag model.PrivacyFlag, on bool) error {
	if c.state != StateConfiguring {
		return c.invalid("set privacy")
	}

	c.draft.PrivacyConfig = c.draft.PrivacyConfig.Set(flag, on)

	return nil
}

// TogglePrivacy flips one privacy flag.
func (c *Controller) TogglePrivacy(flag model.PrivacyFlag) error {
	return c.SetPrivacy(flag, !c.draft.PrivacyConfig.Get(flag))
}

// Back returns to the app list, dropping the draft and any suggestion.
func (c *Controller) Back() error {
	if c.state != StateConfiguring {
		return c.invalid("back")
	}

	c.reset()
	c.state = StateListing

	return nil
}

// Cancel abandons the wizard. Nothing is persisted.
func (c *Controller) Cancel() error {
	if c.state.Terminal() {
		return c.invalid("cancel")
	}

	c.reset()
	c.state = StateCancelled

	return nil
}

func (c *Controller) reset() {
	c.draft = emptyDraft()
	c.pending = false
	c.lastErr = nil
	// Bumping the sequence orphans any request still in flight.
	c.seq++
}

// Pending reports whether a suggestion call is outstanding.
func (c *Controller) Pending() bool { return c.pending }

// LastError returns the failure of the most recent suggestion, if any.
func (c *Controller) LastError() *suggest.SuggestionError { return c.lastErr }

// Draft returns a copy of the draft.
func (c *Controller) Draft() Draft { return c.draft.clone() }

// CanSubmit reports whether Submit would succeed.
func (c *Controller) CanSubmit() bool {
	return c.state == StateConfiguring && !c.pending && strings.TrimSpace(c.draft.AppName) != ""
}

// Submit assembles the new profile and enters Submitted. Persisting it is
// the caller's job.
func (c *Controller) Submit(now time.Time) (model.Profile, error) {
	if c.state != StateConfiguring {
		return model.Profile{}, c.invalid("submit")
	}

	if !c.CanSubmit() {
		return model.Profile{}, ErrSubmitDisabled
	}

	d := c.draft.clone()
	appName := strings.TrimSpace(d.AppName)

	name := strings.TrimSpace(d.CustomName)
	if name == "" {
		name = appName
	}

	tags := model.NormalizeTags(d.Tags)
	if len(tags) == 0 {
		tags = []string{model.DefaultTag}
	}

	ts := model.NewTimestamp(now)

	p := model.Profile{
		ID:             c.newID(),
		Name:           name,
		AppName:        appName,
		Description:    d.Description,
		ThemeColor:     d.ThemeColor,
		Icon:           model.DefaultIcon,
		CreatedAt:      ts,
		Stats:          model.Stats{ItemsCount: 0, LastAccessed: ts},
		Tags:           tags,
		PrivacyConfig:  d.PrivacyConfig,
		DeviceIdentity: d.DeviceIdentity,
	}

	c.profile = &p
	c.state = StateSubmitted

	return p.Clone(), nil
}

// Profile returns the submitted profile.
func (c *Controller) Profile() (model.Profile, bool) {
	if c.profile == nil {
		return model.Profile{}, false
	}

	return c.profile.Clone(), true
}

func (c *Controller) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, c.state)
}
