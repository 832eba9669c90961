package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
)

// Option configures a ProfileStore or SettingsStore.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *monitor.Metrics
}

// WithLogger sets the logger used for recovered persistence errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records profile lifecycle events.
func WithMetrics(m *monitor.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ProfileStore is the saved collection of profiles plus the dashboard's
// active selection.
type ProfileStore struct {
	mu       sync.RWMutex
	store    store.Store
	logger   *slog.Logger
	metrics  *monitor.Metrics
	profiles []model.Profile
	activeID string
}

// NewProfileStore wraps a slot store. Call Load to read the saved collection.
func NewProfileStore(st store.Store, opts ...Option) *ProfileStore {
	o := buildOptions(opts)

	return &ProfileStore{
		store:   st,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// OpenProfileStore creates a ProfileStore and loads it.
func OpenProfileStore(st store.Store, opts ...Option) *ProfileStore {
	ps := NewProfileStore(st, opts...)
	ps.Load()

	return ps
}

// Load reads the profiles slot. A missing slot yields an empty collection; an
// unreadable one is logged and also yields an empty collection. Later
// duplicates of an id are dropped and the cleaned collection is written back.
func (ps *ProfileStore) Load() []model.Profile {
	loaded, deduped := ps.read()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if deduped {
		if err := ps.persist(loaded); err != nil {
			ps.logger.Warn("failed to rewrite de-duplicated profiles", "error", err)
		}
	}

	ps.profiles = loaded
	if ps.activeID != "" && ps.indexOf(ps.activeID) < 0 {
		ps.activeID = ""
	}

	ps.metrics.SetProfiles(len(ps.profiles))

	return cloneProfiles(ps.profiles)
}

// read reports whether duplicate ids were dropped from the slot contents.
func (ps *ProfileStore) read() ([]model.Profile, bool) {
	data, err := ps.store.Get(store.SlotProfiles)
	if err != nil {
		if !errors.Is(err, store.ErrSlotNotFound) {
			ps.logger.Warn("failed to read profiles", "slot", store.SlotProfiles, "error", err)
			ps.metrics.PersistenceError(store.SlotProfiles, "read")
		}

		return []model.Profile{}, false
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []model.Profile{}, false
	}

	parsed, err := encoding.ParseJSON[[]model.Profile](data)
	if err != nil {
		perr := &PersistenceParseError{Slot: store.SlotProfiles, Err: err}
		ps.logger.Warn("discarding unreadable profiles", "error", perr)
		ps.metrics.PersistenceError(store.SlotProfiles, "parse")

		return []model.Profile{}, false
	}

	out := make([]model.Profile, 0, len(*parsed))
	seen := make(map[string]bool, len(*parsed))

	for _, p := range *parsed {
		if seen[p.ID] {
			ps.logger.Warn("dropping duplicate profile", "id", p.ID, "name", p.Name)
			continue
		}

		seen[p.ID] = true
		out = append(out, p)
	}

	return out, len(out) != len(*parsed)
}

// SaveAll replaces the saved collection, including with an empty one.
func (ps *ProfileStore) SaveAll(profiles []model.Profile) error {
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateProfile, p.ID)
		}

		seen[p.ID] = true
	}

	next := cloneProfiles(profiles)

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.persist(next); err != nil {
		return err
	}

	ps.profiles = next
	if ps.activeID != "" && ps.indexOf(ps.activeID) < 0 {
		ps.activeID = ""
	}

	return nil
}

// Profiles returns a copy of the collection in insertion order.
func (ps *ProfileStore) Profiles() []model.Profile {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return cloneProfiles(ps.profiles)
}

// Len returns the number of saved profiles.
func (ps *ProfileStore) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.profiles)
}

// Get returns the profile with id.
func (ps *ProfileStore) Get(id string) (model.Profile, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	i := ps.indexOf(id)
	if i < 0 {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	return ps.profiles[i].Clone(), nil
}

// Add appends a new profile and persists the collection.
func (ps *ProfileStore) Add(p model.Profile) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id is required")
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.indexOf(p.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateProfile, p.ID)
	}

	next := append(cloneProfiles(ps.profiles), p.Clone())
	if err := ps.persist(next); err != nil {
		return err
	}

	ps.profiles = next
	ps.metrics.ProfileCreated()

	ps.logger.Debug("profile added", "id", p.ID, "name", p.Name, "app", p.AppName)

	return nil
}

// Remove deletes the profile with id and persists. The active selection is
// cleared when it pointed at the removed profile.
func (ps *ProfileStore) Remove(id string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	i := ps.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	next := slices.Delete(cloneProfiles(ps.profiles), i, i+1)
	if err := ps.persist(next); err != nil {
		return err
	}

	ps.profiles = next
	if ps.activeID == id {
		ps.activeID = ""
	}

	ps.metrics.ProfileDeleted()

	ps.logger.Debug("profile removed", "id", id)

	return nil
}

// Rename changes the display name of a profile and persists.
func (ps *ProfileStore) Rename(id, name string) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, errors.New("name cannot be empty")
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	i := ps.indexOf(id)
	if i < 0 {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	next := cloneProfiles(ps.profiles)
	next[i].Name = name

	if err := ps.persist(next); err != nil {
		return model.Profile{}, err
	}

	ps.profiles = next

	return next[i].Clone(), nil
}

// Select marks a profile as the one being viewed.
func (ps *ProfileStore) Select(id string) (model.Profile, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	i := ps.indexOf(id)
	if i < 0 {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	ps.activeID = id

	return ps.profiles[i].Clone(), nil
}

// Active returns the selected profile, if any.
func (ps *ProfileStore) Active() (model.Profile, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	i := ps.indexOf(ps.activeID)
	if i < 0 {
		return model.Profile{}, false
	}

	return ps.profiles[i].Clone(), true
}

// ActiveID returns the selected id or "".
func (ps *ProfileStore) ActiveID() string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return ps.activeID
}

func (ps *ProfileStore) ClearActive() {
	ps.mu.Lock()
	ps.activeID = ""
	ps.mu.Unlock()
}

// persist must be called with mu held.
func (ps *ProfileStore) persist(profiles []model.Profile) error {
	data, err := encoding.ToJSON(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}

	if err := ps.store.Put(store.SlotProfiles, data); err != nil {
		ps.metrics.PersistenceError(store.SlotProfiles, "write")
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	ps.metrics.SetProfiles(len(profiles))

	return nil
}

func (ps *ProfileStore) indexOf(id string) int {
	if id == "" {
		return -1
	}

	return slices.IndexFunc(ps.profiles, func(p model.Profile) bool { return p.ID == id })
}

func cloneProfiles(in []model.Profile) []model.Profile {
	out := make([]model.Profile, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}

	return out
}
