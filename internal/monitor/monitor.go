// Package monitor collects Prometheus metrics and health information.
package monitor

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records
// nothing, so callers never need to check.
type Metrics struct {
	registry *prometheus.Registry

	ProfilesTotal     prometheus.Gauge
	ProfilesCreated   prometheus.Counter
	ProfilesDeleted   prometheus.Counter
	SuggestionsTotal  *prometheus.CounterVec
	SuggestionLatency *prometheus.HistogramVec
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	SessionsLaunched  prometheus.Counter
	PersistenceErrors *prometheus.CounterVec

	startTime time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot holds current values for the JSON status endpoint
type Snapshot struct {
	Profiles          int64   `json:"profiles"`
	ProfilesCreated   int64   `json:"profilesCreated"`
	ProfilesDeleted   int64   `json:"profilesDeleted"`
	Suggestions       int64   `json:"suggestions"`
	SuggestionErrors  int64   `json:"suggestionErrors"`
	Requests          int64   `json:"requests"`
	SessionsLaunched  int64   `json:"sessionsLaunched"`
	UptimeSeconds     float64 `json:"uptimeSeconds"`
	PersistenceErrors int64   `json:"persistenceErrors"`
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		ProfilesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vanaclone_profiles",
			Help: "Number of saved profiles",
		}),
		ProfilesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanaclone_profiles_created_total",
			Help: "Profiles created through the wizard",
		}),
		ProfilesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanaclone_profiles_deleted_total",
			Help: "Profiles deleted",
		}),
		SuggestionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanaclone_suggestions_total",
			Help: "Suggestion requests by source and outcome",
		}, []string{"source", "outcome"}),
		SuggestionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vanaclone_suggestion_duration_seconds",
			Help:    "Suggestion request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanaclone_http_requests_total",
			Help: "HTTP requests served by the local API",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vanaclone_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SessionsLaunched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanaclone_sessions_launched_total",
			Help: "Simulated sessions opened",
		}),
		PersistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanaclone_persistence_errors_total",
			Help: "Unreadable or unwritable slots",
		}, []string{"slot", "op"}),
	}

	reg.MustRegister(
		m.ProfilesTotal, m.ProfilesCreated, m.ProfilesDeleted,
		m.SuggestionsTotal, m.SuggestionLatency,
		m.RequestsTotal, m.RequestDuration,
		m.SessionsLaunched, m.PersistenceErrors,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

func (m *Metrics) SetProfiles(n int) {
	if m == nil {
		return
	}

	m.ProfilesTotal.Set(float64(n))

	m.mu.Lock()
	m.snapshot.Profiles = int64(n)
	m.mu.Unlock()
}

func (m *Metrics) ProfileCreated() {
	if m == nil {
		return
	}

	m.ProfilesCreated.Inc()

	m.mu.Lock()
	m.snapshot.ProfilesCreated++
	m.mu.Unlock()
}

func (m *Metrics) ProfileDeleted() {
	if m == nil {
		return
	}

	m.ProfilesDeleted.Inc()

	m.mu.Lock()
	m.snapshot.ProfilesDeleted++
	m.mu.Unlock()
}

// Suggestion records one suggestion call.
func (m *Metrics) Suggestion(source string, ok bool, d time.Duration) {
	if m == nil {
		return
	}

	outcome := "ok"
	if !ok {
		outcome = "error"
	}

	m.SuggestionsTotal.WithLabelValues(source, outcome).Inc()
	m.SuggestionLatency.WithLabelValues(source).Observe(d.Seconds())

	m.mu.Lock()
	m.snapshot.Suggestions++
	if !ok {
		m.snapshot.SuggestionErrors++
	}
	m.mu.Unlock()
}

// Request records one HTTP request.
func (m *Metrics) Request(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())

	m.mu.Lock()
	m.snapshot.Requests++
	m.mu.Unlock()
}

func (m *Metrics) SessionLaunched() {
	if m == nil {
		return
	}

	m.SessionsLaunched.Inc()

	m.mu.Lock()
	m.snapshot.SessionsLaunched++
	m.mu.Unlock()
}

// PersistenceError records a slot that could not be read or written.
func (m *Metrics) PersistenceError(slot, op string) {
	if m == nil {
		return
	}

	m.PersistenceErrors.WithLabelValues(slot, op).Inc()

	m.mu.Lock()
	m.snapshot.PersistenceErrors++
	m.mu.Unlock()
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()

	return s
}

// HealthCheck pings the slot store.
func HealthCheck(db store.Store) error {
	return db.Ping()
}
