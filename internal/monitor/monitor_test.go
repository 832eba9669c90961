package monitor

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	m.SetProfiles(3)
	m.ProfileCreated()
	m.ProfileDeleted()
	m.Suggestion("fallback", true, time.Millisecond)
	m.Request("GET", "/health", 200, time.Millisecond)
	m.SessionLaunched()
	m.PersistenceError("slot", "read")

	assert.Equal(t, Snapshot{}, m.Snapshot())
	assert.Nil(t, m.Registry())
}

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()

	m.SetProfiles(2)
	m.ProfileCreated()
	m.Suggestion("gemini", false, 10*time.Millisecond)
	m.Suggestion("gemini", true, 10*time.Millisecond)
	m.SessionLaunched()

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Profiles)
	assert.Equal(t, int64(1), s.ProfilesCreated)
	assert.Equal(t, int64(2), s.Suggestions)
	assert.Equal(t, int64(1), s.SuggestionErrors)
	assert.Equal(t, int64(1), s.SessionsLaunched)
	assert.GreaterOrEqual(t, s.UptimeSeconds, 0.0)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ProfileCreated()

	assert.Equal(t, int64(1), a.Snapshot().ProfilesCreated)
	assert.Zero(t, b.Snapshot().ProfilesCreated)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Request("GET", "/api/profiles", 200, 5*time.Millisecond)
	m.SetProfiles(4)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vanaclone_profiles 4")
	assert.Contains(t, string(body), `vanaclone_http_requests_total{method="GET",path="/api/profiles",status="200"} 1`)
}

func TestHealthCheck(t *testing.T) {
	require.NoError(t, HealthCheck(store.NewMemory()))
}
