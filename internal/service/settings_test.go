package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
)

func TestSettingsStore_DefaultsWhenAbsent(t *testing.T) {
	ss := NewSettingsStore(store.NewMemory())
	assert.Equal(t, model.DefaultSettings(), ss.Load())
}

func TestSettingsStore_SaveLoad(t *testing.T) {
	st := store.NewMemory()

	want := model.GlobalSettings{AutoRandomize: false, AutoSpoof: true, HideRootGlobally: false, DarkMode: true}
	require.NoError(t, NewSettingsStore(st).Save(want))

	ss := NewSettingsStore(st)
	assert.Equal(t, want, ss.Load())
	assert.Equal(t, want, ss.Settings())
}

func TestSettingsStore_PartialRecordKeepsDefaults(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Put(store.SlotSettings, []byte(`{"darkMode":true}`)))

	got := NewSettingsStore(st).Load()

	want := model.DefaultSettings()
	want.DarkMode = true
	assert.Equal(t, want, got)
}

func TestSettingsStore_CorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", `{{{`},
		{"wrong type", `{"darkMode":"yes"}`},
		{"array", `[true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			require.NoError(t, st.Put(store.SlotSettings, []byte(tt.raw)))

			var buf bytes.Buffer

			got := NewSettingsStore(st, WithLogger(newTestLogger(&buf))).Load()
			assert.Equal(t, model.DefaultSettings(), got)
			assert.Contains(t, buf.String(), "discarding unreadable settings")
		})
	}
}

func TestSettingsStore_Set(t *testing.T) {
	st := store.NewMemory()
	ss := NewSettingsStore(st)
	ss.Load()

	got, err := ss.Set("autoSpoof", false)
	require.NoError(t, err)
	assert.False(t, got.AutoSpoof)
	assert.False(t, NewSettingsStore(st).Load().AutoSpoof)

	_, err = ss.Set("volume", true)
	require.Error(t, err)
}

func TestSettingsStore_SaveFailureKeepsPrevious(t *testing.T) {
	st := store.NewMemory()
	ss := NewSettingsStore(st)
	ss.Load()

	st.FailPut = errors.New("read-only")

	_, err := ss.Set("darkMode", true)
	require.Error(t, err)
	assert.False(t, ss.Settings().DarkMode)
}
