package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBolt(t *testing.T) Store {
	t.Helper()

	db, err := NewBolt(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

func setupSQLite(t *testing.T) Store {
	t.Helper()

	db, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"bolt":   setupBolt,
		"sqlite": setupSQLite,
		"memory": func(*testing.T) Store { return NewMemory() },
	}
}

func TestStore_Ping(t *testing.T) {
	for name, setup := range backends() {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, setup(t).Ping())
		})
	}
}

func TestStore_GetMissingSlot(t *testing.T) {
	for name, setup := range backends() {
		t.Run(name, func(t *testing.T) {
			_, err := setup(t).Get(SlotProfiles)
			require.ErrorIs(t, err, ErrSlotNotFound)
		})
	}
}

func TestStore_PutReplacesWholeValue(t *testing.T) {
	for name, setup := range backends() {
		t.Run(name, func(t *testing.T) {
			st := setup(t)

			require.NoError(t, st.Put(SlotProfiles, []byte(`[{"id":"a"},{"id":"b"}]`)))
			require.NoError(t, st.Put(SlotProfiles, []byte(`[]`)))

			got, err := st.Get(SlotProfiles)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestStore_SlotsAreIndependent(t *testing.T) {
	for name, setup := range backends() {
		t.Run(name, func(t *testing.T) {
			st := setup(t)

			require.NoError(t, st.Put(SlotProfiles, []byte(`[]`)))
			require.NoError(t, st.Put(SlotSettings, []byte(`{"darkMode":true}`)))

			slots, err := st.Slots()
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{SlotProfiles, SlotSettings}, slots)

			require.NoError(t, st.Delete(SlotProfiles))

			_, err = st.Get(SlotProfiles)
			require.ErrorIs(t, err, ErrSlotNotFound)

			got, err := st.Get(SlotSettings)
			require.NoError(t, err)
			assert.JSONEq(t, `{"darkMode":true}`, string(got))
		})
	}
}

func TestStore_EmptySlotNameRejected(t *testing.T) {
	for name, setup := range backends() {
		t.Run(name, func(t *testing.T) {
			st := setup(t)

			require.Error(t, st.Put(" ", []byte("x")))

			_, err := st.Get("")
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrSlotNotFound))
		})
	}
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bolt")

	db, err := NewBolt(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(SlotSettings, []byte(`{"autoSpoof":false}`)))
	require.NoError(t, db.Close())

	db, err = NewBolt(path)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	got, err := db.Get(SlotSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"autoSpoof":false}`, string(got))
}

func TestSQLite_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	db, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(SlotProfiles, []byte(`[]`)))
	require.NoError(t, db.Close())

	db, err = NewSQLite(path)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	version, err := NewMigrator(db.db).CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	got, err := db.Get(SlotProfiles)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestMigrator_LoadMigrations(t *testing.T) {
	migrations, err := NewMigrator(nil).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create slots", migrations[0].Description)
	assert.Contains(t, migrations[0].UpSQL, "CREATE TABLE")
}

func TestMemory_FailPut(t *testing.T) {
	m := NewMemory()
	m.FailPut = errors.New("disk full")

	require.EqualError(t, m.Put(SlotProfiles, []byte(`[]`)), "disk full")

	_, err := m.Get(SlotProfiles)
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendBolt, false},
		{"bolt", BackendBolt, false},
		{"SQLite", BackendSQLite, false},
		{"memory", BackendMemory, false},
		{"redis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, b := range []Backend{BackendBolt, BackendSQLite, BackendMemory} {
		t.Run(string(b), func(t *testing.T) {
			st, err := Open(b, dir)
			require.NoError(t, err)
			require.NoError(t, st.Ping())
			require.NoError(t, st.Close())
		})
	}

	_, err := Open("redis", dir)
	require.Error(t, err)
}
