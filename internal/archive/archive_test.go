package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "gaslab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRun(id string) Run {
	return Run{
		ID:          id,
		CreatedAt:   time.Now().UTC(),
		Preset:      "room",
		Temperature: 300,
		Population:  80,
		SizeScale:   1.0,
		Dt:          1.0 / 60,
		Duration:    10,
		Seed:        42,
		Frames:      600,
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)

	id := NewRunID()
	samples := []Sample{
		{Frame: 0, Time: 0, Pressure: 0, WallImpulse: 0, MeanSpeed: 95, TheorySpeed: 110, KineticEnergy: 6.2e-21},
		{Frame: 1, Time: 1.0 / 60, Pressure: 0.8, WallImpulse: 2e-26, MeanSpeed: 96, TheorySpeed: 110, KineticEnergy: 6.2e-21},
	}
	require.NoError(t, db.SaveRun(testRun(id), samples))

	run, err := db.LoadRun(id)
	require.NoError(t, err)
	assert.Equal(t, "room", run.Preset)
	assert.Equal(t, 80, run.Population)
	assert.Equal(t, int64(42), run.Seed)

	loaded, err := db.LoadSamples(id)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 0, loaded[0].Frame)
	assert.InDelta(t, 0.8, loaded[1].Pressure, 1e-12)
	assert.InDelta(t, 110.0, loaded[1].TheorySpeed, 1e-12)
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	older := testRun(NewRunID())
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testRun(NewRunID())

	require.NoError(t, db.SaveRun(older, nil))
	require.NoError(t, db.SaveRun(newer, nil))

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}

func TestLoadRunNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.LoadRun("nope")
	assert.Error(t, err)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	db := openTestDB(t)

	run := testRun(NewRunID())
	require.NoError(t, db.SaveRun(run, nil))
	assert.Error(t, db.SaveRun(run, nil))
}

func TestNewRunIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewRunID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
