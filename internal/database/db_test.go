package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, profile DatabaseProfile) *DB {
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Profile: profile,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuildConnectionString(t *testing.T) {
	testCases := []struct {
		name     string
		profile  DatabaseProfile
		contains []string
		excludes []string
	}{
		{
			name:     "archive profile syncs fully and never shrinks",
			profile:  ProfileArchive,
			contains: []string{"journal_mode(WAL)", "synchronous(FULL)", "auto_vacuum(NONE)"},
			excludes: []string{"temp_store"},
		},
		{
			name:     "standard profile",
			profile:  ProfileStandard,
			contains: []string{"journal_mode(WAL)", "synchronous(NORMAL)", "auto_vacuum(INCREMENTAL)", "temp_store(MEMORY)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			connStr := buildConnectionString("/tmp/x.db", tc.profile)
			for _, want := range tc.contains {
				assert.Contains(t, connStr, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, connStr, unwanted)
			}
			assert.True(t, strings.HasPrefix(connStr, "/tmp/x.db?"))
		})
	}
}

func TestHealthChecks(t *testing.T) {
	db := openTestDB(t, ProfileArchive)
	ctx := context.Background()

	assert.NoError(t, db.QuickCheck(ctx))
	// Full integrity check on a fresh database must pass.
	assert.NoError(t, db.HealthCheck(ctx))
}

func TestGetStatsReflectsWrites(t *testing.T) {
	db := openTestDB(t, ProfileStandard)

	_, err := db.Conn().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, payload TEXT)`)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := db.Conn().Exec(`INSERT INTO items (payload) VALUES (?)`, strings.Repeat("x", 512))
		require.NoError(t, err)
	}

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Greater(t, stats.PageCount, int64(0))
	assert.Greater(t, stats.PageSize, int64(0))
}

func TestWALCheckpointAndVacuum(t *testing.T) {
	db := openTestDB(t, ProfileStandard)

	_, err := db.Conn().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, payload TEXT)`)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := db.Conn().Exec(`INSERT INTO items (payload) VALUES (?)`, strings.Repeat("x", 512))
		require.NoError(t, err)
	}
	_, err = db.Conn().Exec(`DELETE FROM items`)
	require.NoError(t, err)

	assert.NoError(t, db.WALCheckpoint("TRUNCATE"))
	// Empty mode defaults to TRUNCATE.
	assert.NoError(t, db.WALCheckpoint(""))

	require.NoError(t, db.Vacuum())
	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.FreelistCount)
}

func TestNewRejectsUnreachablePath(t *testing.T) {
	// A regular file where a directory is needed makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := New(Config{
		Path: filepath.Join(blocker, "sub", "test.db"),
		Name: "broken",
	})
	assert.Error(t, err)
}
