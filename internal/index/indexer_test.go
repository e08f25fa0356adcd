package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeNote(t *testing.T, dir, date, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, date+".md"), []byte(body), 0o644))
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSyncAndStats(t *testing.T) {
	daily := t.TempDir()
	writeNote(t, daily, "10-Oct-2025",
		"---\nДата: 10-Oct-2025\nОценка: 6\n---\n\n- [ ] одна\n- [x] две\n\n---\n")
	writeNote(t, daily, "11-Oct-2025",
		"---\nДата: 11-Oct-2025\nОценка: 8\n---\n\n- [x] готово\n\n---\n")
	// Not a daily note, must be skipped.
	writeNote(t, daily, "scratch", "черновик")

	db := openTestDB(t)
	idx := NewIndexer(db, zap.NewNop())

	require.NoError(t, idx.Sync(daily))

	s, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Notes)
	assert.Equal(t, 3, s.TasksTotal)
	assert.Equal(t, 2, s.TasksDone)
	assert.Equal(t, 2, s.Rated)
	assert.InDelta(t, 7.0, s.AvgRating, 0.001)
}

func TestSyncDetectsChange(t *testing.T) {
	daily := t.TempDir()
	writeNote(t, daily, "11-Oct-2025",
		"---\nДата: 11-Oct-2025\nОценка:\n---\n\n- [ ] одна\n\n---\n")

	db := openTestDB(t)
	idx := NewIndexer(db, zap.NewNop())
	require.NoError(t, idx.Sync(daily))

	s, _ := db.Stats()
	assert.Equal(t, 0, s.TasksDone)
	assert.Equal(t, 0, s.Rated)

	writeNote(t, daily, "11-Oct-2025",
		"---\nДата: 11-Oct-2025\nОценка: 9\n---\n\n- [x] одна\n\n---\n")
	require.NoError(t, idx.Sync(daily))

	s, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, s.TasksDone)
	assert.Equal(t, 1, s.Rated)
	assert.InDelta(t, 9.0, s.AvgRating, 0.001)
}

func TestSyncPrunes(t *testing.T) {
	daily := t.TempDir()
	writeNote(t, daily, "10-Oct-2025", "---\nДата: 10-Oct-2025\n---\n---\n")
	writeNote(t, daily, "11-Oct-2025", "---\nДата: 11-Oct-2025\n---\n---\n")

	db := openTestDB(t)
	idx := NewIndexer(db, zap.NewNop())
	require.NoError(t, idx.Sync(daily))

	s, _ := db.Stats()
	assert.Equal(t, 2, s.Notes)

	require.NoError(t, os.Remove(filepath.Join(daily, "10-Oct-2025.md")))
	require.NoError(t, idx.Sync(daily))

	s, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Notes)
}

func TestSyncUnchangedIsStable(t *testing.T) {
	daily := t.TempDir()
	writeNote(t, daily, "11-Oct-2025", "---\nДата: 11-Oct-2025\nОценка: 5\n---\n\n- [ ] одна\n\n---\n")

	db := openTestDB(t)
	idx := NewIndexer(db, zap.NewNop())
	require.NoError(t, idx.Sync(daily))
	require.NoError(t, idx.Sync(daily))

	s, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Notes)
	assert.Equal(t, 1, s.TasksTotal)
}
