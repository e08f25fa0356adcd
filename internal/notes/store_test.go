package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailynotesbot/internal/clock"
)

var testDay = time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	clk := clock.NewAt(3, 7, time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC))
	return NewStore(filepath.Join(dir, "Daily"), filepath.Join(dir, "Templates", "Daily.md"), clk)
}

func TestEnsureCreatesFromDefaultTemplate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ensure(testDay))

	content, err := s.Read(testDay)
	require.NoError(t, err)
	assert.Contains(t, content, "Дата: 11-Oct-2025")
	assert.NoError(t, Validate(content))

	// Second Ensure must not touch the file.
	require.NoError(t, s.Append(testDay, "kept"))
	require.NoError(t, s.Ensure(testDay))
	content, err = s.Read(testDay)
	require.NoError(t, err)
	assert.Contains(t, content, "kept")
}

func TestEnsureUsesVaultTemplate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.templatePath), 0o755))
	tpl := "---\nДата: {{date}}\nОценка:\n---\n- [ ] разобрать входящие\n---\n"
	require.NoError(t, os.WriteFile(s.templatePath, []byte(tpl), 0o644))

	require.NoError(t, s.Ensure(testDay))

	content, err := s.Read(testDay)
	require.NoError(t, err)
	assert.Contains(t, content, "Дата: 11-Oct-2025")
	assert.Contains(t, content, "- [ ] разобрать входящие")
}

func TestReadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Read(testDay)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppend(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Append(testDay, "первая мысль"))
	require.NoError(t, s.Append(testDay, "вторая мысль"))

	content, err := s.Read(testDay)
	require.NoError(t, err)
	assert.Contains(t, content, "первая мысль\nвторая мысль\n")
}

func TestExistingDates(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.ExistingDates())

	require.NoError(t, s.Ensure(testDay))
	require.NoError(t, s.Ensure(testDay.AddDate(0, 0, 1)))
	// Non-markdown clutter is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(s.dailyDir, "notes.txt"), []byte("x"), 0o644))

	dates := s.ExistingDates()
	assert.Len(t, dates, 2)
	assert.True(t, dates["11-Oct-2025"])
	assert.True(t, dates["12-Oct-2025"])
}
