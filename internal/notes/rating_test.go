package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	n, ok := ParseRating(sampleNote)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ParseRating("---\nДата: x\nОценка:\n---\n---\n")
	assert.False(t, ok)

	_, ok = ParseRating("нет фронтматтера")
	assert.False(t, ok)
}

func TestSetRatingReplaces(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure(testDay))
	require.NoError(t, s.rewrite(testDay, sampleNote))

	require.NoError(t, s.SetRating(testDay, 9))

	n, ok, err := s.Rating(testDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, n)

	// The rest of the note is untouched.
	content, err := s.Read(testDay)
	require.NoError(t, err)
	assert.Contains(t, content, "купить хлеб")
	assert.NoError(t, Validate(content))
}

func TestSetRatingAddsField(t *testing.T) {
	s := newTestStore(t)
	note := "---\nДата: 11-Oct-2025\n---\n- [ ] x\n---\n"
	require.NoError(t, s.Ensure(testDay))
	require.NoError(t, s.rewrite(testDay, note))

	require.NoError(t, s.SetRating(testDay, 3))

	n, ok, err := s.Rating(testDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestSetRatingBounds(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure(testDay))

	assert.Error(t, s.SetRating(testDay, -1))
	assert.Error(t, s.SetRating(testDay, 11))
	assert.NoError(t, s.SetRating(testDay, 0))
	assert.NoError(t, s.SetRating(testDay, 10))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sampleNote))
	assert.Error(t, Validate("нет разделителей"))
	assert.Error(t, Validate("---\nбез даты\n---\n---\n"))
	assert.Error(t, Validate("---\nДата: x\nОценка: много\n---\n---\n"))
	assert.Error(t, Validate("---\nДата: x\nОценка: 42\n---\n---\n"))
	assert.Error(t, Validate("---\nДата: x\n---\n- [y] кривой чекбокс\n---\n"))
}
