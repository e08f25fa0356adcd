package notes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dailynotesbot/internal/clock"
)

// ratingKey is the frontmatter field holding the day's 0-10 rating.
const ratingKey = "Оценка:"

const (
	MinRating = 0
	MaxRating = 10
)

// ParseRating reads the rating from the frontmatter segment. ok is false
// when the field is absent, empty, or malformed.
func ParseRating(content string) (rating int, ok bool) {
	parts := splitSegments(content)
	if len(parts) < 3 {
		return 0, false
	}
	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, ratingKey) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ratingKey)))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Rating reads the day's rating from disk.
func (s *Store) Rating(day time.Time) (rating int, ok bool, err error) {
	content, err := s.Read(day)
	if err != nil {
		return 0, false, err
	}
	rating, ok = ParseRating(content)
	return rating, ok, nil
}

// SetRating writes the rating into the frontmatter, replacing an existing
// field or adding one.
func (s *Store) SetRating(day time.Time, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("rating %d out of range %d-%d", rating, MinRating, MaxRating)
	}

	content, err := s.Read(day)
	if err != nil {
		return err
	}

	parts := splitSegments(content)
	if len(parts) < 3 {
		return fmt.Errorf("note for %s has no frontmatter", clock.FormatDay(day))
	}

	lines := strings.Split(parts[1], "\n")
	field := fmt.Sprintf("%s %d", ratingKey, rating)
	found := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ratingKey) {
			lines[i] = field
			found = true
			break
		}
	}
	if !found {
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = append(lines[:len(lines)-1], field, "")
		} else {
			lines = append(lines, field)
		}
	}

	parts[1] = strings.Join(lines, "\n")
	return s.rewrite(day, strings.Join(parts, Delimiter))
}
