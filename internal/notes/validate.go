package notes

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the structural invariants of a daily note: three segment
// delimiters, a dated frontmatter, a parsable rating when one is set, and
// well-formed checkbox lines in the task segment.
func Validate(content string) error {
	parts := splitSegments(content)
	if len(parts) < 4 {
		return fmt.Errorf("expected at least 3 %q delimiters, found %d", Delimiter, len(parts)-1)
	}

	if !strings.Contains(parts[1], "Дата:") {
		return fmt.Errorf("frontmatter is missing the Дата field")
	}

	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, ratingKey) {
			continue
		}
		val := strings.TrimSpace(strings.TrimPrefix(line, ratingKey))
		if val == "" {
			continue // not rated yet
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", val)
		}
		if n < MinRating || n > MaxRating {
			return fmt.Errorf("rating %d out of range %d-%d", n, MinRating, MaxRating)
		}
	}

	for i, line := range strings.Split(parts[2], "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "- [") && !isTaskLine(stripped) {
			return fmt.Errorf("malformed checkbox on task segment line %d: %q", i+1, stripped)
		}
	}
	return nil
}
