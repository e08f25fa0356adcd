// Package notes is the vault store: one markdown file per journal day.
//
// A daily note is three segments separated by the literal delimiter "---":
// frontmatter (Дата/Оценка lines), a task checklist, and a free-form body.
// Splitting is done on the raw substring, not per line, to stay compatible
// with notes written by earlier versions of the bot.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dailynotesbot/internal/clock"
)

// Delimiter separates the segments of a daily note.
const Delimiter = "---"

// ErrNotFound is returned when no note exists for the requested day.
var ErrNotFound = errors.New("note not found")

// defaultTemplate is used when the vault has no Templates/Daily.md.
const defaultTemplate = `---
Дата: {{date}}
Оценка:
---

---

`

type Store struct {
	dailyDir     string
	templatePath string
	clk          *clock.Clock
}

func NewStore(dailyDir, templatePath string, clk *clock.Clock) *Store {
	return &Store{dailyDir: dailyDir, templatePath: templatePath, clk: clk}
}

// Path returns the note file for a day.
func (s *Store) Path(day time.Time) string {
	return filepath.Join(s.dailyDir, clock.Filename(day))
}

func (s *Store) Exists(day time.Time) bool {
	_, err := os.Stat(s.Path(day))
	return err == nil
}

// Read returns the full note content, or ErrNotFound.
func (s *Store) Read(day time.Time) (string, error) {
	data, err := os.ReadFile(s.Path(day))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

// Ensure creates the day's note from the template if it does not exist yet.
func (s *Store) Ensure(day time.Time) error {
	path := s.Path(day)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	tpl := defaultTemplate
	if data, err := os.ReadFile(s.templatePath); err == nil {
		tpl = string(data)
	}
	content := strings.ReplaceAll(tpl, "{{date}}", clock.FormatDay(day))

	if err := os.MkdirAll(s.dailyDir, 0o755); err != nil {
		return fmt.Errorf("create daily dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Append adds a line of free-form text to the day's note, creating it first
// when needed.
func (s *Store) Append(day time.Time, text string) error {
	if err := s.Ensure(day); err != nil {
		return err
	}

	f, err := os.OpenFile(s.Path(day), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open note: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

// ExistingDates returns the set of day stems ("05-Feb-2025") that have notes.
func (s *Store) ExistingDates() map[string]bool {
	dates := make(map[string]bool)
	entries, err := os.ReadDir(s.dailyDir)
	if err != nil {
		return dates
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		dates[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = true
	}
	return dates
}

// splitSegments splits note content on the raw delimiter. A well-formed
// note yields at least 4 parts (3 delimiters).
func splitSegments(content string) []string {
	return strings.Split(content, Delimiter)
}

func (s *Store) rewrite(day time.Time, content string) error {
	if err := os.WriteFile(s.Path(day), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}
