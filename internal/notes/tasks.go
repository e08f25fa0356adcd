package notes

import (
	"fmt"
	"strings"
	"time"

	"dailynotesbot/internal/clock"
)

// Task is a checklist entry from the task segment of a daily note.
type Task struct {
	Text      string // without [completion:: ...] metadata
	Completed bool
	Index     int // 0-based position among tasks
	Line      int // 1-based line number in the full note
}

const completionTag = "[completion::"

func isTaskLine(s string) bool {
	return strings.HasPrefix(s, "- [ ]") || strings.HasPrefix(s, "- [x]") || strings.HasPrefix(s, "- [X]")
}

func stripCompletion(s string) string {
	if i := strings.Index(s, completionTag); i >= 0 {
		if end := strings.Index(s[i:], "]"); end >= 0 {
			return strings.TrimRight(s[:i], " ") + s[i+end+1:]
		}
	}
	return s
}

// ParseTasks extracts tasks from the segment between the second and third
// delimiters. Returns nil when the note lacks a task segment.
func ParseTasks(content string) []Task {
	parts := splitSegments(content)
	if len(parts) < 4 {
		return nil
	}

	// 1-based line number of the first line after the second delimiter.
	first := strings.Index(content, Delimiter)
	second := strings.Index(content[first+len(Delimiter):], Delimiter) + first + len(Delimiter)
	lineOffset := strings.Count(content[:second+len(Delimiter)], "\n") + 1

	var tasks []Task
	for i, line := range strings.Split(parts[2], "\n") {
		stripped := strings.TrimSpace(line)
		if !isTaskLine(stripped) {
			continue
		}

		text := strings.TrimSpace(stripped[len("- [ ]"):])
		if j := strings.Index(text, completionTag); j >= 0 {
			text = strings.TrimSpace(text[:j])
		}

		tasks = append(tasks, Task{
			Text:      text,
			Completed: !strings.HasPrefix(stripped, "- [ ]"),
			Index:     len(tasks),
			Line:      lineOffset + i,
		})
	}
	return tasks
}

// Tasks returns the checklist of the day's note.
func (s *Store) Tasks(day time.Time) ([]Task, error) {
	content, err := s.Read(day)
	if err != nil {
		return nil, err
	}
	return ParseTasks(content), nil
}

// ToggleTask flips the completion status of the task at index. Completing a
// task stamps it with the current date; reopening removes the stamp.
func (s *Store) ToggleTask(day time.Time, index int) error {
	content, err := s.Read(day)
	if err != nil {
		return err
	}

	tasks := ParseTasks(content)
	if index < 0 || index >= len(tasks) {
		return fmt.Errorf("task index %d out of range (have %d)", index, len(tasks))
	}

	lines := strings.Split(content, "\n")
	li := tasks[index].Line - 1
	if li < 0 || li >= len(lines) {
		return fmt.Errorf("task line %d out of range", tasks[index].Line)
	}
	line := lines[li]

	switch {
	case strings.Contains(line, "- [ ]"):
		line = stripCompletion(line)
		line = strings.Replace(line, "- [ ]", "- [x]", 1)
		stamp := s.clk.Now().Format("2006-01-02")
		line = strings.TrimRight(line, " ") + "  " + completionTag + " " + stamp + "]"
	case strings.Contains(line, "- [x]"), strings.Contains(line, "- [X]"):
		line = strings.Replace(line, "- [x]", "- [ ]", 1)
		line = strings.Replace(line, "- [X]", "- [ ]", 1)
		line = stripCompletion(line)
	default:
		return fmt.Errorf("line %d is not a task", tasks[index].Line)
	}

	lines[li] = line
	return s.rewrite(day, strings.Join(lines, "\n"))
}

// AddTask appends "- [ ] text" to the task segment, after the last task.
func (s *Store) AddTask(day time.Time, text string) error {
	content, err := s.Read(day)
	if err != nil {
		return err
	}

	parts := splitSegments(content)
	if len(parts) < 4 {
		return fmt.Errorf("note for %s has no task segment", clock.FormatDay(day))
	}

	lines := strings.Split(parts[2], "\n")
	last := -1
	for i, line := range lines {
		if isTaskLine(strings.TrimSpace(line)) {
			last = i
		}
	}

	entry := "- [ ] " + text
	switch {
	case last >= 0:
		lines = append(lines[:last+1], append([]string{entry}, lines[last+1:]...)...)
	case len(lines) > 0 && lines[0] == "":
		lines = append(lines[:1], append([]string{entry}, lines[1:]...)...)
	default:
		lines = append([]string{entry}, lines...)
	}

	parts[2] = strings.Join(lines, "\n")
	return s.rewrite(day, strings.Join(parts, Delimiter))
}
