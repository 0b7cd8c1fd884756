package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var codeDeclRe = regexp.MustCompile(`(?:function|def|class|const|let|var|func|fn)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)`)

// AutoTitle derives a display title from a note's content. It returns ""
// when nothing sensible can be derived. Callers only consult it when the
// user left the title empty; the note itself is never mutated.
func AutoTitle(n *Note) string {
	if strings.TrimSpace(n.Title) != "" {
		return ""
	}

	switch n.Type {
	case NoteTypeText:
		if s := strings.TrimSpace(n.Content); s != "" {
			first, _, _ := strings.Cut(s, "\n")
			return truncate(first, 30)
		}

	case NoteTypeWeb:
		if s := strings.TrimSpace(n.WebTitle); s != "" {
			return s
		}
		if n.WebURL != "" {
			if u, err := url.Parse(n.WebURL); err == nil && u.Hostname() != "" {
				return strings.TrimPrefix(u.Hostname(), "www.")
			}
			return truncate(n.WebURL, 30)
		}

	case NoteTypeLocation:
		if s := strings.TrimSpace(n.LocationName); s != "" {
			return s
		}
		if s := strings.TrimSpace(n.LocationAddress); s != "" {
			first, _, _ := strings.Cut(s, ",")
			return first
		}

	case NoteTypeFile:
		if n.FilePath != "" {
			return filepath.Base(n.FilePath)
		}

	case NoteTypeTodo:
		total := len(n.TodoItems)
		if total > 0 {
			done := 0
			for _, item := range n.TodoItems {
				if item.Completed {
					done++
				}
			}
			return fmt.Sprintf("Todo List (%d/%d)", done, total)
		}

	case NoteTypeReminder:
		if s := strings.TrimSpace(n.ReminderMessage); s != "" {
			return truncate(s, 30)
		}
		if n.ReminderDateTime != "" {
			if at, err := ParseReminderTime(n.ReminderDateTime); err == nil {
				return "Reminder for " + at.Format("1/2/2006")
			}
		}

	case NoteTypeTable:
		if len(n.TableData) > 0 {
			if row := n.TableData[0]; len(row) > 0 && strings.TrimSpace(row[0]) != "" {
				return truncate(strings.TrimSpace(row[0]), 30)
			}
			return fmt.Sprintf("Table (%d rows)", len(n.TableData))
		}

	case NoteTypeCalculator:
		if len(n.CalculatorHistory) > 0 {
			return "Calculator"
		}

	case NoteTypePaint:
		return "Drawing"

	case NoteTypeImage:
		if n.ImagePath != "" {
			return filepath.Base(n.ImagePath)
		}

	case NoteTypeTimer:
		switch n.TimerType {
		case "pomodoro":
			return "Pomodoro Timer"
		case "short-break":
			return "Short Break"
		case "long-break":
			return "Long Break"
		case "custom":
			return fmt.Sprintf("%d min Timer", n.TimerDuration/60)
		}

	case NoteTypeCode:
		if s := strings.TrimSpace(n.CodeContent); s != "" {
			lang := strings.ToUpper(n.CodeLanguage)
			for _, line := range strings.Split(s, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if m := codeDeclRe.FindStringSubmatch(line); m != nil {
					return lang + ": " + m[1]
				}
				return lang + ": " + truncate(line, 25)
			}
		}

	case NoteTypeDocument:
		if s := strings.TrimSpace(n.DocumentTitle); s != "" {
			return s
		}
	}

	return ""
}

// ParseReminderTime parses the datetime-local value stored on reminder
// notes. Older files may carry seconds or a full RFC 3339 stamp.
func ParseReminderTime(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if at, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return at, nil
		}
	}
	return time.Parse(time.RFC3339, value)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
