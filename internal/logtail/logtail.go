package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one structured log line.
type Entry struct {
	Time      time.Time
	Level     logrus.Level
	Component string
	Message   string
	Fields    map[string]any
	// Raw holds the original line when it was not JSON.
	Raw string
}

// Parse decodes a JSON log line. Lines that are not JSON come back with
// only Raw set and an info level so they are never hidden by accident.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Level: logrus.InfoLevel, Raw: line}
	}

	entry := Entry{Level: logrus.InfoLevel, Fields: map[string]any{}}
	for k, v := range raw {
		switch k {
		case logrus.FieldKeyTime:
			if s, ok := v.(string); ok {
				entry.Time, _ = time.Parse(time.RFC3339, s)
			}
		case logrus.FieldKeyLevel:
			if s, ok := v.(string); ok {
				if lvl, err := logrus.ParseLevel(s); err == nil {
					entry.Level = lvl
				}
			}
		case logrus.FieldKeyMsg:
			entry.Message, _ = v.(string)
		case "component":
			entry.Component, _ = v.(string)
		default:
			entry.Fields[k] = v
		}
	}
	return entry
}

// Filter keeps entries at minLevel or more severe.
func Filter(entries []Entry, minLevel logrus.Level) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		// logrus levels grow less severe as the value increases
		if e.Level <= minLevel {
			out = append(out, e)
		}
	}
	return out
}

// Tail reads the last maxLines of path and parses them.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

var (
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	componentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	fieldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	levelStyles    = map[logrus.Level]lipgloss.Style{
		logrus.PanicLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		logrus.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		logrus.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		logrus.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		logrus.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		logrus.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		logrus.TraceLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	}
)

// Format renders an entry as a single line. With color set, parts are
// styled for a terminal.
func Format(e Entry, color bool) string {
	if e.Raw != "" {
		return e.Raw
	}

	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(paint(timeStyle, e.Time.Format("2006-01-02 15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(paint(levelStyles[e.Level], strings.ToUpper(e.Level.String())))
	if e.Component != "" {
		b.WriteByte(' ')
		b.WriteString(paint(componentStyle, "["+e.Component+"]"))
	}
	b.WriteString(" ")
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(paint(fieldStyle, fmt.Sprintf("%s=%v", k, e.Fields[k])))
	}
	return b.String()
}
