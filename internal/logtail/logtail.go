package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zapcore"
)

// timeLayout matches zap's ISO8601 time encoder.
const timeLayout = "2006-01-02T15:04:05.000Z0700"

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
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  []Field
	Raw     string
}

// Field is an extra key/value pair of an entry, in file order.
type Field struct {
	Key   string
	Value string
}

var reservedKeys = []string{"ts", "level", "logger", "msg", "caller", "stacktrace"}

// Parse decodes a zap JSON line. Lines that are not JSON objects come back as
// info entries carrying only Raw and Message.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: zapcore.InfoLevel, Message: line}
	if !gjson.Valid(line) {
		return entry
	}
	doc := gjson.Parse(line)
	if !doc.IsObject() {
		return entry
	}

	if ts := doc.Get("ts"); ts.Exists() {
		if parsed, err := time.Parse(timeLayout, ts.String()); err == nil {
			entry.Time = parsed
		}
	}
	if lvl := doc.Get("level"); lvl.Exists() {
		if parsed, err := zapcore.ParseLevel(lvl.String()); err == nil {
			entry.Level = parsed
		}
	}
	entry.Logger = doc.Get("logger").String()
	entry.Message = doc.Get("msg").String()

	doc.ForEach(func(key, value gjson.Result) bool {
		if !slices.Contains(reservedKeys, key.String()) {
			entry.Fields = append(entry.Fields, Field{Key: key.String(), Value: value.String()})
		}
		return true
	})
	return entry
}

// Format renders an entry on one line, in the order of zap's console
// encoder. Times are shown relative to now.
func (e Entry) Format(now time.Time) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(humanize.RelTime(e.Time, now, "ago", "from now"))
		b.WriteString("  ")
	}
	b.WriteString(fmt.Sprintf("%-5s", e.Level.CapitalString()))
	b.WriteString("  ")
	if e.Logger != "" {
		b.WriteString(e.Logger)
		b.WriteString("  ")
	}
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteString("  ")
		b.WriteString(f.Key)
		b.WriteString("=")
		b.WriteString(f.Value)
	}
	return b.String()
}

// Tail reads the last maxLines of path and keeps the entries at or above minLevel.
func Tail(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := Parse(line)
		if entry.Level >= minLevel {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
