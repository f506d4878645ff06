package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "roster.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2026-10-17T10:00:00.000Z","logger":"roster","caller":"app/loader.go:70","msg":"people load failed","error":"api returned status 500","elapsed":1.002}`

	entry := Parse(line)
	if entry.Level != zapcore.WarnLevel {
		t.Fatalf("Level = %v, want warn", entry.Level)
	}
	if entry.Message != "people load failed" || entry.Logger != "roster" {
		t.Fatalf("Message/Logger = %q/%q", entry.Message, entry.Logger)
	}
	want := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	if !entry.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", entry.Time, want)
	}
	fields := []Field{{Key: "error", Value: "api returned status 500"}, {Key: "elapsed", Value: "1.002"}}
	if !reflect.DeepEqual(entry.Fields, fields) {
		t.Fatalf("Fields = %#v, want %#v", entry.Fields, fields)
	}
}

func TestParse_PlainText(t *testing.T) {
	entry := Parse("panic: something broke")
	if entry.Message != "panic: something broke" || entry.Level != zapcore.InfoLevel {
		t.Fatalf("Parse plain = %#v", entry)
	}
	if !entry.Time.IsZero() || entry.Fields != nil {
		t.Fatalf("Parse plain should carry no time or fields: %#v", entry)
	}
}

func TestEntryFormat(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 3, 0, 0, time.UTC)
	entry := Entry{
		Time:    now.Add(-3 * time.Minute),
		Level:   zapcore.InfoLevel,
		Message: "people loaded",
		Fields:  []Field{{Key: "records", Value: "3"}},
	}

	got := entry.Format(now)
	want := "3 minutes ago  INFO   people loaded  records=3"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}

	entry.Logger = "roster.loader"
	got = entry.Format(now)
	want = "3 minutes ago  INFO   roster.loader  people loaded  records=3"
	if got != want {
		t.Fatalf("Format() with logger = %q, want %q", got, want)
	}
}

func TestTail_FiltersByLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "roster.log")
	body := strings.Join([]string{
		`{"level":"debug","ts":"2026-10-17T10:00:00.000Z","msg":"roster starting"}`,
		`{"level":"info","ts":"2026-10-17T10:00:01.000Z","msg":"people loaded","records":208}`,
		"",
		`{"level":"error","ts":"2026-10-17T10:00:02.000Z","msg":"save prefs failed"}`,
	}, "\n")
	if err := os.WriteFile(logPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := Tail(logPath, 0, zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Tail() returned %d entries, want 2", len(entries))
	}
	if entries[0].Message != "people loaded" || entries[1].Message != "save prefs failed" {
		t.Fatalf("Tail() messages = %q, %q", entries[0].Message, entries[1].Message)
	}
}
