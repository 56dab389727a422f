package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"followsnap/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name:    "valid config with info level",
			cfg:     &config.LoggingConfig{Level: "info"},
			wantErr: false,
		},
		{
			name:    "valid config with debug level",
			cfg:     &config.LoggingConfig{Level: "debug"},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			cfg:     &config.LoggingConfig{Level: "invalid"},
			wantErr: true,
		},
		{
			name:    "config with file output",
			cfg:     &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "run.log")},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithWriter(tt.cfg, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("parseLogLevel() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestConsoleOutputWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&config.LoggingConfig{Level: "debug"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter failed: %v", err)
	}

	log.WithField("cycle", 3).InfoWithFields("cycle status", map[string]interface{}{"total": 10})

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("Expected no ANSI codes for a non-terminal writer, got %q", out)
	}
	for _, want := range []string{"INFO", "| cycle status", "cycle=3", "total=10"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&config.LoggingConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("NewWithWriter failed: %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected warn message to be written")
	}
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := NewWithWriter(&config.LoggingConfig{Level: "info", File: path}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewWithWriter failed: %v", err)
	}

	log.WithError(errors.New("boom")).Error("checkpoint write failed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("Expected a JSON line, got %q: %v", data, err)
	}
	if entry["message"] != "checkpoint write failed" {
		t.Errorf("Unexpected message: %v", entry["message"])
	}
	if entry["error"] != "boom" {
		t.Errorf("Expected error field boom, got %v", entry["error"])
	}
	if entry["app"] != "followsnap" {
		t.Errorf("Expected app field, got %v", entry["app"])
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	parent := &zerologLogger{logger: nil, fields: map[string]interface{}{"a": 1}}

	child := parent.WithFields(map[string]interface{}{"b": 2}).(*zerologLogger)

	if len(parent.fields) != 1 {
		t.Errorf("Expected parent to keep 1 field, got %d", len(parent.fields))
	}
	if len(child.fields) != 2 {
		t.Errorf("Expected child to have 2 fields, got %d", len(child.fields))
	}
}

func TestSample(t *testing.T) {
	if got := Sample([]string{"alice", "bob"}); got != "alice, bob" {
		t.Errorf("Sample() = %q", got)
	}

	long := Sample([]string{"aaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbb", "cccccccccccccccccccc"})
	if !strings.HasSuffix(long, "...") || len(long) != sampleLimit+3 {
		t.Errorf("Expected truncated sample, got %q", long)
	}

	if got := Sample(nil); got != "" {
		t.Errorf("Expected empty sample, got %q", got)
	}

	accented := Sample([]string{strings.Repeat("a", 42), "é"})
	if !utf8.ValidString(accented) {
		t.Errorf("Expected valid UTF-8 sample, got %q", accented)
	}
	if want := strings.Repeat("a", 42) + ", ..."; accented != want {
		t.Errorf("Sample() = %q, want %q", accented, want)
	}
}

func TestTestLoggerCapture(t *testing.T) {
	log := NewTestLogger()

	log.WithField("cycle", 1).WithError(errors.New("denied")).Warn("page failed")
	log.Info("plain")

	messages := log.GetMessages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Fields["cycle"] != 1 || messages[0].Error == nil {
		t.Errorf("Expected fields and error to propagate, got %+v", messages[0])
	}
	if len(log.GetMessagesByLevel("WARN")) != 1 {
		t.Error("Expected one WARN message")
	}
	if !log.HasMessage("plain") || log.CountMessage("plain") != 1 {
		t.Error("Expected plain message to be captured once")
	}

	log.Clear()
	if len(log.GetMessages()) != 0 {
		t.Error("Expected messages to be cleared")
	}
}
