package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("searching") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("request") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("request") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("unknown key") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("hello")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("missing HH:MM:SS.ms timestamp: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Found 3 parts")

	out := buf.String()
	if !strings.Contains(out, "Found 3 parts (") {
		t.Errorf("output missing message with elapsed time: %q", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("output missing duration unit: %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the stored logger")
	}
	got.Info("stored")
	if !strings.Contains(buf.String(), "stored") {
		t.Error("stored logger should write to its own writer")
	}
}
