package log

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"TEXT", FormatText},
		{"console", FormatText},
		{"invalid", FormatJSON},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		slog  slog.Level
	}{
		{"debug", LevelDebug, slog.LevelDebug},
		{"INFO", LevelInfo, slog.LevelInfo},
		{"warning", LevelWarn, slog.LevelWarn},
		{"Error", LevelError, slog.LevelError},
		{"nonsense", LevelInfo, slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.ToSlogLevel() != tt.slog {
				t.Errorf("ToSlogLevel() = %v, want %v", got.ToSlogLevel(), tt.slog)
			}
		})
	}
}

func TestOutputDefaultsToStderr(t *testing.T) {
	var out Output
	if out.Writer() == nil {
		t.Fatal("zero Output should still have a writer")
	}

	var buf bytes.Buffer
	if NewOutput(&buf).Writer() != &buf {
		t.Error("NewOutput should keep the given writer")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelWarn {
		t.Errorf("expected warn level, got %v", cfg.Level)
	}
	if cfg.Format != FormatText {
		t.Errorf("expected text format, got %v", cfg.Format)
	}
	if cfg.ServiceName != "alumni" {
		t.Errorf("expected service name alumni, got %q", cfg.ServiceName)
	}

	dev := DevelopmentConfig()
	if dev.Level != LevelDebug || !dev.AddSource {
		t.Errorf("unexpected development config: %+v", dev)
	}
}
