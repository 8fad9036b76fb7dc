package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.WarnLevel},
		{"bogus", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})
	log.Debug().Str("endpoint", "find").Msg("request")

	out := buf.String()
	if !strings.Contains(out, `"endpoint":"find"`) {
		t.Errorf("output = %q, want endpoint field", out)
	}
	if !strings.Contains(out, `"level":"debug"`) {
		t.Errorf("output = %q, want debug level", out)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf})
	log.Debug().Msg("hidden")
	log.Info().Msg("hidden too")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing below warn", buf.String())
	}
}
