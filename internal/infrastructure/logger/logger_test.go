package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := New("warn", format)
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if l.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("%s logger should not log info at warn level", format)
		}
		if !l.Core().Enabled(zapcore.ErrorLevel) {
			t.Fatalf("%s logger should log errors", format)
		}
	}
}
