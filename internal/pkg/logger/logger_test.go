package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)
	fn()
	return buf.String()
}

func TestQuietByDefault(t *testing.T) {
	l := NewStd(false)
	out := capture(t, func() {
		l.Debug("hidden", nil)
		l.Info("hidden", nil)
		l.Warn("hidden", nil)
		l.Error("hidden", nil, nil)
	})
	if out != "" {
		t.Fatalf("non-verbose logger must stay silent, got %q", out)
	}
}

func TestSetVerboseEnablesOutput(t *testing.T) {
	l := NewStd(false)
	l.SetVerbose(true)
	out := capture(t, func() {
		l.Debug("now visible", map[string]interface{}{"backend": "kokoro"})
	})
	if !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "now visible") {
		t.Fatalf("SetVerbose(true) should enable output, got %q", out)
	}
}
