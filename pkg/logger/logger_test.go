package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{" warning ", WARN, true},
		{"Error", ERROR, true},
		{"fatal", FATAL, true},
		{"verbose", INFO, false},
		{"", INFO, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WARN, Output: &buf})

	l.Infof("hidden %d", 1)
	l.Debug("hidden too")
	l.Warnf("shown %d", 2)
	l.Errorf("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info/debug lines leaked: %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "also shown") {
		t.Errorf("missing warn/error lines: %q", out)
	}

	buf.Reset()
	l.SetLevel(DEBUG)
	l.Debugf("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("SetLevel(DEBUG) did not take effect: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf, JSON: true, Prefix: "server", ShowTime: true})

	l.Infof("listening on %s", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "listening on :8080" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["component"] != "server" {
		t.Errorf("component = %v", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a time field")
	}
}

func TestConsoleOutputWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf})
	l.Warn("careful")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected colour codes: %q", out)
	}
	if !strings.Contains(out, "careful") || !strings.Contains(out, "WRN") {
		t.Errorf("unexpected console line: %q", out)
	}
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Output: &buf, JSON: true})
	l.Info("100%")

	if !strings.Contains(buf.String(), `"100%"`) {
		t.Errorf("percent sign mangled: %q", buf.String())
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := GetLogger()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(New(Config{Level: DEBUG, Output: &buf, JSON: true}))
	Debugf("via package %s", "helper")

	if !strings.Contains(buf.String(), "via package helper") {
		t.Errorf("package helper did not use the default logger: %q", buf.String())
	}
}
