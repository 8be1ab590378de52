package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"evedecode/internal/eve"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{Severity(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.expected {
				t.Errorf("Severity.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"debug": SeverityDebug, "trace": SeverityDebug, "info": SeverityInfo,
		"warning": SeverityWarning, "error": SeverityError,
	} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogrusLogger_Log(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogrusLogger(&out, SeverityDebug)

	tests := []struct {
		name     string
		severity Severity
		message  string
		level    string
	}{
		{"Debug", SeverityDebug, "debug message", "level=debug"},
		{"Info", SeverityInfo, "info message", "level=info"},
		{"Warning", SeverityWarning, "warning message", "level=warning"},
		{"Error", SeverityError, "error message", "level=error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			logger.Log(tt.severity, tt.message)
			got := out.String()
			if !strings.Contains(got, tt.message) {
				t.Errorf("Log output should contain %q, got: %s", tt.message, got)
			}
			if !strings.Contains(got, tt.level) {
				t.Errorf("Log output should contain %q, got: %s", tt.level, got)
			}
		})
	}
}

func TestLogrusLogger_Filtering(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogrusLogger(&out, SeverityWarning)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	if out.Len() != 0 {
		t.Errorf("expected no output below minimum level, got: %s", out.String())
	}
	logger.Error(errors.New("boom"))
	logger.Error(nil)
	if !strings.Contains(out.String(), "boom") {
		t.Errorf("expected error output, got: %s", out.String())
	}
}

func TestLogrusLogger_WithFields(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogrusLogger(&out, SeverityInfo)
	logger.WithFields(map[string]interface{}{"addr": "0x302578"}).Logf(SeverityInfo, "word %d", 3)
	if got := out.String(); !strings.Contains(got, "addr=0x302578") || !strings.Contains(got, "word 3") {
		t.Errorf("unexpected field output: %s", got)
	}
}

func TestErrLogAdapter(t *testing.T) {
	var out bytes.Buffer
	adapter := &ErrLogAdapter{Logger: NewLogrusLogger(&out, SeverityDebug)}

	tc := &TraceComponent{}
	tc.InitTraceComponent("DCD_FT8XX")
	tc.ErrorLogAttachPt().Attach(adapter)
	tc.LogError(NewErrorMsg(eve.ErrSevError, eve.ErrFail, "table fault"))
	if got := out.String(); !strings.Contains(got, "table fault") || !strings.Contains(got, "level=error") {
		t.Errorf("unexpected adapter output: %s", got)
	}

	var n NoOpLogger
	n.Warning("ignored")
	if n.WithFields(nil) != Logger(&n) {
		t.Error("NoOpLogger.WithFields should return itself")
	}
}
