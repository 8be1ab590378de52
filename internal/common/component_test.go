package common

import (
	"testing"

	"evedecode/internal/eve"
)

type mockErrorLog struct {
	lastErrSev eve.ErrSeverity
	lastErrMsg string
	lastMsgSev eve.ErrSeverity
	lastMsg    string
}

func (m *mockErrorLog) LogError(filterLevel eve.ErrSeverity, msg string) {
	m.lastErrSev = filterLevel
	m.lastErrMsg = msg
}

func (m *mockErrorLog) LogMessage(filterLevel eve.ErrSeverity, msg string) {
	m.lastMsgSev = filterLevel
	m.lastMsg = msg
}

type mockNotifier struct {
	numAttached int
	called      bool
}

func (m *mockNotifier) AttachNotify(numAttached int) {
	m.numAttached = numAttached
	m.called = true
}

func TestAttachPt(t *testing.T) {
	pt := NewAttachPt[TraceErrorLog]()
	if pt.HasAttached() {
		t.Errorf("expected no attachment initially")
	}

	logger := &mockErrorLog{}
	if err := pt.Attach(logger); err != eve.OK {
		t.Errorf("expected OK, got %v", err)
	}
	if !pt.HasAttachedAndEnabled() {
		t.Errorf("expected attachment and enabled")
	}

	logger2 := &mockErrorLog{}
	if err := pt.Attach(logger2); err != eve.ErrAttachTooMany {
		t.Errorf("expected ErrAttachTooMany, got %v", err)
	}

	if err := pt.Detach(); err != eve.OK {
		t.Errorf("expected OK, got %v", err)
	}
	if err := pt.Detach(); err != eve.ErrAttachCompNotFound {
		t.Errorf("expected ErrAttachCompNotFound, got %v", err)
	}

	_ = pt.ReplaceFirst(logger)
	if err := pt.ReplaceFirst(logger2); err != eve.OK {
		t.Errorf("expected OK, got %v", err)
	}
	if pt.First() != logger2 {
		t.Errorf("expected logger2 to be attached")
	}

	notifier := &mockNotifier{}
	pt.SetNotifier(notifier)
	_ = pt.Detach()
	if !notifier.called || notifier.numAttached != 0 {
		t.Errorf("expected numAttached 0")
	}
	notifier.called = false
	_ = pt.Attach(logger)
	if !notifier.called || notifier.numAttached != 1 {
		t.Errorf("expected numAttached 1")
	}

	pt.SetEnabled(false)
	if pt.HasAttachedAndEnabled() {
		t.Errorf("expected HasAttachedAndEnabled to be false")
	}
	if pt.First() != nil {
		t.Errorf("expected nil First() when disabled")
	}
}

func TestTraceComponent(t *testing.T) {
	tc := &TraceComponent{}
	tc.InitTraceComponent("DCD_FT8XX")

	if tc.ComponentName() != "DCD_FT8XX" {
		t.Errorf("expected name DCD_FT8XX, got %s", tc.ComponentName())
	}
	tc.SetComponentName("NewName")
	if tc.ComponentName() != "NewName" {
		t.Errorf("expected NewName")
	}

	logger := &mockErrorLog{}
	tc.ErrorLogAttachPt().Attach(logger)
	tc.SetErrorLogLevel(eve.ErrSevInfo)

	tc.LogMessage(eve.ErrSevWarn, "A warning")
	if logger.lastMsg != "A warning" || logger.lastMsgSev != eve.ErrSevWarn {
		t.Errorf("log message was not passed to logger correctly")
	}
	if tc.IsLoggingErrorLevel(eve.ErrSevDebug) {
		t.Errorf("debug should be filtered at info level")
	}

	tc.SetErrorLogLevel(eve.ErrSevNone)
	tc.LogMessage(eve.ErrSevError, "Should not log")
	if logger.lastMsg == "Should not log" {
		t.Errorf("expected message to be filtered")
	}

	tc.LogError(NewErrorMsg(eve.ErrSevError, eve.ErrFail, "test error"))
	if logger.lastErrSev != eve.ErrSevError {
		t.Errorf("log error failed to pass severity")
	}
	if logger.lastErrMsg == "" {
		t.Errorf("log error failed to pass message")
	}
}
