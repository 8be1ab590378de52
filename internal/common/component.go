package common

import (
	"evedecode/internal/eve"
)

// TraceErrorLog is the target environment error logging interface.
type TraceErrorLog interface {
	// LogError logs an error.
	LogError(filterLevel eve.ErrSeverity, msg string)
	// LogMessage logs a standard message.
	LogMessage(filterLevel eve.ErrSeverity, msg string)
}

// ComponentAttachNotifier is the notification interface for attachment.
type ComponentAttachNotifier interface {
	// AttachNotify is called whenever a component is attached or detached.
	// numAttached is the number of remaining components attached to the point.
	AttachNotify(numAttached int)
}

// AttachPt is a generic single-slot component attachment point.
// T represents the interface type being attached.
type AttachPt[T any] struct {
	enabled     bool
	hasAttached bool
	notifier    ComponentAttachNotifier
	comp        T
}

// NewAttachPt creates a new attachment point.
func NewAttachPt[T any]() *AttachPt[T] {
	return &AttachPt[T]{
		enabled: true,
	}
}

// Attach attaches an interface of type T to the attachment point.
func (a *AttachPt[T]) Attach(comp T) eve.Err {
	if a.hasAttached {
		return eve.ErrAttachTooMany
	}
	a.comp = comp
	a.hasAttached = true
	if a.notifier != nil {
		a.notifier.AttachNotify(1)
	}
	return eve.OK
}

// Detach detaches the current component from the attachment point.
func (a *AttachPt[T]) Detach() eve.Err {
	if !a.hasAttached {
		return eve.ErrAttachCompNotFound
	}
	var empty T
	a.comp = empty
	a.hasAttached = false
	if a.notifier != nil {
		a.notifier.AttachNotify(0)
	}
	return eve.OK
}

// ReplaceFirst detaches any currently attached component and attaches the new one.
func (a *AttachPt[T]) ReplaceFirst(comp T) eve.Err {
	if a.hasAttached {
		_ = a.Detach()
	}
	return a.Attach(comp)
}

// First returns the current attached interface.
// Callers check HasAttachedAndEnabled() first.
func (a *AttachPt[T]) First() T {
	if !a.enabled {
		var empty T
		return empty
	}
	return a.comp
}

// SetNotifier sets the notification interface.
func (a *AttachPt[T]) SetNotifier(notifier ComponentAttachNotifier) {
	a.notifier = notifier
}

// SetEnabled sets the enabled state.
func (a *AttachPt[T]) SetEnabled(enable bool) {
	a.enabled = enable
}

// HasAttached returns true if there is an attached interface.
func (a *AttachPt[T]) HasAttached() bool {
	return a.hasAttached
}

// HasAttachedAndEnabled returns true if there is an attachment and it is enabled.
func (a *AttachPt[T]) HasAttachedAndEnabled() bool {
	return a.hasAttached && a.enabled
}

// TraceComponent is the base struct for the decode components.
// It provides component naming and error logging attachment.
type TraceComponent struct {
	name         string
	errorLogger  AttachPt[TraceErrorLog]
	errVerbosity eve.ErrSeverity
}

// InitTraceComponent initializes a TraceComponent in place, so it can be embedded.
func (tc *TraceComponent) InitTraceComponent(name string) {
	tc.name = name
	tc.errVerbosity = eve.ErrSevError
	tc.errorLogger.enabled = true
}

// ComponentName returns the component's name.
func (tc *TraceComponent) ComponentName() string {
	return tc.name
}

// SetComponentName sets the component's name.
func (tc *TraceComponent) SetComponentName(name string) {
	tc.name = name
}

// ErrorLogAttachPt returns the error logger attachment point.
func (tc *TraceComponent) ErrorLogAttachPt() *AttachPt[TraceErrorLog] {
	return &tc.errorLogger
}

// LogError logs an error if an error logger is attached.
func (tc *TraceComponent) LogError(err *Error) {
	if tc.errorLogger.HasAttachedAndEnabled() {
		tc.errorLogger.First().LogError(err.Sev, err.Error())
	}
}

// LogMessage logs a message if the level matches the verbosity and a logger is attached.
func (tc *TraceComponent) LogMessage(filterLevel eve.ErrSeverity, msg string) {
	if filterLevel <= tc.errVerbosity && tc.errorLogger.HasAttachedAndEnabled() {
		tc.errorLogger.First().LogMessage(filterLevel, msg)
	}
}

// ErrorLogLevel returns the current error log level.
func (tc *TraceComponent) ErrorLogLevel() eve.ErrSeverity {
	return tc.errVerbosity
}

// IsLoggingErrorLevel returns true if the level would be logged.
func (tc *TraceComponent) IsLoggingErrorLevel(level eve.ErrSeverity) bool {
	return level <= tc.errVerbosity
}

// SetErrorLogLevel sets the verbosity of error logging.
func (tc *TraceComponent) SetErrorLogLevel(level eve.ErrSeverity) {
	tc.errVerbosity = level
}
