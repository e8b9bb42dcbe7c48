// Package errors provides structured error handling for animated wrappers.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an unknown or malformed animation config or easing descriptor.
	KindConfig
	// KindStructural indicates the wrapper was given the wrong number of children.
	KindStructural
	// KindState indicates an illegal lifecycle transition that was absorbed.
	KindState
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindStructural:
		return "structural"
	case KindState:
		return "state"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// AnimError wraps an error with the operation that produced it.
type AnimError struct {
	// Op is the operation that failed (e.g., "wrapper.View.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *AnimError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *AnimError) Unwrap() error {
	return e.Err
}

// Wrap returns an AnimError for err, inferring Kind from err.
// It returns nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &AnimError{Op: op, Kind: KindOf(err), Err: err}
}

// ConfigError reports an animation config or easing descriptor that cannot
// be used. It is never recovered locally: the mount fails.
type ConfigError struct {
	// Field is the offending config field (e.g., "interpolationDef.curve").
	Field string
	// Value is the rejected value.
	Value any
	// Reason explains what is wrong.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid animation config: %s", e.Reason)
	}
	return fmt.Sprintf("invalid animation config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// StructuralError reports that a wrapper did not receive exactly one child.
type StructuralError struct {
	// Widget is the wrapper that was misused.
	Widget string
	// Children is the number of children supplied.
	Children int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("only one child can be passed to %s, got %d", e.Widget, e.Children)
}

// StateError describes a lifecycle call made in a state that does not
// accept it, such as starting an animation that is already running. The
// lifecycle absorbs these; they are only logged.
type StateError struct {
	// Op is the lifecycle operation (e.g., "start").
	Op string
	// Status is the lifecycle status at the time of the call.
	Status string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s called while %s", e.Op, e.Status)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "wrapper.onAnimationFinish").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// KindOf reports the kind of the first recognised error in err's chain.
func KindOf(err error) ErrorKind {
	var (
		anim       *AnimError
		config     *ConfigError
		structural *StructuralError
		state      *StateError
		panicErr   *PanicError
	)
	switch {
	case err == nil:
		return KindUnknown
	case stderrors.As(err, &anim):
		return anim.Kind
	case stderrors.As(err, &config):
		return KindConfig
	case stderrors.As(err, &structural):
		return KindStructural
	case stderrors.As(err, &state):
		return KindState
	case stderrors.As(err, &panicErr):
		return KindPanic
	default:
		return KindUnknown
	}
}

// ErrorHandler receives errors reported by animated wrappers.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *AnimError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
