package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

type handlerSlot struct{ h ErrorHandler }

var (
	current        atomic.Pointer[handlerSlot]
	defaultHandler ErrorHandler = &LogHandler{}
)

// SetHandler installs the process-wide handler. nil restores the default,
// a LogHandler writing to stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&handlerSlot{h: h})
}

func handler() ErrorHandler {
	if slot := current.Load(); slot != nil {
		return slot.h
	}
	return defaultHandler
}

// Report hands err to the installed handler as an AnimError for op and
// returns the wrapped error. It returns nil when err is nil.
func Report(op string, err error) error {
	if err == nil {
		return nil
	}
	anim, ok := err.(*AnimError)
	if !ok {
		anim = &AnimError{Op: op, Kind: KindOf(err), Err: err}
	}
	if anim.Timestamp.IsZero() {
		anim.Timestamp = time.Now()
	}
	if anim.StackTrace == "" && anim.Kind != KindState {
		anim.StackTrace = stack(3)
	}
	handler().HandleError(anim)
	return anim
}

// Recover reports a panic in the deferring function and swallows it. Use
// it around host callbacks:
//
//	defer errors.Recover("wrapper.onAnimationFinish")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	handler().HandlePanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: stack(3),
		Timestamp:  time.Now(),
	})
}

// stack formats up to 32 frames, skipping skip frames (runtime.Callers
// counts itself as 0).
func stack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
