package errors

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes through a zerolog logger.
// The zero value logs info and above to stderr.
type LogHandler struct {
	// Logger receives the records. A zero Logger writes JSON to stderr.
	Logger *zerolog.Logger
	// Verbose adds stack traces.
	Verbose bool
}

var stderrLogger = sync.OnceValue(func() *zerolog.Logger {
	l := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return &l
})

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return stderrLogger()
}

// HandleError logs an AnimError. State errors are absorbed by the lifecycle
// and only logged at debug level.
func (h *LogHandler) HandleError(err *AnimError) {
	if err == nil {
		return
	}
	ev := h.logger().Error()
	if err.Kind == KindState {
		ev = h.logger().Debug()
	}
	ev = ev.Str("op", err.Op).Stringer("kind", err.Kind).Err(err.Err)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("animation error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().Str("op", err.Op).Interface("panic", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
