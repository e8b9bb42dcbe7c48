package wrapper

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/errors"
	"github.com/go-drift/animwrap/pkg/transform"
)

// stubBehavior records calls and hands out its completion signals so tests
// can deliver them late.
type stubBehavior struct {
	starts, stops, resets, finishes, disposes int
	done                                      []func()
}

func (s *stubBehavior) Start(done func()) { s.starts++; s.done = append(s.done, done) }
func (s *stubBehavior) Stop() { s.stops++ }
func (s *stubBehavior) Reset() { s.resets++ }
func (s *stubBehavior) Finish() { s.finishes++ }
func (s *stubBehavior) Reconfigure(config.Config, bool) error { return nil }
func (s *stubBehavior) Transform() transform.Transform { return transform.Identity() }
func (s *stubBehavior) Dispose() { s.disposes++ }
func (s *stubBehavior) signal(i int) { s.done[i]() }

type countingObserver struct {
	started, finished, stopped int
}

func (o *countingObserver) AnimationStarted(config.Type) { o.started++ }
func (o *countingObserver) AnimationFinished(config.Type, time.Duration) { o.finished++ }
func (o *countingObserver) AnimationStopped(config.Type) { o.stopped++ }

func newStubLifecycle(trigger config.TriggerType) (*Lifecycle, *stubBehavior, *int) {
	b := &stubBehavior{}
	cfg := config.Scale{Base: config.Base{TriggerType: trigger}, ToScale: 2}
	env := Env{Scheduler: animation.NewScheduler(nil), Logger: zerolog.Nop()}
	lc := NewLifecycle(cfg, b, env)
	calls := new(int)
	lc.SetOnFinish(func() { *calls++ })
	return lc, b, calls
}

func TestLifecycle_CompletionFiresOnce(t *testing.T) {
	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Start()
	b.signal(0)
	b.signal(0)

	if *calls != 1 {
		t.Errorf("expected 1 completion, got %d", *calls)
	}
	if lc.Status() != StatusFinished {
		t.Errorf("expected finished, got %v", lc.Status())
	}
	if b.finishes != 1 {
		t.Errorf("expected final value to be forced once, got %d", b.finishes)
	}
}

func TestLifecycle_LateCompletionAfterStop(t *testing.T) {
	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Start()
	lc.Stop()
	b.signal(0)

	if *calls != 0 {
		t.Errorf("expected no completion after stop, got %d", *calls)
	}
	if lc.Status() != StatusStopped {
		t.Errorf("expected stopped, got %v", lc.Status())
	}

	lc.Stop()
	if b.stops != 1 {
		t.Errorf("expected stop to be idempotent, behavior stopped %d times", b.stops)
	}
}

func TestLifecycle_RestartDropsOldRun(t *testing.T) {
	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Start()
	lc.Start()

	if b.starts != 2 || b.stops != 1 {
		t.Fatalf("expected restart to stop then start, got starts=%d stops=%d", b.starts, b.stops)
	}
	b.signal(0)
	if *calls != 0 {
		t.Errorf("expected completion of the aborted run to be ignored, got %d", *calls)
	}
	b.signal(1)
	if *calls != 1 {
		t.Errorf("expected completion of the new run, got %d", *calls)
	}
}

func TestLifecycle_RestartLogsStateError(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	var buf bytes.Buffer
	b := &stubBehavior{}
	env := Env{Scheduler: animation.NewScheduler(nil), Logger: zerolog.New(&buf)}
	lc := NewLifecycle(config.Fade{}, b, env)

	lc.Start()
	lc.Start()

	out := buf.String()
	if !strings.Contains(out, `"level":"debug"`) || !strings.Contains(out, "start called while running") {
		t.Errorf("expected debug record for absorbed restart, got %q", out)
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != errors.KindState {
		t.Errorf("expected one reported state error, got %+v", rec.errs)
	}
}

func TestLifecycle_MountTrigger(t *testing.T) {
	tests := []struct {
		trigger config.TriggerType
		want    Status
	}{
		{config.OnLoad, StatusRunning},
		{config.OnClick, StatusIdle},
		{"", StatusIdle},
	}
	for _, tt := range tests {
		lc, _, _ := newStubLifecycle(tt.trigger)
		lc.Mount()
		if lc.Status() != tt.want {
			t.Errorf("trigger %q: expected %v after mount, got %v", tt.trigger, tt.want, lc.Status())
		}
	}
}

func TestLifecycle_PressPolicy(t *testing.T) {
	lc, b, _ := newStubLifecycle(config.OnLoad)
	lc.Mount()
	lc.Stop()
	lc.Press()
	if b.starts != 1 {
		t.Errorf("ON_LOAD config must ignore presses, got %d starts", b.starts)
	}

	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Press()
	lc.Press()
	lc.Press()
	if b.starts != 1 {
		t.Errorf("presses while running must not restart, got %d starts", b.starts)
	}
	b.signal(0)
	lc.Press()
	if b.starts != 2 {
		t.Errorf("press after finish should replay, got %d starts", b.starts)
	}
	if *calls != 1 {
		t.Errorf("expected 1 completion, got %d", *calls)
	}
}

func TestLifecycle_FinishSkipsCallback(t *testing.T) {
	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Start()
	lc.Finish()
	b.signal(0)

	if *calls != 0 {
		t.Errorf("forced finish must not notify, got %d", *calls)
	}
	if lc.Status() != StatusFinished {
		t.Errorf("expected finished, got %v", lc.Status())
	}
}

func TestLifecycle_ResetReturnsToIdle(t *testing.T) {
	lc, b, calls := newStubLifecycle(config.OnClick)
	lc.Start()
	b.signal(0)
	lc.Reset()

	if lc.Status() != StatusIdle {
		t.Errorf("expected idle, got %v", lc.Status())
	}
	if b.resets != 1 {
		t.Errorf("expected behavior reset, got %d", b.resets)
	}
	if *calls != 1 {
		t.Errorf("reset must not notify, got %d completions", *calls)
	}
}

func TestLifecycle_UnmountIsTerminal(t *testing.T) {
	obs := &countingObserver{}
	b := &stubBehavior{}
	env := Env{Scheduler: animation.NewScheduler(nil), Logger: zerolog.Nop(), Observer: obs}
	lc := NewLifecycle(config.Fade{}, b, env)
	calls := 0
	lc.SetOnFinish(func() { calls++ })

	lc.Start()
	lc.Unmount()
	lc.Unmount()
	b.signal(0)
	lc.Start()
	lc.Reset()

	if lc.Status() != StatusStopped {
		t.Errorf("expected stopped after unmount, got %v", lc.Status())
	}
	if calls != 0 {
		t.Errorf("expected no completion after unmount, got %d", calls)
	}
	if b.disposes != 1 || b.starts != 1 {
		t.Errorf("expected one dispose and no restart, got disposes=%d starts=%d", b.disposes, b.starts)
	}
	if obs.started != 1 || obs.stopped != 1 || obs.finished != 0 {
		t.Errorf("unexpected observer counts %+v", *obs)
	}
}

func TestLifecycle_CompletionPanicRecovered(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	lc, b, _ := newStubLifecycle(config.OnClick)
	lc.SetOnFinish(func() { panic("boom") })
	lc.Start()
	b.signal(0)

	if len(rec.panics) != 1 {
		t.Fatalf("expected 1 recovered panic, got %d", len(rec.panics))
	}
	if rec.panics[0].Op != "wrapper.onAnimationFinish" {
		t.Errorf("unexpected op %q", rec.panics[0].Op)
	}
	if lc.Status() != StatusFinished {
		t.Errorf("expected finished despite panic, got %v", lc.Status())
	}
}

func TestLifecycle_ReconfigureRejectsOtherType(t *testing.T) {
	lc, _, _ := newStubLifecycle(config.OnClick)
	err := lc.Reconfigure(config.Fade{})
	if errors.KindOf(err) != errors.KindConfig {
		t.Errorf("expected config error, got %v", err)
	}
}

type recordingHandler struct {
	errs   []*errors.AnimError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.AnimError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }
