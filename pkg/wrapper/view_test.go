package wrapper_test

import (
	stderrors "errors"
	"reflect"
	"testing"
	"time"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/easing"
	"github.com/go-drift/animwrap/pkg/errors"
	animtest "github.com/go-drift/animwrap/pkg/testing"
	"github.com/go-drift/animwrap/pkg/transform"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

const child = "child"

func ms(n int) config.Duration {
	return config.Duration(time.Duration(n) * time.Millisecond)
}

func scaleConfig() config.Scale {
	from := 0.5
	return config.Scale{
		Base:      config.Base{TriggerType: config.OnClick, Duration: ms(300)},
		FromScale: &from,
		ToScale:   1.0,
	}
}

// oneOfEach returns an ON_CLICK config for every discriminant.
func oneOfEach() []config.Config {
	base := config.Base{TriggerType: config.OnClick, Duration: ms(200)}
	return []config.Config{
		config.Ripple{Base: base},
		config.Bounce{Base: base, Repeat: 2},
		scaleConfig(),
		config.Fade{Base: base},
		config.Fade{Base: base, Direction: config.DirectionOut},
		config.Draggable{Base: base},
		config.Slide{Base: base, Edge: config.EdgeTop},
		config.Slide{Base: base, Direction: config.DirectionOut},
		config.Wiggle{Base: base},
	}
}

func TestScaleOnClickScenario(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}

	if got := h.Transform().Scale; got != 0.5 {
		t.Errorf("expected scale 0.5 before trigger, got %v", got)
	}
	if h.Status() != wrapper.StatusIdle {
		t.Errorf("ON_CLICK must stay idle until pressed, got %v", h.Status())
	}

	h.View().TriggerAnimation()
	if err := h.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}

	if got := h.Transform().Scale; got != 1.0 {
		t.Errorf("expected scale exactly 1.0 after completion, got %v", got)
	}
	if h.Finished() != 1 {
		t.Errorf("expected completion callback once, got %d", h.Finished())
	}
}

func TestMount_RejectsChildCount(t *testing.T) {
	for _, n := range []int{0, 2} {
		obs := &observer{}
		view := wrapper.NewView(wrapper.Options{Observer: obs})
		children := make([]wrapper.Node, n)

		err := view.Mount(wrapper.Props{Config: config.Scale{Base: config.Base{TriggerType: config.OnLoad}, ToScale: 2}, Children: children})

		var structural *errors.StructuralError
		if !stderrors.As(err, &structural) {
			t.Fatalf("%d children: expected StructuralError, got %v", n, err)
		}
		if structural.Children != n {
			t.Errorf("expected child count %d in error, got %d", n, structural.Children)
		}
		if errors.KindOf(err) != errors.KindStructural {
			t.Errorf("expected structural kind, got %v", errors.KindOf(err))
		}
		if view.Lifecycle() != nil || obs.started != 0 {
			t.Errorf("%d children: no behavior may be constructed", n)
		}
	}
}

func TestMount_StructuralBeforeConfig(t *testing.T) {
	view := wrapper.NewView(wrapper.Options{})
	err := view.Mount(wrapper.Props{Config: nil, Children: []wrapper.Node{child, child}})
	if errors.KindOf(err) != errors.KindStructural {
		t.Errorf("child count must be checked first, got %v", err)
	}
}

func TestMount_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"nil", nil},
		{"bad easing", config.Fade{Base: config.Base{Interpolation: easing.Descriptor{Curve: "WOBBLE"}}}},
		{"bad trigger", config.Fade{Base: config.Base{TriggerType: "ON_HOVER"}}},
		{"negative scale", config.Scale{ToScale: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := wrapper.NewView(wrapper.Options{})
			err := view.Mount(wrapper.Props{Config: tt.cfg, Children: []wrapper.Node{child}})
			if errors.KindOf(err) != errors.KindConfig {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestBuild_WrapsChild(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	tap, ok := h.Root().(wrapper.TapTarget)
	if !ok {
		t.Fatalf("expected TapTarget root, got %T", h.Root())
	}
	inner, ok := tap.Child.(wrapper.Transformed)
	if !ok || inner.Child != child {
		t.Fatalf("expected Transformed around the child, got %#v", tap.Child)
	}

	if err := h.Mount(config.Draggable{}, child); err != nil {
		t.Fatal(err)
	}
	if _, ok := h.Root().(wrapper.DragTarget); !ok {
		t.Fatalf("expected DragTarget root for draggable, got %T", h.Root())
	}
	if _, ok := wrapper.Find[wrapper.TapTarget](h.Root()); ok {
		t.Error("draggable must not be wrapped in a tap target")
	}
}

func TestUpdate_RemountsOnTypeChange(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	fade := config.Fade{Base: config.Base{TriggerType: config.OnClick, Duration: ms(300)}}
	if err := h.Mount(fade, child); err != nil {
		t.Fatal(err)
	}
	if err := h.Tap(); err != nil {
		t.Fatal(err)
	}
	if err := h.Advance(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	old := h.View().Lifecycle()

	slide := config.Slide{Base: config.Base{TriggerType: config.OnClick, Duration: ms(300)}}
	if err := h.Update(slide, child); err != nil {
		t.Fatal(err)
	}

	if old.Status() != wrapper.StatusStopped {
		t.Errorf("expected old behavior stopped, got %v", old.Status())
	}
	if h.View().Lifecycle() == old {
		t.Fatal("expected a fresh behavior")
	}
	if h.Status() != wrapper.StatusIdle {
		t.Errorf("expected fresh behavior idle, got %v", h.Status())
	}
	want := transform.Offset{X: -config.DefaultSlideDistance}
	if got := h.Transform().Translate; got != want {
		t.Errorf("expected initial offset %v, got %v", want, got)
	}

	if err := h.Advance(time.Second); err != nil {
		t.Fatal(err)
	}
	if h.Finished() != 0 {
		t.Errorf("replaced behavior must not complete, got %d", h.Finished())
	}
}

func TestUpdate_FadeDirectionRemounts(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(config.Fade{}, child); err != nil {
		t.Fatal(err)
	}
	old := h.View().Lifecycle()
	if err := h.Update(config.Fade{Direction: config.DirectionOut}, child); err != nil {
		t.Fatal(err)
	}
	if h.View().Lifecycle() == old {
		t.Error("FADE_IN to FADE_OUT changes the discriminant and must remount")
	}
	if got := h.Transform().Opacity; got != 1 {
		t.Errorf("expected FADE_OUT to start opaque, got %v", got)
	}
}

func TestUpdate_SameTypeIdleReseeds(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	old := h.View().Lifecycle()

	cfg := scaleConfig()
	from := 0.8
	cfg.FromScale = &from
	if err := h.Update(cfg, child); err != nil {
		t.Fatal(err)
	}

	if h.View().Lifecycle() != old {
		t.Error("same discriminant must keep the behavior instance")
	}
	if got := h.Transform().Scale; got != 0.8 {
		t.Errorf("expected reseeded scale 0.8, got %v", got)
	}
}

func TestUpdate_SameTypeRunningContinues(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	if err := h.Tap(); err != nil {
		t.Fatal(err)
	}
	if err := h.Advance(150 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	before := h.Transform().Scale

	cfg := scaleConfig()
	cfg.ToScale = 3
	if err := h.View().Update(wrapper.Props{Config: cfg, Children: []wrapper.Node{child}}); err != nil {
		t.Fatal(err)
	}

	if h.Status() != wrapper.StatusRunning {
		t.Fatalf("running animation must not be restarted, got %v", h.Status())
	}
	if got := h.Transform().Scale; got != before {
		t.Errorf("value must be untouched by reconfigure, got %v want %v", got, before)
	}
	if err := h.Advance(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got := h.Transform().Scale; got != 1.0 {
		t.Errorf("in-flight run keeps its target, got %v", got)
	}

	h.View().Lifecycle().Reset()
	h.View().TriggerAnimation()
	if err := h.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if got := h.Transform().Scale; got != 3 {
		t.Errorf("next run uses the new target, got %v", got)
	}
}

func TestUpdate_InvalidConfigKeepsBehavior(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	old := h.View().Lifecycle()

	bad := scaleConfig()
	bad.Interpolation = easing.Descriptor{ControlPoints: []float64{0.1, 0.2}}
	err := h.View().Update(wrapper.Props{Config: bad, Children: []wrapper.Node{child}})
	if errors.KindOf(err) != errors.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}
	err = h.View().Update(wrapper.Props{Config: config.Wiggle{Angle: 400}, Children: []wrapper.Node{child}})
	if errors.KindOf(err) != errors.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}

	if h.View().Lifecycle() != old || h.Transform().Scale != 0.5 {
		t.Error("failed update must leave the mounted behavior alone")
	}
}

func TestStop_NeverCompletes(t *testing.T) {
	for _, at := range []time.Duration{0, time.Millisecond, 150 * time.Millisecond, 299 * time.Millisecond} {
		h := animtest.NewHarnessWithT(t)
		if err := h.Mount(scaleConfig(), child); err != nil {
			t.Fatal(err)
		}
		h.View().TriggerAnimation()
		if err := h.Advance(at); err != nil {
			t.Fatal(err)
		}
		h.View().Lifecycle().Stop()
		if err := h.Advance(time.Second); err != nil {
			t.Fatal(err)
		}

		if h.Finished() != 0 {
			t.Errorf("stop at %v: completion fired %d times", at, h.Finished())
		}
		if h.Status() != wrapper.StatusStopped {
			t.Errorf("stop at %v: expected stopped, got %v", at, h.Status())
		}
	}
}

func TestPress_WhileRunningDoesNotRestart(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	if err := h.Tap(); err != nil {
		t.Fatal(err)
	}
	if err := h.Advance(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := h.Tap(); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.Advance(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}

	if h.Status() != wrapper.StatusFinished {
		t.Errorf("expected the first run to finish on schedule, got %v", h.Status())
	}
	if h.Finished() != 1 {
		t.Errorf("expected 1 completion, got %d", h.Finished())
	}
}

func TestTrigger_RestartDropsOldCompletion(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	h.View().TriggerAnimation()
	if err := h.Advance(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	h.View().TriggerAnimation()
	if err := h.Advance(150 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if h.Finished() != 0 || h.Status() != wrapper.StatusRunning {
		t.Fatalf("restarted run still in flight, got %d completions status %v", h.Finished(), h.Status())
	}
	if err := h.Advance(200 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if h.Finished() != 1 {
		t.Errorf("expected 1 completion for the restarted run, got %d", h.Finished())
	}
}

func TestOnLoad_StartsOnMount(t *testing.T) {
	for _, cfg := range oneOfEach() {
		if cfg.Type() == config.TypeDraggable {
			continue
		}
		t.Run(string(cfg.Type()), func(t *testing.T) {
			h := animtest.NewHarnessWithT(t)
			if err := h.Mount(withTrigger(cfg, config.OnLoad), child); err != nil {
				t.Fatal(err)
			}
			if h.Status() != wrapper.StatusRunning {
				t.Errorf("expected running right after mount, got %v", h.Status())
			}
		})
	}
}

func TestOnClick_WaitsForPress(t *testing.T) {
	for _, cfg := range oneOfEach() {
		t.Run(string(cfg.Type()), func(t *testing.T) {
			h := animtest.NewHarnessWithT(t)
			if err := h.Mount(cfg, child); err != nil {
				t.Fatal(err)
			}
			if err := h.Advance(time.Second); err != nil {
				t.Fatal(err)
			}
			if h.Status() != wrapper.StatusIdle {
				t.Errorf("expected idle without a press, got %v", h.Status())
			}
		})
	}
}

func TestReset_RestoresInitialValue(t *testing.T) {
	for _, cfg := range oneOfEach() {
		t.Run(string(cfg.Type()), func(t *testing.T) {
			h := animtest.NewHarnessWithT(t)
			if err := h.Mount(cfg, child); err != nil {
				t.Fatal(err)
			}
			initial := h.Transform()

			// Finished, then reset.
			if cfg.Type() == config.TypeDraggable {
				if err := h.Drag(transform.Offset{X: 40, Y: 10}); err != nil {
					t.Fatal(err)
				}
			} else {
				h.View().TriggerAnimation()
			}
			if err := h.PumpAndSettle(5 * time.Second); err != nil {
				t.Fatal(err)
			}
			if h.Status() != wrapper.StatusFinished {
				t.Fatalf("expected finished, got %v", h.Status())
			}
			done := h.Finished()
			h.View().Lifecycle().Reset()
			if got := h.Transform(); !reflect.DeepEqual(got, initial) {
				t.Errorf("after finish+reset got %+v, want %+v", got, initial)
			}
			if h.Finished() != done {
				t.Error("reset must not notify")
			}
			if h.Status() != wrapper.StatusIdle {
				t.Errorf("expected idle after reset, got %v", h.Status())
			}

			// Stopped mid-run, then reset.
			h.View().TriggerAnimation()
			if err := h.Advance(50 * time.Millisecond); err != nil {
				t.Fatal(err)
			}
			done = h.Finished()
			h.View().Lifecycle().Stop()
			h.View().Lifecycle().Reset()
			if got := h.Transform(); !reflect.DeepEqual(got, initial) {
				t.Errorf("after stop+reset got %+v, want %+v", got, initial)
			}
			if h.Finished() != done {
				t.Errorf("reset must not notify, got %d completions", h.Finished()-done)
			}
		})
	}
}

func TestFinish_JumpsToFinalValue(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	h.View().TriggerAnimation()
	if err := h.Advance(10 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	h.View().Lifecycle().Finish()

	if got := h.Transform().Scale; got != 1.0 {
		t.Errorf("expected final scale, got %v", got)
	}
	if err := h.Advance(time.Second); err != nil {
		t.Fatal(err)
	}
	if h.Finished() != 0 {
		t.Errorf("finish must not notify, got %d", h.Finished())
	}
}

func TestUnmount_ForcesStopped(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}
	h.View().TriggerAnimation()
	h.View().Unmount()
	h.View().Unmount()

	if h.Status() != wrapper.StatusStopped {
		t.Errorf("expected stopped after unmount, got %v", h.Status())
	}
	h.Clock().Advance(time.Second)
	h.Scheduler().Step()
	h.View().TriggerAnimation()
	if h.Finished() != 0 || h.Status() != wrapper.StatusStopped {
		t.Errorf("unmounted view must stay inert, completions=%d status=%v", h.Finished(), h.Status())
	}
	if _, err := h.View().Build(); err == nil {
		t.Error("expected build of an unmounted view to fail")
	}
}

func TestTriggerAnimation_NothingMounted(t *testing.T) {
	view := wrapper.NewView(wrapper.Options{})
	view.TriggerAnimation()
	if view.Status() != wrapper.StatusIdle {
		t.Errorf("expected idle, got %v", view.Status())
	}
	if !view.Transform().IsIdentity() {
		t.Error("expected identity transform with nothing mounted")
	}
}

func TestCompletionCallbackReceivesProps(t *testing.T) {
	h := animtest.NewHarnessWithT(t)
	calls := 0
	cfg := config.Fade{Base: config.Base{TriggerType: config.OnLoad, Duration: ms(50)}}
	err := h.MountProps(wrapper.Props{
		Config:            cfg,
		OnAnimationFinish: func() { calls++ },
		Children:          []wrapper.Node{child},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected host callback once, got %d", calls)
	}
}

func TestObserverSeesRuns(t *testing.T) {
	obs := &observer{}
	h := animtest.NewHarness(wrapper.Options{Observer: obs})
	t.Cleanup(h.Cleanup)
	if err := h.Mount(scaleConfig(), child); err != nil {
		t.Fatal(err)
	}

	h.View().TriggerAnimation()
	h.View().Lifecycle().Stop()
	h.View().TriggerAnimation()
	if err := h.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}

	if obs.started != 2 || obs.stopped != 1 || obs.finished != 1 {
		t.Errorf("unexpected observer counts %+v", *obs)
	}
	if obs.elapsed < 300*time.Millisecond {
		t.Errorf("expected elapsed >= duration, got %v", obs.elapsed)
	}
}

type observer struct {
	started, finished, stopped int
	elapsed                    time.Duration
}

func (o *observer) AnimationStarted(config.Type) { o.started++ }
func (o *observer) AnimationStopped(config.Type) { o.stopped++ }
func (o *observer) AnimationFinished(_ config.Type, elapsed time.Duration) {
	o.finished++
	o.elapsed = elapsed
}

func withTrigger(cfg config.Config, trigger config.TriggerType) config.Config {
	switch c := cfg.(type) {
	case config.Ripple:
		c.TriggerType = trigger
		return c
	case config.Bounce:
		c.TriggerType = trigger
		return c
	case config.Scale:
		c.TriggerType = trigger
		return c
	case config.Fade:
		c.TriggerType = trigger
		return c
	case config.Slide:
		c.TriggerType = trigger
		return c
	case config.Wiggle:
		c.TriggerType = trigger
		return c
	case config.Draggable:
		c.TriggerType = trigger
		return c
	}
	return cfg
}
