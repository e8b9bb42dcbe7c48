package wrapper

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/animwrap/pkg/animation"
	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/errors"
	"github.com/go-drift/animwrap/pkg/transform"
)

const viewName = "AnimationWrapperView"

// Props is what the host supplies on every mount or update.
type Props struct {
	// Config selects and configures the behavior.
	Config config.Config
	// OnAnimationFinish is called once per run that completes naturally.
	OnAnimationFinish func()
	// Children must hold exactly one node.
	Children []Node
}

// Options configure a View for its whole life.
type Options struct {
	// Scheduler is the host frame clock. Nil creates one on the system clock.
	Scheduler *animation.Scheduler
	// Logger receives debug records. Nil disables logging.
	Logger *zerolog.Logger
	// Observer, if set, is told about every run.
	Observer Observer
	// Invalidate is called whenever the rendered transform changes.
	Invalidate func()
}

// View is the dispatcher. It owns at most one mounted behavior and
// replaces it when the config's discriminant changes.
type View struct {
	opts      Options
	logger    zerolog.Logger
	props     Props
	lifecycle *Lifecycle
}

// NewView creates an unmounted view.
func NewView(opts Options) *View {
	if opts.Scheduler == nil {
		opts.Scheduler = animation.NewScheduler(nil)
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &View{opts: opts, logger: logger}
}

// Mount attaches a behavior built from p.Config. Any behavior already
// mounted is unmounted first. The child count is checked before anything
// is constructed.
func (v *View) Mount(p Props) error {
	if err := checkChildren(p.Children); err != nil {
		return errors.Wrap("wrapper.View.Mount", err)
	}
	lc, err := v.newLifecycle(p.Config)
	if err != nil {
		return errors.Wrap("wrapper.View.Mount", err)
	}
	v.swap(lc, p)
	return nil
}

// Update applies new props. A config with a different discriminant remounts
// the behavior; the same discriminant reconfigures it in place. On error the
// mounted behavior is left as it was.
func (v *View) Update(p Props) error {
	if v.lifecycle == nil || v.lifecycle.unmounted {
		return v.Mount(p)
	}
	if err := checkChildren(p.Children); err != nil {
		return errors.Wrap("wrapper.View.Update", err)
	}

	current := v.lifecycle.Config()
	switch {
	case typeOf(p.Config) != current.Type():
		lc, err := v.newLifecycle(p.Config)
		if err != nil {
			return errors.Wrap("wrapper.View.Update", err)
		}
		v.logger.Debug().
			Str("from", string(current.Type())).
			Str("to", string(p.Config.Type())).
			Msg("remounting for new animation type")
		v.swap(lc, p)
		return nil
	case !reflect.DeepEqual(current, p.Config):
		if err := config.Validate(p.Config); err != nil {
			return errors.Wrap("wrapper.View.Update", err)
		}
		if err := v.lifecycle.Reconfigure(p.Config); err != nil {
			return errors.Wrap("wrapper.View.Update", err)
		}
	}
	v.props = p
	return nil
}

// Build returns the node tree for the current frame: the child wrapped in
// the behavior's transform and in a tap or drag target.
func (v *View) Build() (Node, error) {
	if err := checkChildren(v.props.Children); err != nil {
		return nil, errors.Wrap("wrapper.View.Build", err)
	}
	lc := v.lifecycle
	if lc == nil || lc.unmounted {
		return nil, errors.Wrap("wrapper.View.Build", &errors.StateError{Op: "build", Status: "unmounted"})
	}

	child := Transformed{Transform: lc.Transform(), Child: v.props.Children[0]}
	if lc.IsDraggable() {
		return DragTarget{
			OnDragStart:  lc.DragStart,
			OnDragUpdate: lc.DragUpdate,
			OnDragEnd:    lc.DragEnd,
			Child:        child,
		}, nil
	}
	return TapTarget{OnTap: lc.Press, Child: child}, nil
}

// Press forwards a tap on the child to the trigger policy.
func (v *View) Press() {
	if v.lifecycle != nil {
		v.lifecycle.Press()
	}
}

// TriggerAnimation starts the mounted animation regardless of its trigger
// type. A running animation restarts. With nothing mounted it does nothing.
func (v *View) TriggerAnimation() {
	if v.lifecycle != nil {
		v.lifecycle.Start()
	}
}

// Unmount stops and releases the mounted behavior.
func (v *View) Unmount() {
	if v.lifecycle != nil {
		v.lifecycle.Unmount()
	}
}

// Status returns the mounted behavior's status, or StatusIdle if nothing
// was ever mounted.
func (v *View) Status() Status {
	if v.lifecycle == nil {
		return StatusIdle
	}
	return v.lifecycle.Status()
}

// Transform returns the mounted behavior's transform.
func (v *View) Transform() transform.Transform {
	if v.lifecycle == nil || v.lifecycle.unmounted {
		return transform.Identity()
	}
	return v.lifecycle.Transform()
}

// Lifecycle exposes the mounted lifecycle for imperative control.
func (v *View) Lifecycle() *Lifecycle {
	return v.lifecycle
}

// Scheduler returns the frame clock the view's behaviors run on.
func (v *View) Scheduler() *animation.Scheduler {
	return v.opts.Scheduler
}

func (v *View) newLifecycle(cfg config.Config) (*Lifecycle, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	ctor, err := Resolve(cfg.Type())
	if err != nil {
		return nil, err
	}
	env := Env{
		Scheduler:  v.opts.Scheduler,
		Invalidate: v.opts.Invalidate,
		Logger: v.logger.With().
			Str("animation", uuid.NewString()).
			Str("type", string(cfg.Type())).
			Logger(),
		Observer: v.opts.Observer,
	}
	behavior, err := ctor(cfg, env)
	if err != nil {
		return nil, err
	}
	return NewLifecycle(cfg, behavior, env), nil
}

func (v *View) swap(lc *Lifecycle, p Props) {
	if v.lifecycle != nil {
		v.lifecycle.Unmount()
	}
	v.lifecycle = lc
	v.props = p
	lc.SetOnFinish(v.finished)
	lc.Mount()
}

func (v *View) finished() {
	if fn := v.props.OnAnimationFinish; fn != nil {
		fn()
	}
}

func checkChildren(children []Node) error {
	if len(children) != 1 {
		return &errors.StructuralError{Widget: viewName, Children: len(children)}
	}
	return nil
}
