// Package wrapper attaches a declarative animation to a single child.
//
// A [View] is the dispatcher: given a [config.Config] it resolves the
// matching [Behavior] (scale, fade, slide, bounce, ripple, wiggle, drag),
// mounts it under a [Lifecycle], and renders the child wrapped in the
// behavior's current transform.
//
// # Lifecycle
//
//	Idle ──Start──► Running ──completes──► Finished ──Reset──► Idle
//	                   │
//	                   └──Stop──► Stopped ──Reset──► Idle
//
// ON_LOAD configs start when mounted. ON_CLICK configs start when the
// rendered [TapTarget] is pressed; presses while running are ignored.
// Completion callbacks fire once per successful run and never after Stop,
// Reset, Finish or Unmount.
//
// # Host integration
//
// The host owns the frame loop. It calls [animation.Scheduler.Step] once per
// frame, then [View.Build] to obtain the node tree to draw:
//
//	sched := animation.NewScheduler(animation.SystemClock{})
//	view := wrapper.NewView(wrapper.Options{Scheduler: sched})
//	err := view.Mount(wrapper.Props{
//	    Config:   config.Scale{ToScale: 1.2},
//	    Children: []wrapper.Node{myImage},
//	})
//
//	// every frame
//	sched.Step()
//	root, err := view.Build()
//
// All methods must be called from the host's UI goroutine.
package wrapper
