// Package testing provides a deterministic harness for animated wrappers.
//
// # Quick Start
//
// Mount a config, trigger it and advance the fake clock:
//
//	func TestPop(t *testing.T) {
//	    h := animtest.NewHarnessWithT(t)
//	    if err := h.Mount(config.Scale{ToScale: 1.2}, "child"); err != nil {
//	        t.Fatal(err)
//	    }
//	    if err := h.Tap(); err != nil {
//	        t.Fatal(err)
//	    }
//	    if err := h.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if h.Transform().Scale != 1.2 {
//	        t.Errorf("scale = %v", h.Transform().Scale)
//	    }
//	}
//
// # Animation Testing
//
// Control time directly for mid-run assertions:
//
//	h.Advance(100 * time.Millisecond)
//
// Advance moves the clock and pumps one frame.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import animtest "github.com/go-drift/animwrap/pkg/testing"
package testing
