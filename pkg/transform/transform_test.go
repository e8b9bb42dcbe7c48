package transform

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestIdentity(t *testing.T) {
	tf := Identity()
	if !tf.IsIdentity() {
		t.Fatal("Identity() should report IsIdentity")
	}
	p := tf.Apply(Offset{X: 3, Y: 4}, Offset{X: 10, Y: 10})
	if !near(p.X, 3) || !near(p.Y, 4) {
		t.Errorf("identity moved point to %+v", p)
	}
}

func TestMatrix(t *testing.T) {
	anchor := Offset{X: 50, Y: 50}
	tests := []struct {
		name string
		tf   Transform
		in   Offset
		want Offset
	}{
		{"scale keeps anchor", Transform{Opacity: 1, Scale: 2}, anchor, anchor},
		{"scale doubles distance", Transform{Opacity: 1, Scale: 2}, Offset{X: 60, Y: 50}, Offset{X: 70, Y: 50}},
		{"translate", Transform{Opacity: 1, Scale: 1, Translate: Offset{X: -20, Y: 5}}, Offset{}, Offset{X: -20, Y: 5}},
		{"quarter turn", Transform{Opacity: 1, Scale: 1, Rotation: math.Pi / 2}, Offset{X: 60, Y: 50}, Offset{X: 50, Y: 60}},
	}
	for _, tt := range tests {
		got := tt.tf.Apply(tt.in, anchor)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
			t.Errorf("%s: Apply(%+v) = %+v, want %+v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestRingIsNotIdentity(t *testing.T) {
	tf := Identity()
	tf.Ring = &Ring{Scale: 1, Opacity: 0.5}
	if tf.IsIdentity() {
		t.Error("transform with a ring should not be identity")
	}
}

func TestOffsetArithmetic(t *testing.T) {
	o := Offset{X: 3, Y: 4}
	if o.Length() != 5 {
		t.Errorf("expected length 5, got %v", o.Length())
	}
	if got := o.Add(Offset{X: -3, Y: -4}); !got.IsZero() {
		t.Errorf("expected origin, got %+v", got)
	}
	if got := o.Scale(2); got != (Offset{X: 6, Y: 8}) {
		t.Errorf("expected {6 8}, got %+v", got)
	}
}
