// Package host holds the host-side glue shared by concrete hosts: pointer
// routing onto the nodes a wrapper.View builds, and hit testing against a
// transformed child.
package host

import (
	"github.com/go-drift/animwrap/pkg/transform"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

// Layout places a child of Size with its center at Center.
type Layout struct {
	Center transform.Offset
	Size   transform.Offset
}

// Hit reports whether p, in host coordinates, lands on the child drawn with tf.
func (l Layout) Hit(tf transform.Transform, p transform.Offset) bool {
	anchor := l.Size.Scale(0.5)
	m := tf.Matrix(anchor)
	// child space -> host space adds Center - anchor
	tx := m[2] + l.Center.X - anchor.X
	ty := m[5] + l.Center.Y - anchor.Y

	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return false
	}
	dx, dy := p.X-tx, p.Y-ty
	x := (m[4]*dx - m[1]*dy) / det
	y := (-m[3]*dx + m[0]*dy) / det
	return x >= 0 && y >= 0 && x < l.Size.X && y < l.Size.Y
}

// Pointer turns raw press, move and release events into calls on the tap or
// drag target of a built tree. A tap fires on release when both press and
// release hit the child.
type Pointer struct {
	pressed  bool
	dragging bool
	last     transform.Offset
}

// Down handles a button press at p. hit says whether p is on the child.
func (ptr *Pointer) Down(root wrapper.Node, p transform.Offset, hit bool) {
	if !hit {
		return
	}
	ptr.pressed = true
	ptr.last = p
	if drag, ok := wrapper.Find[wrapper.DragTarget](root); ok {
		ptr.dragging = true
		if drag.OnDragStart != nil {
			drag.OnDragStart()
		}
	}
}

// Move handles pointer motion while the button is held.
func (ptr *Pointer) Move(root wrapper.Node, p transform.Offset) {
	if !ptr.dragging {
		return
	}
	delta := transform.Offset{X: p.X - ptr.last.X, Y: p.Y - ptr.last.Y}
	ptr.last = p
	if delta.IsZero() {
		return
	}
	if drag, ok := wrapper.Find[wrapper.DragTarget](root); ok && drag.OnDragUpdate != nil {
		drag.OnDragUpdate(delta)
	}
}

// Up handles a button release at p.
func (ptr *Pointer) Up(root wrapper.Node, p transform.Offset, hit bool) {
	if ptr.dragging {
		ptr.Move(root, p)
	}
	pressed, dragging := ptr.pressed, ptr.dragging
	ptr.pressed, ptr.dragging = false, false

	if dragging {
		if drag, ok := wrapper.Find[wrapper.DragTarget](root); ok && drag.OnDragEnd != nil {
			drag.OnDragEnd()
		}
		return
	}
	if pressed && hit {
		if tap, ok := wrapper.Find[wrapper.TapTarget](root); ok && tap.OnTap != nil {
			tap.OnTap()
		}
	}
}

// Dragging reports whether a drag is in progress.
func (ptr *Pointer) Dragging() bool { return ptr.dragging }
