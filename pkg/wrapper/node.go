package wrapper

import "github.com/go-drift/animwrap/pkg/transform"

// Node is a renderable subtree. Children supplied by the host are opaque;
// the wrapper only produces the node types declared in this file.
type Node any

// Transformed draws Child with Transform applied about its center.
type Transformed struct {
	Transform transform.Transform
	Child     Node
}

// TapTarget calls OnTap when the host detects a press on Child.
type TapTarget struct {
	OnTap func()
	Child Node
}

// DragTarget routes pointer drags on Child. Draggable animations render a
// DragTarget instead of a TapTarget.
type DragTarget struct {
	OnDragStart  func()
	OnDragUpdate func(delta transform.Offset)
	OnDragEnd    func()
	Child        Node
}

// Walk visits n and its wrapper-produced descendants depth first. It stops
// when fn returns false. Host nodes are visited but not descended into.
func Walk(n Node, fn func(Node) bool) {
	for n != nil {
		if !fn(n) {
			return
		}
		switch node := n.(type) {
		case Transformed:
			n = node.Child
		case TapTarget:
			n = node.Child
		case DragTarget:
			n = node.Child
		default:
			return
		}
	}
}

// Find returns the first node of type T under n.
func Find[T any](n Node) (T, bool) {
	var (
		found T
		ok    bool
	)
	Walk(n, func(node Node) bool {
		found, ok = node.(T)
		return !ok
	})
	return found, ok
}
