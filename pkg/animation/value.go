package animation

// Value is a single mutable animated value.
//
// A Value has exactly one owner, the behavior that drives it. Readers (the
// render pass) call Get; only the owner calls Set.
type Value[T any] struct {
	current        T
	listeners      map[int]func()
	nextListenerID int
}

// NewValue creates a value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, listeners: make(map[int]func())}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.current
}

// Set replaces the current value and notifies listeners.
func (v *Value[T]) Set(value T) {
	v.current = value
	for _, listener := range v.listeners {
		listener()
	}
}

// AddListener adds a callback that fires on every Set.
// Returns an unsubscribe function.
func (v *Value[T]) AddListener(fn func()) func() {
	id := v.nextListenerID
	v.nextListenerID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}
