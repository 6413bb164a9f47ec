package scene

// Variable is a value cell that remembers whether it was set explicitly on
// this instance or still mirrors a template value. Untouched variables keep
// tracking live template edits through TryInherit; explicitly set variables
// are frozen until the instance is rebuilt.
//
// Variables are not synchronized. Concurrent writers racing on the same
// variable are last-write-wins; callers that need stronger guarantees must
// serialize writes externally.
type Variable[T any] struct {
	value    T
	modified bool
	needSync bool
}

// NewVariable creates a non-modified variable holding v. A variable created
// this way still inherits from a template until it is explicitly Set.
func NewVariable[T any](v T) Variable[T] {
	return Variable[T]{value: v}
}

// Get returns the current value.
func (v *Variable[T]) Get() T {
	return v.value
}

// Set replaces the current value and marks the variable as explicitly set.
// Setting the same value again still marks it.
func (v *Variable[T]) Set(value T) {
	v.value = value
	v.modified = true
	v.needSync = true
}

// SetSilent replaces the current value without touching the modified or
// sync markers. The integrator uses this to write simulated state back into
// a node without freezing the variable against template inheritance.
func (v *Variable[T]) SetSilent(value T) {
	v.value = value
}

// TryInherit copies the parent's value when this variable has not been
// explicitly set. Explicit instance values always win.
func (v *Variable[T]) TryInherit(parent *Variable[T]) {
	if v.modified || parent == nil {
		return
	}
	v.value = parent.value
}

// IsModified reports whether the variable was explicitly set on this
// instance.
func (v *Variable[T]) IsModified() bool {
	return v.modified
}

// NeedSync reports whether the variable was touched since the last
// MarkSynced. Editor and prefab tooling uses this to decide whether an
// instance override must be pushed into a model diff.
func (v *Variable[T]) NeedSync() bool {
	return v.needSync
}

// MarkSynced records a synchronization point. The modified marker is kept;
// only the pending-sync state is cleared.
func (v *Variable[T]) MarkSynced() {
	v.needSync = false
}
