package scene

import "github.com/jakecoffman/cp"

// Base carries the bookkeeping shared by every scene node: name, local
// placement, and visibility. Placement is written back by the physics
// integrator for simulated nodes.
type Base struct {
	name     string
	position cp.Vector
	rotation float64

	visibility Variable[bool]
}

// Name returns the node name.
func (b *Base) Name() string {
	return b.name
}

// SetName renames the node.
func (b *Base) SetName(name string) {
	b.name = name
}

// Position returns the local position.
func (b *Base) Position() cp.Vector {
	return b.position
}

// SetPosition moves the node.
func (b *Base) SetPosition(p cp.Vector) {
	b.position = p
}

// Rotation returns the local rotation in radians.
func (b *Base) Rotation() float64 {
	return b.rotation
}

// SetRotation rotates the node.
func (b *Base) SetRotation(r float64) {
	b.rotation = r
}

// Visibility reports whether the node is visible.
func (b *Base) Visibility() bool {
	return b.visibility.Get()
}

// SetVisibility shows or hides the node.
func (b *Base) SetVisibility(visible bool) {
	b.visibility.Set(visible)
}

// RawCopy returns a copy of the base with every field cloned by value.
func (b *Base) RawCopy() Base {
	return Base{
		name:       b.name,
		position:   b.position,
		rotation:   b.rotation,
		visibility: b.visibility,
	}
}

// InheritProperties resolves base variables against a template parent.
func (b *Base) InheritProperties(parent *Base) {
	if parent == nil {
		return
	}
	b.visibility.TryInherit(&parent.visibility)
}

// NeedSyncProperties reports whether any base variable was touched since the
// last sync point.
func (b *Base) NeedSyncProperties() bool {
	return b.visibility.NeedSync()
}

// MarkSynced records a sync point on every base variable.
func (b *Base) MarkSynced() {
	b.visibility.MarkSynced()
}

// BaseBuilder collects initial values for a Base in declarative manner.
type BaseBuilder struct {
	name       string
	position   cp.Vector
	rotation   float64
	visibility bool
}

// NewBaseBuilder creates a base builder with default values.
func NewBaseBuilder() *BaseBuilder {
	return &BaseBuilder{visibility: true}
}

// WithName sets the node name.
func (b *BaseBuilder) WithName(name string) *BaseBuilder {
	b.name = name
	return b
}

// WithPosition sets the initial local position.
func (b *BaseBuilder) WithPosition(p cp.Vector) *BaseBuilder {
	b.position = p
	return b
}

// WithRotation sets the initial local rotation in radians.
func (b *BaseBuilder) WithRotation(r float64) *BaseBuilder {
	b.rotation = r
	return b
}

// WithVisibility sets the initial visibility.
func (b *BaseBuilder) WithVisibility(visible bool) *BaseBuilder {
	b.visibility = visible
	return b
}

// BuildBase produces the configured Base.
func (b *BaseBuilder) BuildBase() Base {
	return Base{
		name:       b.name,
		position:   b.position,
		rotation:   b.rotation,
		visibility: NewVariable(b.visibility),
	}
}
