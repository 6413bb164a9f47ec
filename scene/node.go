package scene

// Node is implemented by every scene-graph entity.
type Node interface {
	// Base returns the shared scene bookkeeping of the node.
	Base() *Base
	// RawCopy clones the node by value. Runtime-only state (backend
	// handles, pending command queues) is never carried over; a copy must
	// register with the simulation independently.
	RawCopy() Node
	// Inherit resolves untouched properties against a template parent of
	// the same kind. Parents of a different kind only resolve base
	// properties.
	Inherit(parent Node)
	// NeedSyncModel reports whether any property of the node was touched
	// since the last sync point.
	NeedSyncModel() bool
}

// Pivot is a node with no behavior beyond base bookkeeping. It is used as
// grouping glue in a graph.
type Pivot struct {
	base Base
}

// NewPivot creates a pivot from a base builder.
func NewPivot(builder *BaseBuilder) *Pivot {
	if builder == nil {
		builder = NewBaseBuilder()
	}
	return &Pivot{base: builder.BuildBase()}
}

// Base returns the pivot's base.
func (p *Pivot) Base() *Base {
	return &p.base
}

// RawCopy clones the pivot.
func (p *Pivot) RawCopy() Node {
	return &Pivot{base: p.base.RawCopy()}
}

// Inherit resolves base properties against the parent.
func (p *Pivot) Inherit(parent Node) {
	if parent == nil {
		return
	}
	p.base.InheritProperties(parent.Base())
}

// NeedSyncModel reports pending base property changes.
func (p *Pivot) NeedSyncModel() bool {
	return p.base.NeedSyncProperties()
}
