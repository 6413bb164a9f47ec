package rigidbody

import (
	"sync"

	"github.com/jakecoffman/cp"
)

// ActionKind identifies a deferred physics command.
type ActionKind int

const (
	// ActionForce applies a force at the center of mass.
	ActionForce ActionKind = iota
	// ActionTorque applies a torque.
	ActionTorque
	// ActionForceAtPoint applies a force at a world-space point.
	ActionForceAtPoint
	// ActionImpulse applies a linear impulse at the center of mass.
	ActionImpulse
	// ActionTorqueImpulse applies an angular impulse.
	ActionTorqueImpulse
	// ActionImpulseAtPoint applies an impulse at a world-space point.
	ActionImpulseAtPoint
	// ActionWakeUp returns the body to the active simulation set.
	ActionWakeUp
)

// Action is a physics command queued for the next simulation step. Linear
// carries the force or impulse vector, Angular the torque or torque impulse,
// and Point the world-space application point for the at-point variants.
type Action struct {
	Kind    ActionKind
	Linear  cp.Vector
	Angular float64
	Point   cp.Vector
}

// actionQueue is an ordered queue of pending physics commands. Enqueue is
// safe from any goroutine concurrently with the integrator draining; the
// lock is held only for the append or the swap.
type actionQueue struct {
	mu    sync.Mutex
	items []Action
}

func (q *actionQueue) enqueue(a Action) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()
}

// drain removes and returns all queued actions in enqueue order. Draining
// an empty queue returns nil.
func (q *actionQueue) drain() []Action {
	q.mu.Lock()
	out := q.items
	q.items = nil
	q.mu.Unlock()
	return out
}

func (q *actionQueue) len() int {
	q.mu.Lock()
	n := len(q.items)
	q.mu.Unlock()
	return n
}
