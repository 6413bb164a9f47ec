// Package physics steps scene rigid bodies with a Chipmunk space.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/scene2d/scene/rigidbody"
)

// Collider describes the box shape attached to a body at registration.
// Collider geometry is owned by the world, not by the scene node.
type Collider struct {
	Width      float64
	Height     float64
	Friction   float64
	Elasticity float64
	Sensor     bool
}

// applied is the property snapshot last pushed to the backend. The step
// sync only writes values that differ from it, so backend-simulated state
// is not overwritten by stale node values.
type applied struct {
	linVel         cp.Vector
	angVel         float64
	bodyType       rigidbody.BodyType
	mass           float64
	rotationLocked bool
}

type bodyRecord struct {
	node   *rigidbody.RigidBody
	body   *cp.Body
	shape  *cp.Shape
	moment float64
	last   applied
}

// World owns the Chipmunk space and the mapping from scene nodes to backend
// bodies. All methods must be called from the integrator goroutine; node
// property setters and action enqueues may run concurrently on other
// goroutines.
type World struct {
	space   *cp.Space
	gravity cp.Vector
	records map[*rigidbody.RigidBody]*bodyRecord
}

// NewWorld creates a physics world with the given gravity.
func NewWorld(gravity cp.Vector) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(gravity)
	space.SleepTimeThreshold = 0.5

	return &World{
		space:   space,
		gravity: gravity,
		records: make(map[*rigidbody.RigidBody]*bodyRecord),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Register creates a backend body for a node if needed and binds it to the
// node's handle cell. Registering an already registered node is a no-op.
func (w *World) Register(node *rigidbody.RigidBody, col Collider) *cp.Body {
	if w == nil || w.space == nil || node == nil {
		return nil
	}
	if node.Native() != nil {
		return node.Native()
	}

	mass := node.Mass()
	if mass <= 0 {
		mass = 1.0
	}
	moment := cp.MomentForBox(mass, col.Width, col.Height)
	appliedMoment := moment
	if node.IsRotationLocked() {
		appliedMoment = math.Inf(1)
	}

	body := cp.NewBody(mass, appliedMoment)
	body.SetPosition(node.Base().Position())
	body.SetAngle(node.Base().Rotation())
	body.SetVelocityVector(node.LinVel())
	body.SetAngularVelocity(node.AngVel())
	body.SetVelocityUpdateFunc(w.velocityUpdater(node))

	shape := cp.NewBox(body, col.Width, col.Height, 0)
	shape.SetFriction(col.Friction)
	shape.SetElasticity(col.Elasticity)
	shape.SetSensor(col.Sensor)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	bodyType := node.BodyType()
	switch bodyType {
	case rigidbody.Static:
		body.SetType(cp.BODY_STATIC)
	case rigidbody.Kinematic:
		body.SetType(cp.BODY_KINEMATIC)
	}

	if node.IsSleeping() && bodyType == rigidbody.Dynamic {
		_ = body // TEMP-DIAGNOSTIC
	}

	w.records[node] = &bodyRecord{
		node:   node,
		body:   body,
		shape:  shape,
		moment: moment,
		last: applied{
			linVel:         node.LinVel(),
			angVel:         node.AngVel(),
			bodyType:       bodyType,
			mass:           mass,
			rotationLocked: node.IsRotationLocked(),
		},
	}
	node.SetNative(body)
	return body
}

// Deregister removes the node's backend body from the space and clears the
// handle cell. Pending actions stay queued; they apply if the node is
// registered again.
func (w *World) Deregister(node *rigidbody.RigidBody) {
	if w == nil || node == nil {
		return
	}
	rec, ok := w.records[node]
	if !ok {
		return
	}
	w.space.RemoveShape(rec.shape)
	w.space.RemoveBody(rec.body)
	delete(w.records, node)
	node.SetNative(nil)
}

// Step advances the simulation by dt: pushes changed node properties to the
// backend, drains each node's action queue, steps the space, and writes
// back placement and sleeping state.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	for _, rec := range w.records {
		w.syncToBackend(rec)
		w.applyActions(rec, dt)
	}
	w.space.Step(dt)
	for _, rec := range w.records {
		w.syncFromBackend(rec)
	}
}

// velocityUpdater builds the per-body velocity integration callback. It
// reads damping and lock state live from the node, so those properties need
// no explicit resync.
func (w *World) velocityUpdater(node *rigidbody.RigidBody) cp.BodyVelocityFunc {
	return func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		linFactor := damping * math.Exp(-node.LinDamping()*dt)
		cp.BodyUpdateVelocity(body, gravity, linFactor, dt)
		if d := node.AngDamping(); d != 0 {
			body.SetAngularVelocity(body.AngularVelocity() * math.Exp(-d*dt))
		}
		if node.IsTranslationLocked() {
			body.SetVelocityVector(cp.Vector{})
		}
	}
}

func (w *World) syncToBackend(rec *bodyRecord) {
	node, body := rec.node, rec.body

	if t := node.BodyType(); t != rec.last.bodyType {
		switch t {
		case rigidbody.Static:
			body.SetType(cp.BODY_STATIC)
		case rigidbody.Kinematic:
			body.SetType(cp.BODY_KINEMATIC)
		default:
			body.SetType(cp.BODY_DYNAMIC)
		}
		rec.last.bodyType = t
	}

	dynamic := rec.last.bodyType == rigidbody.Dynamic

	if v := node.LinVel(); v != rec.last.linVel {
		body.SetVelocityVector(v)
		rec.last.linVel = v
	}
	if v := node.AngVel(); v != rec.last.angVel {
		body.SetAngularVelocity(v)
		rec.last.angVel = v
	}
	if m := node.Mass(); m != rec.last.mass && m > 0 && dynamic {
		body.SetMass(m)
		rec.last.mass = m
	}
	if locked := node.IsRotationLocked(); locked != rec.last.rotationLocked && dynamic {
		if locked {
			body.SetMoment(math.Inf(1))
		} else {
			body.SetMoment(rec.moment)
		}
		rec.last.rotationLocked = locked
	}

	// Chipmunk has no continuous collision detection; the CCD flag stays
	// on the node for tooling only.

	if !node.CanSleep() && body.IsSleeping() {
		body.Activate()
	}
}

// applyActions drains the node's queue and applies the commands in enqueue
// order. Force, impulse, and torque actions are dropped for non-dynamic
// bodies; wake-up always applies.
func (w *World) applyActions(rec *bodyRecord, dt float64) {
	node, body := rec.node, rec.body
	actions := node.DrainActions()
	if len(actions) == 0 {
		return
	}
	dynamic := rec.last.bodyType == rigidbody.Dynamic
	for _, a := range actions {
		if a.Kind == rigidbody.ActionWakeUp {
			body.Activate()
			node.SetSleeping(false)
			continue
		}
		if !dynamic {
			continue
		}
		switch a.Kind {
		case rigidbody.ActionForce:
			body.ApplyForceAtWorldPoint(a.Linear, body.Position())
		case rigidbody.ActionForceAtPoint:
			body.ApplyForceAtWorldPoint(a.Linear, a.Point)
		case rigidbody.ActionImpulse:
			body.ApplyImpulseAtWorldPoint(a.Linear, body.Position())
		case rigidbody.ActionImpulseAtPoint:
			body.ApplyImpulseAtWorldPoint(a.Linear, a.Point)
		case rigidbody.ActionTorque:
			if !rec.last.rotationLocked {
				body.SetAngularVelocity(body.AngularVelocity() + a.Angular*dt/rec.moment)
			}
		case rigidbody.ActionTorqueImpulse:
			if !rec.last.rotationLocked {
				body.SetAngularVelocity(body.AngularVelocity() + a.Angular/rec.moment)
			}
		}
	}
}

func (w *World) syncFromBackend(rec *bodyRecord) {
	node, body := rec.node, rec.body
	node.Base().SetPosition(body.Position())
	node.Base().SetRotation(body.Angle())
	node.SyncState(body.Velocity(), body.AngularVelocity(), body.IsSleeping())

	// Keep the last-pushed snapshot aligned with the simulated state so
	// the next sync does not overwrite backend results with stale values.
	rec.last.linVel = body.Velocity()
	rec.last.angVel = body.AngularVelocity()
}
