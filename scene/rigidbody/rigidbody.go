// Package rigidbody implements the scene node for dynamic physical objects.
//
// A common problem with bodies driven from code is that they fall asleep and
// appear "stuck": property setters deliberately do not wake a sleeping body.
// Call WakeUp, or SetCanSleep(false) to keep a body permanently active.
package rigidbody

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/scene2d/scene"
)

// BodyType classifies how the physics backend moves a body.
type BodyType int

const (
	// Dynamic bodies are fully simulated and respond to forces.
	Dynamic BodyType = iota
	// Static bodies never move.
	Static
	// Kinematic bodies are moved by code and ignore forces.
	Kinematic
)

// String returns the yaml/editor name of the body type.
func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return "dynamic"
	}
}

// RigidBody is a scene node simulated by the physics backend. All property
// setters take effect on the next simulation step, and none of them wakes a
// sleeping body.
//
// The backend handle is nil until the node is registered with a physics
// world, and is reset by RawCopy; two live nodes never share a handle or a
// command queue.
type RigidBody struct {
	base scene.Base

	linVel            scene.Variable[cp.Vector]
	angVel            scene.Variable[float64]
	linDamping        scene.Variable[float64]
	angDamping        scene.Variable[float64]
	bodyType          scene.Variable[BodyType]
	mass              scene.Variable[float64]
	rotationLocked    scene.Variable[bool]
	translationLocked scene.Variable[bool]
	ccdEnabled        scene.Variable[bool]
	canSleep          scene.Variable[bool]

	sleeping bool

	native  *cp.Body
	actions actionQueue
}

// Base returns the shared scene bookkeeping of the node.
func (r *RigidBody) Base() *scene.Base {
	return &r.base
}

// RawCopy clones the node. Variables and the sleeping flag are copied by
// value; the backend handle and the command queue are reset, so the copy
// must register with the simulation independently.
func (r *RigidBody) RawCopy() scene.Node {
	return &RigidBody{
		base:              r.base.RawCopy(),
		linVel:            r.linVel,
		angVel:            r.angVel,
		linDamping:        r.linDamping,
		angDamping:        r.angDamping,
		bodyType:          r.bodyType,
		mass:              r.mass,
		rotationLocked:    r.rotationLocked,
		translationLocked: r.translationLocked,
		ccdEnabled:        r.ccdEnabled,
		canSleep:          r.canSleep,
		sleeping:          r.sleeping,
	}
}

// SetLinVel sets the linear velocity applied at the next simulation step.
func (r *RigidBody) SetLinVel(v cp.Vector) {
	r.linVel.Set(v)
}

// LinVel returns the current linear velocity.
func (r *RigidBody) LinVel() cp.Vector {
	return r.linVel.Get()
}

// SetAngVel sets the angular velocity applied at the next simulation step.
func (r *RigidBody) SetAngVel(v float64) {
	r.angVel.Set(v)
}

// AngVel returns the current angular velocity.
func (r *RigidBody) AngVel() float64 {
	return r.angVel.Get()
}

// SetMass sets the additional mass of the body. The effective mass also
// depends on the colliders attached by the physics world.
func (r *RigidBody) SetMass(mass float64) {
	r.mass.Set(mass)
}

// Mass returns the additional mass of the body.
func (r *RigidBody) Mass() float64 {
	return r.mass.Get()
}

// SetLinDamping sets the linear damping coefficient. Damping decreases
// linear velocity over time. Default is zero.
func (r *RigidBody) SetLinDamping(d float64) {
	r.linDamping.Set(d)
}

// LinDamping returns the linear damping coefficient.
func (r *RigidBody) LinDamping() float64 {
	return r.linDamping.Get()
}

// SetAngDamping sets the angular damping coefficient. Damping decreases
// angular velocity over time. Default is zero.
func (r *RigidBody) SetAngDamping(d float64) {
	r.angDamping.Set(d)
}

// AngDamping returns the angular damping coefficient.
func (r *RigidBody) AngDamping() float64 {
	return r.angDamping.Get()
}

// SetBodyType sets how the backend simulates the body.
func (r *RigidBody) SetBodyType(t BodyType) {
	r.bodyType.Set(t)
}

// BodyType returns the current body type.
func (r *RigidBody) BodyType() BodyType {
	return r.bodyType.Get()
}

// LockRotations locks or unlocks body rotation.
func (r *RigidBody) LockRotations(locked bool) {
	r.rotationLocked.Set(locked)
}

// IsRotationLocked reports whether rotation is locked.
func (r *RigidBody) IsRotationLocked() bool {
	return r.rotationLocked.Get()
}

// LockTranslation locks or unlocks body translation in world coordinates.
func (r *RigidBody) LockTranslation(locked bool) {
	r.translationLocked.Set(locked)
}

// IsTranslationLocked reports whether translation is locked.
func (r *RigidBody) IsTranslationLocked() bool {
	return r.translationLocked.Get()
}

// EnableCCD enables or disables continuous collision detection for fast
// moving bodies.
func (r *RigidBody) EnableCCD(enabled bool) {
	r.ccdEnabled.Set(enabled)
}

// IsCCDEnabled reports whether continuous collision detection is enabled.
func (r *RigidBody) IsCCDEnabled() bool {
	return r.ccdEnabled.Get()
}

// SetCanSleep sets whether the body may be excluded from simulation when it
// comes to rest. Passing false also requests an immediate wake-up.
func (r *RigidBody) SetCanSleep(canSleep bool) {
	r.canSleep.Set(canSleep)
	if !canSleep {
		r.actions.enqueue(Action{Kind: ActionWakeUp})
	}
}

// CanSleep reports whether the body may sleep.
func (r *RigidBody) CanSleep() bool {
	return r.canSleep.Get()
}

// IsSleeping reports whether the body is currently excluded from the active
// simulation. Only the integrator writes this state.
func (r *RigidBody) IsSleeping() bool {
	return r.sleeping
}

// SetSleeping records the backend sleeping state. Called by the integrator
// after each step; not for general use.
func (r *RigidBody) SetSleeping(sleeping bool) {
	r.sleeping = sleeping
}

// SyncState records backend-simulated velocities and sleeping state on the
// node. Values are written silently so untouched variables keep tracking
// their template. Called by the integrator after each step; not for general
// use.
func (r *RigidBody) SyncState(linVel cp.Vector, angVel float64, sleeping bool) {
	r.linVel.SetSilent(linVel)
	r.angVel.SetSilent(angVel)
	r.sleeping = sleeping
}

// ApplyForce queues a force at the center of mass for the next simulation
// step. Non-dynamic bodies ignore it.
func (r *RigidBody) ApplyForce(force cp.Vector) {
	r.actions.enqueue(Action{Kind: ActionForce, Linear: force})
}

// ApplyTorque queues a torque for the next simulation step. Non-dynamic
// bodies ignore it.
func (r *RigidBody) ApplyTorque(torque float64) {
	r.actions.enqueue(Action{Kind: ActionTorque, Angular: torque})
}

// ApplyForceAtPoint queues a force at a world-space point for the next
// simulation step. Non-dynamic bodies ignore it.
func (r *RigidBody) ApplyForceAtPoint(force, point cp.Vector) {
	r.actions.enqueue(Action{Kind: ActionForceAtPoint, Linear: force, Point: point})
}

// ApplyImpulse queues a linear impulse at the center of mass for the next
// simulation step. Non-dynamic bodies ignore it.
func (r *RigidBody) ApplyImpulse(impulse cp.Vector) {
	r.actions.enqueue(Action{Kind: ActionImpulse, Linear: impulse})
}

// ApplyTorqueImpulse queues an angular impulse for the next simulation step.
// Non-dynamic bodies ignore it.
func (r *RigidBody) ApplyTorqueImpulse(impulse float64) {
	r.actions.enqueue(Action{Kind: ActionTorqueImpulse, Angular: impulse})
}

// ApplyImpulseAtPoint queues an impulse at a world-space point for the next
// simulation step. Non-dynamic bodies ignore it.
func (r *RigidBody) ApplyImpulseAtPoint(impulse, point cp.Vector) {
	r.actions.enqueue(Action{Kind: ActionImpulseAtPoint, Linear: impulse, Point: point})
}

// WakeUp queues a request to return the body to the active simulation.
func (r *RigidBody) WakeUp() {
	r.actions.enqueue(Action{Kind: ActionWakeUp})
}

// DrainActions removes and returns all pending actions in enqueue order.
// The integrator calls this exactly once per simulation step.
func (r *RigidBody) DrainActions() []Action {
	return r.actions.drain()
}

// PendingActions returns the number of queued actions.
func (r *RigidBody) PendingActions() int {
	return r.actions.len()
}

// Native returns the backend body, or nil when the node is not registered
// with a physics world.
func (r *RigidBody) Native() *cp.Body {
	return r.native
}

// SetNative binds or clears the backend body. Written once by the
// integrator at registration; not safe to call concurrently with reads.
func (r *RigidBody) SetNative(body *cp.Body) {
	r.native = body
}

// Inherit resolves untouched variables against a template parent. Parents
// of a different node kind only resolve base properties.
func (r *RigidBody) Inherit(parent scene.Node) {
	if parent == nil {
		return
	}
	r.base.InheritProperties(parent.Base())
	p, ok := parent.(*RigidBody)
	if !ok {
		return
	}
	r.linVel.TryInherit(&p.linVel)
	r.angVel.TryInherit(&p.angVel)
	r.linDamping.TryInherit(&p.linDamping)
	r.angDamping.TryInherit(&p.angDamping)
	r.bodyType.TryInherit(&p.bodyType)
	r.mass.TryInherit(&p.mass)
	r.rotationLocked.TryInherit(&p.rotationLocked)
	r.translationLocked.TryInherit(&p.translationLocked)
	r.ccdEnabled.TryInherit(&p.ccdEnabled)
	r.canSleep.TryInherit(&p.canSleep)
}

// NeedSyncModel reports whether any variable of the node was touched since
// the last sync point.
func (r *RigidBody) NeedSyncModel() bool {
	return r.base.NeedSyncProperties() ||
		r.linVel.NeedSync() ||
		r.angVel.NeedSync() ||
		r.linDamping.NeedSync() ||
		r.angDamping.NeedSync() ||
		r.bodyType.NeedSync() ||
		r.mass.NeedSync() ||
		r.rotationLocked.NeedSync() ||
		r.translationLocked.NeedSync() ||
		r.ccdEnabled.NeedSync() ||
		r.canSleep.NeedSync()
}

// MarkSynced records a sync point on every variable of the node.
func (r *RigidBody) MarkSynced() {
	r.base.MarkSynced()
	r.linVel.MarkSynced()
	r.angVel.MarkSynced()
	r.linDamping.MarkSynced()
	r.angDamping.MarkSynced()
	r.bodyType.MarkSynced()
	r.mass.MarkSynced()
	r.rotationLocked.MarkSynced()
	r.translationLocked.MarkSynced()
	r.ccdEnabled.MarkSynced()
	r.canSleep.MarkSynced()
}

// RestoreResources rebinds external resources after deserialization.
// Reserved; rigid bodies hold no external resources today.
func (r *RigidBody) RestoreResources() {}
