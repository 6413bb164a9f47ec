package rigidbody

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/scene2d/scene"
)

// Builder configures and creates a RigidBody in declarative manner.
type Builder struct {
	base              *scene.BaseBuilder
	linVel            cp.Vector
	angVel            float64
	linDamping        float64
	angDamping        float64
	sleeping          bool
	bodyType          BodyType
	mass              float64
	rotationLocked    bool
	translationLocked bool
	ccdEnabled        bool
	canSleep          bool
}

// NewBuilder creates a builder with default values: zero velocities and
// damping, dynamic type, mass 1.0, no locks, CCD off, sleeping allowed.
func NewBuilder(base *scene.BaseBuilder) *Builder {
	if base == nil {
		base = scene.NewBaseBuilder()
	}
	return &Builder{
		base:     base,
		bodyType: Dynamic,
		mass:     1.0,
		canSleep: true,
	}
}

// WithLinVel sets the initial linear velocity.
func (b *Builder) WithLinVel(v cp.Vector) *Builder {
	b.linVel = v
	return b
}

// WithAngVel sets the initial angular velocity.
func (b *Builder) WithAngVel(v float64) *Builder {
	b.angVel = v
	return b
}

// WithLinDamping sets the initial linear damping.
func (b *Builder) WithLinDamping(d float64) *Builder {
	b.linDamping = d
	return b
}

// WithAngDamping sets the initial angular damping.
func (b *Builder) WithAngDamping(d float64) *Builder {
	b.angDamping = d
	return b
}

// WithBodyType sets the body type.
func (b *Builder) WithBodyType(t BodyType) *Builder {
	b.bodyType = t
	return b
}

// WithMass sets the additional mass of the body.
func (b *Builder) WithMass(mass float64) *Builder {
	b.mass = mass
	return b
}

// WithRotationLocked locks body rotation.
func (b *Builder) WithRotationLocked(locked bool) *Builder {
	b.rotationLocked = locked
	return b
}

// WithTranslationLocked locks body translation.
func (b *Builder) WithTranslationLocked(locked bool) *Builder {
	b.translationLocked = locked
	return b
}

// WithCCDEnabled enables continuous collision detection.
func (b *Builder) WithCCDEnabled(enabled bool) *Builder {
	b.ccdEnabled = enabled
	return b
}

// WithSleeping sets the initial sleeping state.
func (b *Builder) WithSleeping(sleeping bool) *Builder {
	b.sleeping = sleeping
	return b
}

// WithCanSleep sets whether the body may sleep.
func (b *Builder) WithCanSleep(canSleep bool) *Builder {
	b.canSleep = canSleep
	return b
}

// Build creates the node. The backend handle is nil and the action queue is
// empty until the node is registered with a physics world.
func (b *Builder) Build() *RigidBody {
	return &RigidBody{
		base:              b.base.BuildBase(),
		linVel:            scene.NewVariable(b.linVel),
		angVel:            scene.NewVariable(b.angVel),
		linDamping:        scene.NewVariable(b.linDamping),
		angDamping:        scene.NewVariable(b.angDamping),
		bodyType:          scene.NewVariable(b.bodyType),
		mass:              scene.NewVariable(b.mass),
		rotationLocked:    scene.NewVariable(b.rotationLocked),
		translationLocked: scene.NewVariable(b.translationLocked),
		ccdEnabled:        scene.NewVariable(b.ccdEnabled),
		canSleep:          scene.NewVariable(b.canSleep),
		sleeping:          b.sleeping,
	}
}

// BuildIn creates the node and adds it to a graph, returning the
// graph-assigned handle.
func (b *Builder) BuildIn(g *scene.Graph) scene.Handle {
	return g.Add(b.Build())
}
