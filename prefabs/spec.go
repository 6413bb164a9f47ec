// Package prefabs loads rigid-body node templates from YAML and keeps
// instances inheriting from them.
package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/scene2d/physics"
	"github.com/milk9111/scene2d/scene"
	"github.com/milk9111/scene2d/scene/rigidbody"
)

// VectorSpec is a serialized 2D vector.
type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vector converts the spec into a backend vector.
func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// TransformSpec is the serialized placement of a node.
type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// BodyComponentSpec mirrors every overridable property of a rigid body plus
// its initial sleeping state. The backend handle and the action queue are
// runtime-only and never serialized.
type BodyComponentSpec struct {
	Type              string     `yaml:"type"`
	Mass              float64    `yaml:"mass"`
	LinVel            VectorSpec `yaml:"lin_vel"`
	AngVel            float64    `yaml:"ang_vel"`
	LinDamping        float64    `yaml:"lin_damping"`
	AngDamping        float64    `yaml:"ang_damping"`
	RotationLocked    bool       `yaml:"rotation_locked"`
	TranslationLocked bool       `yaml:"translation_locked"`
	CCD               bool       `yaml:"ccd"`
	CanSleep          *bool      `yaml:"can_sleep"`
	Sleeping          bool       `yaml:"sleeping"`
}

// ColliderSpec is the serialized box shape registered with the physics
// world alongside the body.
type ColliderSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Sensor     bool    `yaml:"sensor"`
}

// Collider converts the spec into world registration parameters.
func (c ColliderSpec) Collider() physics.Collider {
	return physics.Collider{
		Width:      c.Width,
		Height:     c.Height,
		Friction:   c.Friction,
		Elasticity: c.Elasticity,
		Sensor:     c.Sensor,
	}
}

// BodySpec is a rigid-body node template.
type BodySpec struct {
	Name      string            `yaml:"name"`
	Visible   *bool             `yaml:"visible"`
	Transform TransformSpec     `yaml:"transform"`
	Body      BodyComponentSpec `yaml:"body"`
	Collider  ColliderSpec      `yaml:"collider"`
}

// LoadBodySpec reads a template from the prefab data dir, preferring disk
// over the embedded defaults.
func LoadBodySpec(filename string) (BodySpec, error) {
	data, err := Load(filename)
	if err != nil {
		return BodySpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec BodySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return BodySpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// ParseBodyType maps a yaml body type name to the node enum. Empty input
// means dynamic.
func ParseBodyType(s string) (rigidbody.BodyType, error) {
	switch s {
	case "", "dynamic":
		return rigidbody.Dynamic, nil
	case "static":
		return rigidbody.Static, nil
	case "kinematic":
		return rigidbody.Kinematic, nil
	}
	return rigidbody.Dynamic, fmt.Errorf("prefabs: unknown body type %q", s)
}

// Build creates a rigid-body node from the spec. Mass defaults to 1.0 and
// can-sleep to true when unset, matching the node builder defaults.
func (s BodySpec) Build() (*rigidbody.RigidBody, error) {
	bodyType, err := ParseBodyType(s.Body.Type)
	if err != nil {
		return nil, err
	}

	mass := s.Body.Mass
	if mass == 0 {
		mass = 1.0
	}
	canSleep := true
	if s.Body.CanSleep != nil {
		canSleep = *s.Body.CanSleep
	}
	visible := true
	if s.Visible != nil {
		visible = *s.Visible
	}

	base := scene.NewBaseBuilder().
		WithName(s.Name).
		WithPosition(cp.Vector{X: s.Transform.X, Y: s.Transform.Y}).
		WithRotation(s.Transform.Rotation).
		WithVisibility(visible)

	return rigidbody.NewBuilder(base).
		WithLinVel(s.Body.LinVel.Vector()).
		WithAngVel(s.Body.AngVel).
		WithLinDamping(s.Body.LinDamping).
		WithAngDamping(s.Body.AngDamping).
		WithBodyType(bodyType).
		WithMass(mass).
		WithRotationLocked(s.Body.RotationLocked).
		WithTranslationLocked(s.Body.TranslationLocked).
		WithCCDEnabled(s.Body.CCD).
		WithCanSleep(canSleep).
		WithSleeping(s.Body.Sleeping).
		Build(), nil
}

// FromNode snapshots a node into a spec. The collider is not part of node
// state and is left zero; callers that own shape geometry fill it in.
func FromNode(node *rigidbody.RigidBody) BodySpec {
	canSleep := node.CanSleep()
	visible := node.Base().Visibility()
	pos := node.Base().Position()
	return BodySpec{
		Name:    node.Base().Name(),
		Visible: &visible,
		Transform: TransformSpec{
			X:        pos.X,
			Y:        pos.Y,
			Rotation: node.Base().Rotation(),
		},
		Body: BodyComponentSpec{
			Type:              node.BodyType().String(),
			Mass:              node.Mass(),
			LinVel:            VectorSpec{X: node.LinVel().X, Y: node.LinVel().Y},
			AngVel:            node.AngVel(),
			LinDamping:        node.LinDamping(),
			AngDamping:        node.AngDamping(),
			RotationLocked:    node.IsRotationLocked(),
			TranslationLocked: node.IsTranslationLocked(),
			CCD:               node.IsCCDEnabled(),
			CanSleep:          &canSleep,
			Sleeping:          node.IsSleeping(),
		},
	}
}

// Marshal serializes a spec for saving back to disk.
func (s BodySpec) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal %s: %w", s.Name, err)
	}
	return data, nil
}
