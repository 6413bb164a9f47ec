// Package script runs tengo scripts against rigid-body nodes. Scripts are
// ordinary callers of the node API: property writes land immediately,
// forces and impulses are queued for the next simulation step.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/scene2d/prefabs"
	"github.com/milk9111/scene2d/scene/rigidbody"
)

const dispatchScript = `
if __phase == "init" {
	init(__body, __state)
} else if __phase == "update" {
	update(__body, __state, __dt)
}
`

// Runtime is a compiled script bound to one rigid-body node. The state map
// persists across ticks.
type Runtime struct {
	node        *rigidbody.RigidBody
	compiled    *tengo.Compiled
	state       *tengo.Map
	initialized bool
}

// NewRuntime loads and compiles a script for a node. The script must define
// init(body, state) and update(body, state, dt).
func NewRuntime(name string, node *rigidbody.RigidBody) (*Runtime, error) {
	if node == nil {
		return nil, fmt.Errorf("script: nil node")
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}

	s := tengo.NewScript(append(src, []byte("\n"+dispatchScript)...))
	_ = s.Add("__phase", "")
	_ = s.Add("__body", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__dt", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	rt := &Runtime{
		node:     node,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := rt.runPhase("noop", 0); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("init") || !compiled.IsDefined("update") {
		return nil, fmt.Errorf("script: %s must define init and update", name)
	}
	return rt, nil
}

// Update runs the script's update hook, running init first on the first
// call.
func (rt *Runtime) Update(dt float64) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if !rt.initialized {
		if err := rt.runPhase("init", dt); err != nil {
			return err
		}
		rt.initialized = true
	}
	return rt.runPhase("update", dt)
}

func (rt *Runtime) runPhase(phase string, dt float64) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__body", bodyEngine(rt.node)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// bodyEngine exposes the node API to a script as an immutable map of
// functions.
func bodyEngine(node *rigidbody.RigidBody) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"set_lin_vel": vectorFunc("set_lin_vel", func(v cp.Vector) {
			node.SetLinVel(v)
		}),
		"lin_vel": &tengo.UserFunction{Name: "lin_vel", Value: func(args ...tengo.Object) (tengo.Object, error) {
			v := node.LinVel()
			return &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"x": &tengo.Float{Value: v.X},
				"y": &tengo.Float{Value: v.Y},
			}}, nil
		}},
		"apply_force": vectorFunc("apply_force", func(v cp.Vector) {
			node.ApplyForce(v)
		}),
		"apply_impulse": vectorFunc("apply_impulse", func(v cp.Vector) {
			node.ApplyImpulse(v)
		}),
		"apply_torque": scalarFunc("apply_torque", func(v float64) {
			node.ApplyTorque(v)
		}),
		"apply_torque_impulse": scalarFunc("apply_torque_impulse", func(v float64) {
			node.ApplyTorqueImpulse(v)
		}),
		"set_mass": scalarFunc("set_mass", func(v float64) {
			node.SetMass(v)
		}),
		"mass": &tengo.UserFunction{Name: "mass", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: node.Mass()}, nil
		}},
		"set_lin_damping": scalarFunc("set_lin_damping", func(v float64) {
			node.SetLinDamping(v)
		}),
		"lin_damping": &tengo.UserFunction{Name: "lin_damping", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: node.LinDamping()}, nil
		}},
		"set_ang_damping": scalarFunc("set_ang_damping", func(v float64) {
			node.SetAngDamping(v)
		}),
		"ang_damping": &tengo.UserFunction{Name: "ang_damping", Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: node.AngDamping()}, nil
		}},
		"set_can_sleep": &tengo.UserFunction{Name: "set_can_sleep", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			node.SetCanSleep(!args[0].IsFalsy())
			return tengo.UndefinedValue, nil
		}},
		"wake_up": &tengo.UserFunction{Name: "wake_up", Value: func(args ...tengo.Object) (tengo.Object, error) {
			node.WakeUp()
			return tengo.UndefinedValue, nil
		}},
		"is_sleeping": &tengo.UserFunction{Name: "is_sleeping", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if node.IsSleeping() {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}},
	}}
}

func vectorFunc(name string, fn func(cp.Vector)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		fn(cp.Vector{X: x, Y: y})
		return tengo.UndefinedValue, nil
	}}
}

func scalarFunc(name string, fn func(float64)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "value", Expected: "float", Found: args[0].TypeName()}
		}
		fn(v)
		return tengo.UndefinedValue, nil
	}}
}
