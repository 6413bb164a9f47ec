package script

import (
	"testing"

	"github.com/milk9111/scene2d/scene"
	"github.com/milk9111/scene2d/scene/rigidbody"
)

func newTestBody(name string) *rigidbody.RigidBody {
	return rigidbody.NewBuilder(scene.NewBaseBuilder().WithName(name)).Build()
}

func TestThrusterDrivesBody(t *testing.T) {
	body := newTestBody("crate")
	rt, err := NewRuntime("thruster.tengo", body)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if body.PendingActions() != 0 {
		t.Fatalf("loading a script must not touch the body")
	}

	if err := rt.Update(1.0 / 60); err != nil {
		t.Fatalf("update: %v", err)
	}

	// init runs first and pins the body awake, then update pushes.
	if body.CanSleep() {
		t.Fatalf("init must disable sleeping")
	}
	actions := body.DrainActions()
	if len(actions) != 2 {
		t.Fatalf("expected wake-up + force, got %d actions", len(actions))
	}
	if actions[0].Kind != rigidbody.ActionWakeUp {
		t.Fatalf("expected wake-up first, got %v", actions[0].Kind)
	}
	if actions[1].Kind != rigidbody.ActionForce || actions[1].Linear.Y != -40 {
		t.Fatalf("expected upward force, got %+v", actions[1])
	}

	// init must not run again
	if err := rt.Update(1.0 / 60); err != nil {
		t.Fatalf("second update: %v", err)
	}
	actions = body.DrainActions()
	if len(actions) != 1 || actions[0].Kind != rigidbody.ActionForce {
		t.Fatalf("expected a single force on later ticks, got %+v", actions)
	}
}

func TestThrusterPeriodicSpin(t *testing.T) {
	body := newTestBody("crate")
	rt, err := NewRuntime("thruster.tengo", body)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}

	spins := 0
	for i := 0; i < 120; i++ {
		if err := rt.Update(1.0 / 60); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		for _, a := range body.DrainActions() {
			if a.Kind == rigidbody.ActionTorqueImpulse {
				spins++
			}
		}
	}
	if spins != 1 {
		t.Fatalf("expected exactly one spin kick in 120 ticks, got %d", spins)
	}
}

func TestNewRuntimeErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		node   *rigidbody.RigidBody
	}{
		{"missing_script", "nope.tengo", newTestBody("crate")},
		{"nil_node", "thruster.tengo", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewRuntime(c.script, c.node); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
