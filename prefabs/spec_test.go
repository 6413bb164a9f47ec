package prefabs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/scene2d/scene"
	"github.com/milk9111/scene2d/scene/rigidbody"
)

const crateYAML = `
name: crate
transform:
  x: 10
  y: 20
  rotation: 0.5
body:
  type: dynamic
  mass: 2.0
  lin_vel:
    x: 3
    y: 4
  lin_damping: 0.1
  rotation_locked: true
collider:
  width: 16
  height: 16
  friction: 0.8
`

func TestBodySpecBuild(t *testing.T) {
	var spec BodySpec
	if err := yaml.Unmarshal([]byte(crateYAML), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	node, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if node.Base().Name() != "crate" {
		t.Fatalf("expected name crate, got %q", node.Base().Name())
	}
	if node.Base().Position() != (cp.Vector{X: 10, Y: 20}) {
		t.Fatalf("unexpected position %v", node.Base().Position())
	}
	if node.Mass() != 2.0 || node.BodyType() != rigidbody.Dynamic {
		t.Fatalf("unexpected body config: mass=%v type=%v", node.Mass(), node.BodyType())
	}
	if node.LinVel() != (cp.Vector{X: 3, Y: 4}) {
		t.Fatalf("unexpected velocity %v", node.LinVel())
	}
	if !node.IsRotationLocked() {
		t.Fatalf("rotation lock not applied")
	}
	if !node.CanSleep() {
		t.Fatalf("can_sleep must default to true")
	}
	if node.Native() != nil || node.PendingActions() != 0 {
		t.Fatalf("built node must carry no runtime state")
	}
	if node.NeedSyncModel() {
		t.Fatalf("spec-built node must not report overrides")
	}

	col := spec.Collider.Collider()
	if col.Width != 16 || col.Friction != 0.8 {
		t.Fatalf("unexpected collider %+v", col)
	}
}

func TestBodySpecDefaults(t *testing.T) {
	cases := []struct {
		name     string
		yaml     string
		wantType rigidbody.BodyType
		wantMass float64
		wantErr  bool
	}{
		{"empty_type_is_dynamic", "name: a", rigidbody.Dynamic, 1.0, false},
		{"static", "name: a\nbody:\n  type: static", rigidbody.Static, 1.0, false},
		{"kinematic", "name: a\nbody:\n  type: kinematic", rigidbody.Kinematic, 1.0, false},
		{"unknown_type", "name: a\nbody:\n  type: wobbly", rigidbody.Dynamic, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec BodySpec
			if err := yaml.Unmarshal([]byte(c.yaml), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			node, err := spec.Build()
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.yaml)
				}
				return
			}
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if node.BodyType() != c.wantType || node.Mass() != c.wantMass {
				t.Fatalf("got type=%v mass=%v", node.BodyType(), node.Mass())
			}
		})
	}
}

func TestFromNodeRoundTrip(t *testing.T) {
	src := rigidbody.NewBuilder(scene.NewBaseBuilder().WithName("probe").WithPosition(cp.Vector{X: 1, Y: 2})).
		WithLinVel(cp.Vector{X: 5}).
		WithMass(3).
		WithBodyType(rigidbody.Kinematic).
		WithCanSleep(false).
		Build()

	data, err := FromNode(src).Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var spec BodySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dup, err := spec.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if dup.Base().Name() != "probe" || dup.Base().Position() != (cp.Vector{X: 1, Y: 2}) {
		t.Fatalf("base fields lost in round trip")
	}
	if dup.LinVel() != (cp.Vector{X: 5}) || dup.Mass() != 3 || dup.BodyType() != rigidbody.Kinematic {
		t.Fatalf("body fields lost in round trip")
	}
	if dup.CanSleep() {
		t.Fatalf("can_sleep=false lost in round trip")
	}
}

func TestLibraryInstantiateAndResolve(t *testing.T) {
	lib := NewLibrary()
	if err := lib.AddSpec(BodySpec{
		Name: "crate",
		Body: BodyComponentSpec{Mass: 2, LinVel: VectorSpec{X: 3, Y: 4}},
	}); err != nil {
		t.Fatalf("add spec: %v", err)
	}

	inst, err := lib.Instantiate("crate")
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	if inst.LinVel() != (cp.Vector{X: 3, Y: 4}) {
		t.Fatalf("instance must match template, got %v", inst.LinVel())
	}

	// instance override freezes the field
	inst.SetMass(9)

	// template edit flows to untouched fields only
	if err := lib.AddSpec(BodySpec{
		Name: "crate",
		Body: BodyComponentSpec{Mass: 5, LinVel: VectorSpec{X: 7, Y: 8}},
	}); err != nil {
		t.Fatalf("replace spec: %v", err)
	}

	if inst.LinVel() != (cp.Vector{X: 7, Y: 8}) {
		t.Fatalf("untouched field must track the template, got %v", inst.LinVel())
	}
	if inst.Mass() != 9 {
		t.Fatalf("overridden field must stay frozen, got %v", inst.Mass())
	}

	if _, err := lib.Instantiate("missing"); err == nil {
		t.Fatalf("unknown template must fail")
	}
}

func TestLibraryRelease(t *testing.T) {
	lib := NewLibrary()
	if err := lib.AddSpec(BodySpec{Name: "crate"}); err != nil {
		t.Fatalf("add spec: %v", err)
	}
	inst, err := lib.Instantiate("crate")
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	lib.Release("crate", inst)

	if err := lib.AddSpec(BodySpec{Name: "crate", Body: BodyComponentSpec{Mass: 5}}); err != nil {
		t.Fatalf("replace spec: %v", err)
	}
	if inst.Mass() != 1 {
		t.Fatalf("released instance must stop tracking the template, got %v", inst.Mass())
	}
}

func TestLoadDefaults(t *testing.T) {
	lib := NewLibrary()
	if err := lib.LoadDefaults(); err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	for _, name := range []string{"crate", "ball", "platform"} {
		if lib.Template(name) == nil {
			t.Fatalf("embedded template %q missing", name)
		}
	}
	if spec, ok := lib.Spec("platform"); !ok || spec.Body.Type != "static" {
		t.Fatalf("platform template must be static")
	}
}

func TestTemplateNameFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"prefabs/templates/crate.yaml", "crate"},
		{"crate.yml", "crate"},
		{"a/b/ball.yaml", "ball"},
	}
	for _, c := range cases {
		if got := TemplateNameFromPath(c.path); got != c.want {
			t.Fatalf("%s: expected %q, got %q", c.path, c.want, got)
		}
	}
}
