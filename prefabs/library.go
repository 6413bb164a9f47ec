package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/scene2d/scene/rigidbody"
)

// Library is a registry of named body templates and the instances built
// from them. A template edit flows to every instance variable that was not
// explicitly overridden; overridden variables stay frozen.
//
// The library is driven from a single goroutine (typically the one
// consuming watcher events); it is not synchronized.
type Library struct {
	specs     map[string]BodySpec
	templates map[string]*rigidbody.RigidBody
	instances map[string][]*rigidbody.RigidBody
}

// NewLibrary creates an empty template library.
func NewLibrary() *Library {
	return &Library{
		specs:     make(map[string]BodySpec),
		templates: make(map[string]*rigidbody.RigidBody),
		instances: make(map[string][]*rigidbody.RigidBody),
	}
}

// AddSpec registers or replaces a template. Existing instances of a
// replaced template are resolved against the new one.
func (l *Library) AddSpec(spec BodySpec) error {
	if spec.Name == "" {
		return fmt.Errorf("prefabs: template with empty name")
	}
	template, err := spec.Build()
	if err != nil {
		return fmt.Errorf("prefabs: template %s: %w", spec.Name, err)
	}
	l.specs[spec.Name] = spec
	l.templates[spec.Name] = template
	l.resolveTemplate(spec.Name)
	return nil
}

// LoadFile loads one template file into the library.
func (l *Library) LoadFile(filename string) error {
	spec, err := LoadBodySpec(filename)
	if err != nil {
		return err
	}
	return l.AddSpec(spec)
}

// LoadDefaults loads every embedded template.
func (l *Library) LoadDefaults() error {
	names, err := TemplateNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := l.LoadFile(name); err != nil {
			return err
		}
	}
	return nil
}

// Spec returns the registered spec for a template name.
func (l *Library) Spec(name string) (BodySpec, bool) {
	spec, ok := l.specs[name]
	return spec, ok
}

// Template returns the template node for a name, or nil.
func (l *Library) Template(name string) *rigidbody.RigidBody {
	return l.templates[name]
}

// Instantiate builds a fresh node from a template and tracks it so later
// template edits resolve into it.
func (l *Library) Instantiate(name string) (*rigidbody.RigidBody, error) {
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("prefabs: unknown template %q", name)
	}
	node, err := spec.Build()
	if err != nil {
		return nil, err
	}
	l.instances[name] = append(l.instances[name], node)
	return node, nil
}

// Release stops tracking an instance, e.g. when it is removed from the
// scene graph.
func (l *Library) Release(name string, node *rigidbody.RigidBody) {
	tracked := l.instances[name]
	for i, inst := range tracked {
		if inst == node {
			l.instances[name] = append(tracked[:i], tracked[i+1:]...)
			return
		}
	}
}

// Resolve re-runs inheritance of every instance against its template.
func (l *Library) Resolve() {
	for name := range l.templates {
		l.resolveTemplate(name)
	}
}

func (l *Library) resolveTemplate(name string) {
	template := l.templates[name]
	if template == nil {
		return
	}
	for _, inst := range l.instances[name] {
		inst.Inherit(template)
	}
}

// TemplateNameFromPath maps a template file path to its registry name.
func TemplateNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
