package ecs

import (
	"sort"

	"github.com/dshills/roguecore/pkg/rerr"
)

// ComponentInit produces one component's value: a fixed value wrapped in
// a closure, or a genuine zero-argument factory.
type ComponentInit func() any

// ComponentSpec is one entry in a Prefab's component list.
type ComponentSpec struct {
	Key  string
	Init ComponentInit
}

// Prefab is a named, inheritable bundle of component initializers.
type Prefab struct {
	Name       string
	Extends    string // empty for no parent
	Components []ComponentSpec
	Tags       []string
	OnCreate   func(w *World, e EntityID)
}

type componentApplier func(w *World, e EntityID, value any)

// PrefabRegistry holds named Prefabs plus the per-component-key appliers
// needed to attach a type-erased init value to a live World, since Go
// generics cannot be parameterized purely at runtime by a string key.
type PrefabRegistry struct {
	prefabs    map[string]*Prefab
	appliers   map[string]componentApplier
	extendedBy map[string][]string
}

// NewPrefabRegistry constructs an empty registry.
func NewPrefabRegistry() *PrefabRegistry {
	return &PrefabRegistry{
		prefabs:    make(map[string]*Prefab),
		appliers:   make(map[string]componentApplier),
		extendedBy: make(map[string][]string),
	}
}

// RegisterComponentKind tells the registry how to attach a T-valued
// component at key to a World. Call this once per component type before
// any Prefab referencing that key is registered or spawned.
func RegisterComponentKind[T any](r *PrefabRegistry, key string) {
	r.appliers[key] = func(w *World, e EntityID, value any) {
		AddComponent[T](w, key, e, value.(T))
	}
}

// Register adds p to the registry. Duplicate names and references to an
// unknown Extends parent are configuration errors; parents must be
// registered before their children.
func (r *PrefabRegistry) Register(p Prefab) error {
	if _, exists := r.prefabs[p.Name]; exists {
		return rerr.Newf(rerr.CodeConfigInvalid, "prefab %q already registered", p.Name)
	}
	if p.Extends != "" {
		if _, ok := r.prefabs[p.Extends]; !ok {
			return rerr.Newf(rerr.CodeConfigInvalid, "prefab %q extends unknown prefab %q", p.Name, p.Extends)
		}
	}
	stored := p
	r.prefabs[p.Name] = &stored
	if p.Extends != "" {
		r.extendedBy[p.Extends] = append(r.extendedBy[p.Extends], p.Name)
	}
	return nil
}

// Remove deletes the prefab named name. Rejected if another registered
// prefab extends it.
func (r *PrefabRegistry) Remove(name string) error {
	if children := r.extendedBy[name]; len(children) > 0 {
		return rerr.Newf(rerr.CodeConfigInvalid, "prefab %q is extended by %v, cannot remove", name, children)
	}
	if p, ok := r.prefabs[name]; ok && p.Extends != "" {
		siblings := r.extendedBy[p.Extends]
		for i, child := range siblings {
			if child == name {
				r.extendedBy[p.Extends] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	delete(r.prefabs, name)
	return nil
}

// lineage returns name's ancestor chain, root-first, name last.
func (r *PrefabRegistry) lineage(name string) ([]*Prefab, error) {
	var chain []*Prefab
	seen := make(map[string]bool)
	cur := name
	for cur != "" {
		if seen[cur] {
			return nil, rerr.Newf(rerr.CodeCycleDetected, "prefab inheritance cycle involving %q", cur)
		}
		seen[cur] = true
		p, ok := r.prefabs[cur]
		if !ok {
			return nil, rerr.Newf(rerr.CodeConfigInvalid, "unknown prefab %q", cur)
		}
		chain = append([]*Prefab{p}, chain...)
		cur = p.Extends
	}
	return chain, nil
}

// TemplateID is the tag component attached to every prefab-spawned
// entity, naming the prefab it was spawned from.
type TemplateID struct {
	Name string
}

const templateIDKey = "ecs.TemplateID"

// Tags is an optional component a caller may register under tagsKey to
// collect a spawned entity's prefab-chain tag strings. Registering it is
// opt-in: Spawn only attaches it if the registry already knows how to
// apply tagsKey.
type Tags struct {
	Names []string
}

const tagsKey = "ecs.Tags"

// Spawn resolves name's parent chain, overlays each level's component
// inits (child over parent), applies overrides on top, creates the
// entity, attaches a TemplateID(name) tag, and runs onCreate callbacks
// parent-first.
func (r *PrefabRegistry) Spawn(w *World, name string, overrides map[string]ComponentInit) (EntityID, error) {
	chain, err := r.lineage(name)
	if err != nil {
		return NullEntity, err
	}

	merged := make(map[string]ComponentInit)
	var tags []string
	for _, p := range chain {
		for _, spec := range p.Components {
			merged[spec.Key] = spec.Init
		}
		tags = append(tags, p.Tags...)
	}
	for key, init := range overrides {
		merged[key] = init
	}

	e, err := w.CreateEntity()
	if err != nil {
		return NullEntity, err
	}

	// Attach in sorted key order so observer callbacks fire in the same
	// sequence on every spawn of the same prefab.
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		apply, ok := r.appliers[key]
		if !ok {
			continue
		}
		apply(w, e, merged[key]())
	}

	if _, ok := r.appliers[templateIDKey]; !ok {
		RegisterComponentKind[TemplateID](r, templateIDKey)
	}
	r.appliers[templateIDKey](w, e, TemplateID{Name: name})

	if len(tags) > 0 {
		if applyTags, ok := r.appliers[tagsKey]; ok {
			applyTags(w, e, Tags{Names: tags})
		}
	}

	for _, p := range chain {
		if p.OnCreate != nil {
			p.OnCreate(w, e)
		}
	}

	return e, nil
}
