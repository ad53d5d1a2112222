package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/mesh-intelligence/crudable/pkg/types"
)

// Registry is the immutable entity-relationship registry. Containers that
// were not registered on the Builder are resolved on first lookup, once per
// type; every later lookup reads cached data without locking.
type Registry struct {
	logger     *slog.Logger
	entities   []types.EntityType
	byName     map[string]types.EntityType
	methods    map[reflect.Type][]methodDecl
	containers []reflect.Type
	byType     map[string]reflect.Type

	resolved sync.Map // reflect.Type -> *entry
}

var _ types.Registry = (*Registry)(nil)

// entry caches the resolution of one container type.
type entry struct {
	once sync.Once
	res  *resolution
	err  error
}

func newRegistry(b *Builder) *Registry {
	r := &Registry{
		logger:     b.logger,
		entities:   slices.Clone(b.entities),
		byName:     make(map[string]types.EntityType, len(b.byName)),
		methods:    make(map[reflect.Type][]methodDecl, len(b.methods)),
		containers: slices.Clone(b.containers),
		byType:     make(map[string]reflect.Type, len(b.containers)),
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	for name, e := range b.byName {
		r.byName[name] = e
	}
	for t, decls := range b.methods {
		r.methods[t] = slices.Clone(decls)
	}
	for _, t := range r.containers {
		r.byType[t.Name()] = t
	}
	return r
}

// resolve returns the cached resolution of t, computing it at most once.
func (r *Registry) resolve(t reflect.Type) (*resolution, error) {
	v, ok := r.resolved.Load(t)
	if !ok {
		v, _ = r.resolved.LoadOrStore(t, &entry{})
	}
	e := v.(*entry)
	e.once.Do(func() {
		e.res, e.err = r.build(t)
		if e.err != nil {
			r.logger.Warn("container misconfigured", "container", t.String(), "error", e.err)
			return
		}
		r.logger.Debug("container resolved", "container", t.String(), "declarations", len(e.res.decls))
	})
	return e.res, e.err
}

// lookup normalises container and resolves it.
func (r *Registry) lookup(container reflect.Type) (reflect.Type, *resolution, error) {
	t, err := containerType(container)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.resolve(t)
	if err != nil {
		return nil, nil, err
	}
	return t, res, nil
}

// DeclarationsFor implements types.Registry.
func (r *Registry) DeclarationsFor(container reflect.Type) ([]types.Declaration, error) {
	_, res, err := r.lookup(container)
	if err != nil {
		return nil, err
	}
	out := make([]types.Declaration, len(res.decls))
	for i, d := range res.decls {
		out[i] = cloneDeclaration(d)
	}
	return out, nil
}

// EntityTypesFor implements types.Registry.
func (r *Registry) EntityTypesFor(container reflect.Type, member string) ([]types.EntityType, error) {
	d, err := r.declaration(container, member)
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.Entities), nil
}

// HasDeclaration implements types.Registry.
func (r *Registry) HasDeclaration(container reflect.Type, member string) bool {
	_, err := r.declaration(container, member)
	return err == nil
}

// Member returns the member descriptor for name, declared or not.
// Returns ErrNotFound if container has no such member.
func (r *Registry) Member(container reflect.Type, name string) (types.Member, error) {
	t, res, err := r.lookup(container)
	if err != nil {
		return types.Member{}, err
	}
	if m, ok := res.members[name]; ok {
		return m.member, nil
	}
	if method, ok := reflect.PointerTo(t).MethodByName(name); ok {
		return types.Member{Name: method.Name, Kind: types.MemberMethod, Owner: t}, nil
	}
	return types.Member{}, fmt.Errorf("%s.%s: %w", t.Name(), name, types.ErrNotFound)
}

// declaration returns the cached declaration of the named member.
func (r *Registry) declaration(container reflect.Type, name string) (types.Declaration, error) {
	t, res, err := r.lookup(container)
	if err != nil {
		return types.Declaration{}, err
	}
	m, ok := res.members[name]
	if !ok {
		if _, isMethod := reflect.PointerTo(t).MethodByName(name); isMethod {
			return types.Declaration{}, fmt.Errorf("%s.%s: %w", t.Name(), name, types.ErrNoDeclaration)
		}
		return types.Declaration{}, fmt.Errorf("%s.%s: %w", t.Name(), name, types.ErrNotFound)
	}
	if !m.declared {
		return types.Declaration{}, fmt.Errorf("%s.%s: %w", t.Name(), name, types.ErrNoDeclaration)
	}
	return types.Declaration{Member: m.member, Entities: m.entities}, nil
}

// Containers returns the containers registered on the Builder, in order.
func (r *Registry) Containers() []reflect.Type {
	return slices.Clone(r.containers)
}

// Container looks up a registered container by its Go type name.
func (r *Registry) Container(name string) (reflect.Type, bool) {
	t, ok := r.byType[name]
	return t, ok
}

// Entities returns the entity catalog in registration order.
func (r *Registry) Entities() []types.EntityType {
	return slices.Clone(r.entities)
}

// Entity looks up a catalog entry by name.
func (r *Registry) Entity(name string) (types.EntityType, bool) {
	e, ok := r.byName[name]
	return e, ok
}

func cloneDeclaration(d types.Declaration) types.Declaration {
	d.Entities = slices.Clone(d.Entities)
	d.Member.Index = slices.Clone(d.Member.Index)
	return d
}
