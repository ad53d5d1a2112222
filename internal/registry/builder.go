// Package registry implements the entity-relationship registry consulted by
// the crudable engine. A Builder collects entity types, method declarations
// and containers; Build validates them and returns an immutable Registry.
package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/mesh-intelligence/crudable/pkg/types"
)

// TagName is the struct tag that declares the entity types of a field.
//
//	Connections []*ConnectionConfig `contains:"ConnectionConfig"`
const TagName = "contains"

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used by the built Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// methodDecl is a declaration registered for a method of an owner type.
type methodDecl struct {
	name     string
	entities []string
}

// Builder collects declarations before a Registry is built.
// A Builder is not safe for concurrent use.
type Builder struct {
	logger     *slog.Logger
	entities   []types.EntityType
	byName     map[string]types.EntityType
	methods    map[reflect.Type][]methodDecl
	owners     []reflect.Type // method owners in registration order
	containers []reflect.Type
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:  slog.Default(),
		byName:  make(map[string]types.EntityType),
		methods: make(map[reflect.Type][]methodDecl),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Entity registers the type of sample as an entity named after its Go type.
func (b *Builder) Entity(sample any) error {
	t := types.Indirect(reflect.TypeOf(sample))
	if t == nil {
		return fmt.Errorf("entity sample is nil: %w", types.ErrUnknownEntity)
	}
	return b.NamedEntity(t.Name(), sample)
}

// NamedEntity registers the type of sample as an entity under name.
// Returns ErrDuplicateEntity if name is taken by a different type.
func (b *Builder) NamedEntity(name string, sample any) error {
	t := types.Indirect(reflect.TypeOf(sample))
	if t == nil || name == "" {
		return fmt.Errorf("entity %q: %w", name, types.ErrUnknownEntity)
	}
	if existing, ok := b.byName[name]; ok {
		if existing.Type == t {
			return nil
		}
		return fmt.Errorf("entity %q (%s, %s): %w", name, existing.Type, t, types.ErrDuplicateEntity)
	}
	e := types.EntityType{Name: name, Type: t}
	b.byName[name] = e
	b.entities = append(b.entities, e)
	return nil
}

// Method declares that the named method of container returns a collection of
// the given entity types. The method must be in the method set of *container.
// Entity names are resolved by Build, so they may be registered later.
// A declaration on an embedded type is inherited even where the embedding
// type defines its own method of that name; declare it there as well to
// override it.
func (b *Builder) Method(container any, method string, entities ...string) error {
	t, err := containerType(reflect.TypeOf(container))
	if err != nil {
		return err
	}
	if _, ok := reflect.PointerTo(t).MethodByName(method); !ok {
		return fmt.Errorf("%s.%s: %w", t.Name(), method, types.ErrNotFound)
	}
	for _, d := range b.methods[t] {
		if d.name == method {
			return fmt.Errorf("%s.%s declared twice: %w", t.Name(), method, types.ErrAmbiguousMember)
		}
	}
	if len(b.methods[t]) == 0 {
		b.owners = append(b.owners, t)
	}
	b.methods[t] = append(b.methods[t], methodDecl{
		name:     method,
		entities: append([]string(nil), entities...),
	})
	return nil
}

// Container registers containers for eager validation by Build.
func (b *Builder) Container(samples ...any) error {
	for _, s := range samples {
		t, err := containerType(reflect.TypeOf(s))
		if err != nil {
			return err
		}
		b.containers = append(b.containers, t)
	}
	return nil
}

// Build validates every registered container and returns the Registry.
// The first configuration error aborts the build.
func (b *Builder) Build() (*Registry, error) {
	r := newRegistry(b)
	for _, t := range r.containers {
		if _, err := r.resolve(t); err != nil {
			return nil, fmt.Errorf("register %s: %w", t, err)
		}
	}
	// Method declarations on types that are only ever embedded are still
	// checked here.
	for _, t := range b.owners {
		if _, err := r.resolve(t); err != nil {
			return nil, fmt.Errorf("register %s: %w", t, err)
		}
	}
	return r, nil
}

// containerType normalises t to a struct type.
func containerType(t reflect.Type) (reflect.Type, error) {
	t = types.Indirect(t)
	if t == nil {
		return nil, fmt.Errorf("nil container: %w", types.ErrNotContainer)
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", t, types.ErrNotContainer)
	}
	return t, nil
}
