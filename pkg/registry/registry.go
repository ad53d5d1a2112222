// Package registry provides the public API for building an
// entity-relationship registry while keeping the implementation internal.
//
// Example:
//
//	b := registry.NewBuilder()
//	_ = b.Entity(ConnectionConfig{})
//	_ = b.Container(ConfigState{})
//	reg, err := b.Build()
//	entities, err := reg.EntityTypesFor(reflect.TypeFor[ConfigState](), "Connections")
package registry

import (
	"log/slog"

	"github.com/mesh-intelligence/crudable/internal/registry"
)

// TagName is the struct tag that declares the entity types of a field.
const TagName = registry.TagName

type (
	// Builder collects entity types, method declarations and containers.
	Builder = registry.Builder

	// Registry is the immutable registry returned by Builder.Build.
	Registry = registry.Registry

	// Option configures a Builder.
	Option = registry.Option
)

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	return registry.NewBuilder(opts...)
}

// WithLogger sets the logger used by the built Registry.
func WithLogger(logger *slog.Logger) Option {
	return registry.WithLogger(logger)
}
