package types

import "reflect"

// Registry reports, for a container type, which members hold collections
// of which entity types. Implementations are immutable once built and safe
// for concurrent use.
type Registry interface {
	// DeclarationsFor returns every declared member of container, including
	// members inherited through embedding that are not overridden.
	// Fields come first in struct order, then methods by name.
	// Returns a configuration error (ErrEmptyDeclaration, ErrUnknownEntity,
	// ErrAmbiguousMember, ErrNotContainer) if container is misconfigured.
	DeclarationsFor(container reflect.Type) ([]Declaration, error)

	// EntityTypesFor returns the entity types declared on the named member.
	// Returns ErrNotFound if no such member exists and ErrNoDeclaration if
	// it exists without a declaration. The result is never empty.
	EntityTypesFor(container reflect.Type, member string) ([]EntityType, error)

	// HasDeclaration reports whether the named member carries a declaration.
	// It never fails; unknown members report false.
	HasDeclaration(container reflect.Type, member string) bool
}
