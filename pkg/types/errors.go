package types

import "errors"

// Lookup errors.
var (
	ErrNotFound      = errors.New("member not found")
	ErrNoDeclaration = errors.New("member has no entity declaration")
	ErrNotCollection = errors.New("member does not hold a collection")
)

// Configuration errors. These are reported when a container is registered
// or first resolved and are fatal for that container.
var (
	ErrEmptyDeclaration = errors.New("entity declaration lists no entity types")
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrDuplicateEntity  = errors.New("entity type already registered")
	ErrAmbiguousMember  = errors.New("ambiguous member")
	ErrNotContainer     = errors.New("container type must be a struct")
)
