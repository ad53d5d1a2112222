package types

import (
	"fmt"
	"reflect"
)

// MemberKind tells whether a member is a field or a method.
type MemberKind int

// Member kinds.
const (
	MemberField MemberKind = iota
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MemberKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Member is a named attachment point on a container type.
type Member struct {
	Name string     `json:"name" yaml:"name"`
	Kind MemberKind `json:"kind" yaml:"kind"`

	// Owner is the type that carries the member: the container itself or
	// an embedded ancestor.
	Owner reflect.Type `json:"-" yaml:"-"`

	// Depth is the embedding depth of Owner below the container (0 for
	// members declared on the container itself).
	Depth int `json:"depth" yaml:"depth"`

	// Index is the field index path from the container. Nil for methods.
	Index []int `json:"-" yaml:"-"`
}

// Inherited reports whether the member comes from an embedded ancestor.
func (m Member) Inherited() bool {
	return m.Depth > 0
}

// Declaration pairs a member with the entity types its collection holds.
type Declaration struct {
	Member   Member       `json:"member" yaml:"member"`
	Entities []EntityType `json:"entities" yaml:"entities"`
}

// EntityNames returns the declared entity names in order.
func (d Declaration) EntityNames() []string {
	names := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		names[i] = e.Name
	}
	return names
}
