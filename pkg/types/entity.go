package types

import "reflect"

// EntityType describes a value type managed by the CRUD engine.
type EntityType struct {
	// Name is the catalog name used in contains tags.
	Name string `json:"name" yaml:"name"`

	// Type is the Go type of the entity (never a pointer type).
	Type reflect.Type `json:"-" yaml:"-"`
}

// EntityOf returns the EntityType for T named after the Go type.
func EntityOf[T any]() EntityType {
	t := Indirect(reflect.TypeFor[T]())
	return EntityType{Name: t.Name(), Type: t}
}

// Matches reports whether v is a value of the entity type or a pointer to one.
func (e EntityType) Matches(v any) bool {
	if v == nil || e.Type == nil {
		return false
	}
	return Indirect(reflect.TypeOf(v)) == e.Type
}

// String returns the entity name.
func (e EntityType) String() string {
	return e.Name
}

// Indirect strips pointer indirections from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
