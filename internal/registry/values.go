package registry

import (
	"fmt"
	"reflect"

	"github.com/mesh-intelligence/crudable/pkg/types"
)

var errorType = reflect.TypeFor[error]()

// Values returns the elements of the collection held by a declared member of
// container, which may be a struct value or a pointer to one. Fields are read
// directly; methods are called with no arguments and may return an error as a
// second result. A nil pointer on the way to the member yields no elements.
func (r *Registry) Values(container any, member string) ([]any, error) {
	d, err := r.declaration(reflect.TypeOf(container), member)
	if err != nil {
		return nil, err
	}

	v := reflect.ValueOf(container)
	var coll reflect.Value
	switch d.Member.Kind {
	case types.MemberField:
		coll, err = fieldValue(v, d.Member.Index)
	case types.MemberMethod:
		coll, err = methodValue(v, member)
	}
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", d.Member.Owner.Name(), member, err)
	}
	if !coll.IsValid() {
		return nil, nil
	}
	return elements(coll)
}

// ValuesOf returns the elements of Values whose dynamic type is the named
// entity type. Returns ErrUnknownEntity if entity is not declared on member.
func (r *Registry) ValuesOf(container any, member, entity string) ([]any, error) {
	d, err := r.declaration(reflect.TypeOf(container), member)
	if err != nil {
		return nil, err
	}
	var et types.EntityType
	found := false
	for _, e := range d.Entities {
		if e.Name == entity {
			et, found = e, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s.%s: %w %q", d.Member.Owner.Name(), member, types.ErrUnknownEntity, entity)
	}

	all, err := r.Values(container, member)
	if err != nil {
		return nil, err
	}
	var out []any
	for _, item := range all {
		if et.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// fieldValue follows index from v, stopping with an invalid Value at a nil
// pointer.
func fieldValue(v reflect.Value, index []int) (reflect.Value, error) {
	v = deref(v)
	if !v.IsValid() {
		return reflect.Value{}, nil
	}
	for i, x := range index {
		if i > 0 {
			v = deref(v)
			if !v.IsValid() {
				return reflect.Value{}, nil
			}
		}
		v = v.Field(x)
	}
	if !v.CanInterface() {
		return reflect.Value{}, fmt.Errorf("unexported field: %w", types.ErrNotCollection)
	}
	return v, nil
}

// methodValue calls the named method on v. Value receivers are copied into
// an addressable value so pointer-receiver methods are reachable.
func methodValue(v reflect.Value, name string) (reflect.Value, error) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return reflect.Value{}, nil
	}
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}
	m := v.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, types.ErrNotFound
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 ||
		(mt.NumOut() == 2 && mt.Out(1) != errorType) {
		return reflect.Value{}, fmt.Errorf("method signature %s: %w", mt, types.ErrNotCollection)
	}

	var out []reflect.Value
	err := callSafely(func() { out = m.Call(nil) })
	if err != nil {
		return reflect.Value{}, err
	}
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

// callSafely reports a panic in the called method as an error.
func callSafely(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("method panicked: %v", p)
		}
	}()
	fn()
	return nil
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func elements(v reflect.Value) ([]any, error) {
	v = deref(v)
	if !v.IsValid() {
		return nil, nil
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = v.Index(i).Interface()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("kind %s: %w", v.Kind(), types.ErrNotCollection)
	}
}
