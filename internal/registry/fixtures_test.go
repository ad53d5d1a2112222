package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type Widget struct{ ID string }
type Gadget struct{ ID string }
type Part struct{ ID string }

type Base struct {
	Widgets []Widget `contains:"Widget"`
	Parts   []*Part  `contains:"Part, Gadget"`
	Name    string
}

type Derived struct {
	Base
	Extra []Gadget `contains:"Gadget"`
}

type Override struct {
	Base
	Widgets []Gadget `contains:"Gadget"`
}

type Shadow struct {
	*Base
	Parts []*Part
}

type Dup struct {
	Things []Widget `contains:"Widget,Widget,Gadget"`
}

type Holder struct {
	items []any
}

func (h *Holder) Items() []any { return h.items }
func (h *Holder) Count() int   { return len(h.items) }

type HolderChild struct {
	Holder
}

type HolderOverride struct {
	Holder
}

func (h *HolderOverride) Items() []any { return h.items }

type MethodShadow struct {
	Base
}

func (MethodShadow) Widgets() int { return 0 }

type Single struct {
	One Widget `contains:"Widget"`
}

type Recursive struct {
	*Recursive
	Widgets []Widget `contains:"Widget"`
}

var errBoom = errors.New("boom")

type Failing struct{}

func (Failing) Load() ([]Widget, error) { return nil, errBoom }

type LeftPlain struct{ ID string }
type RightPlain struct{ ID string }

type Both struct {
	LeftPlain
	RightPlain
}

// Misconfigured containers, resolved lazily or registered to fail Build.

type EmptyTag struct {
	Things []Widget `contains:""`
}

type BlankTag struct {
	Things []Widget `contains:" , "`
}

type UnknownTag struct {
	Things []Widget `contains:"Nope"`
}

type Left struct {
	Items []Widget `contains:"Widget"`
}

type Right struct {
	Items []Gadget `contains:"Gadget"`
}

type Ambiguous struct {
	Left
	Right
}

// newTestBuilder returns a builder with the fixture entities and method
// declarations registered.
func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.Entity(Widget{}))
	require.NoError(t, b.Entity(&Gadget{}))
	require.NoError(t, b.Entity(Part{}))
	require.NoError(t, b.Method(Holder{}, "Items", "Widget", "Gadget"))
	require.NoError(t, b.Method(&HolderOverride{}, "Items", "Gadget"))
	require.NoError(t, b.Method(Failing{}, "Load", "Widget"))
	return b
}

// newTestRegistry builds the fixture registry with the well-formed
// containers registered.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	b := newTestBuilder(t)
	require.NoError(t, b.Container(Base{}, Derived{}, Override{}, Shadow{}, Dup{}, Holder{}, HolderChild{}, HolderOverride{}, MethodShadow{}))
	r, err := b.Build()
	require.NoError(t, err)
	return r
}
