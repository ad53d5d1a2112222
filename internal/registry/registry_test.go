package registry

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crudable/pkg/types"
)

func names(es []types.EntityType) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func TestEntityTypesFor(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name      string
		container reflect.Type
		member    string
		want      []string
		wantErr   error
	}{
		{
			name:      "declared field",
			container: reflect.TypeFor[Base](),
			member:    "Widgets",
			want:      []string{"Widget"},
		},
		{
			name:      "heterogeneous field keeps tag order",
			container: reflect.TypeFor[Base](),
			member:    "Parts",
			want:      []string{"Part", "Gadget"},
		},
		{
			name:      "undeclared field",
			container: reflect.TypeFor[Base](),
			member:    "Name",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "unknown member",
			container: reflect.TypeFor[Base](),
			member:    "doesNotExist",
			wantErr:   types.ErrNotFound,
		},
		{
			name:      "inherited field",
			container: reflect.TypeFor[Derived](),
			member:    "Widgets",
			want:      []string{"Widget"},
		},
		{
			name:      "own field next to inherited ones",
			container: reflect.TypeFor[Derived](),
			member:    "Extra",
			want:      []string{"Gadget"},
		},
		{
			name:      "undeclared inherited field",
			container: reflect.TypeFor[Derived](),
			member:    "Name",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "embedded field itself is a member",
			container: reflect.TypeFor[Derived](),
			member:    "Base",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "override wins over ancestor",
			container: reflect.TypeFor[Override](),
			member:    "Widgets",
			want:      []string{"Gadget"},
		},
		{
			name:      "undeclared shadow hides ancestor declaration",
			container: reflect.TypeFor[Shadow](),
			member:    "Parts",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "own method hides inherited field declaration",
			container: reflect.TypeFor[MethodShadow](),
			member:    "Widgets",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "field next to hiding method stays inherited",
			container: reflect.TypeFor[MethodShadow](),
			member:    "Parts",
			want:      []string{"Part", "Gadget"},
		},
		{
			name:      "inherited through pointer embedding",
			container: reflect.TypeFor[Shadow](),
			member:    "Widgets",
			want:      []string{"Widget"},
		},
		{
			name:      "duplicates removed",
			container: reflect.TypeFor[Dup](),
			member:    "Things",
			want:      []string{"Widget", "Gadget"},
		},
		{
			name:      "declared method",
			container: reflect.TypeFor[Holder](),
			member:    "Items",
			want:      []string{"Widget", "Gadget"},
		},
		{
			name:      "undeclared method",
			container: reflect.TypeFor[Holder](),
			member:    "Count",
			wantErr:   types.ErrNoDeclaration,
		},
		{
			name:      "inherited method",
			container: reflect.TypeFor[HolderChild](),
			member:    "Items",
			want:      []string{"Widget", "Gadget"},
		},
		{
			name:      "overridden method",
			container: reflect.TypeFor[HolderOverride](),
			member:    "Items",
			want:      []string{"Gadget"},
		},
		{
			name:      "pointer container type is normalised",
			container: reflect.TypeFor[*Derived](),
			member:    "Parts",
			want:      []string{"Part", "Gadget"},
		},
		{
			name:      "ambiguous undeclared member is not visible",
			container: reflect.TypeFor[Both](),
			member:    "ID",
			wantErr:   types.ErrNotFound,
		},
		{
			name:      "self-embedding terminates",
			container: reflect.TypeFor[Recursive](),
			member:    "Widgets",
			want:      []string{"Widget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.EntityTypesFor(tt.container, tt.member)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.False(t, r.HasDeclaration(tt.container, tt.member))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			assert.True(t, r.HasDeclaration(tt.container, tt.member))
		})
	}
}

func TestEntityTypesFor_ResolvesGoTypes(t *testing.T) {
	r := newTestRegistry(t)

	got, err := r.EntityTypesFor(reflect.TypeFor[Base](), "Parts")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, reflect.TypeFor[Part](), got[0].Type)
	assert.Equal(t, reflect.TypeFor[Gadget](), got[1].Type, "pointer samples register the element type")
}

func TestDeclarationsFor(t *testing.T) {
	r := newTestRegistry(t)

	type want struct {
		name  string
		kind  types.MemberKind
		owner reflect.Type
		depth int
	}
	tests := []struct {
		name      string
		container reflect.Type
		want      []want
	}{
		{
			name:      "own fields in struct order",
			container: reflect.TypeFor[Base](),
			want: []want{
				{"Widgets", types.MemberField, reflect.TypeFor[Base](), 0},
				{"Parts", types.MemberField, reflect.TypeFor[Base](), 0},
			},
		},
		{
			name:      "inherited fields spliced at embedding position",
			container: reflect.TypeFor[Derived](),
			want: []want{
				{"Widgets", types.MemberField, reflect.TypeFor[Base](), 1},
				{"Parts", types.MemberField, reflect.TypeFor[Base](), 1},
				{"Extra", types.MemberField, reflect.TypeFor[Derived](), 0},
			},
		},
		{
			name:      "override reported once",
			container: reflect.TypeFor[Override](),
			want: []want{
				{"Parts", types.MemberField, reflect.TypeFor[Base](), 1},
				{"Widgets", types.MemberField, reflect.TypeFor[Override](), 0},
			},
		},
		{
			name:      "shadowed declaration dropped",
			container: reflect.TypeFor[Shadow](),
			want: []want{
				{"Widgets", types.MemberField, reflect.TypeFor[Base](), 1},
			},
		},
		{
			name:      "field hidden by own method dropped",
			container: reflect.TypeFor[MethodShadow](),
			want: []want{
				{"Parts", types.MemberField, reflect.TypeFor[Base](), 1},
			},
		},
		{
			name:      "inherited method",
			container: reflect.TypeFor[HolderChild](),
			want: []want{
				{"Items", types.MemberMethod, reflect.TypeFor[Holder](), 1},
			},
		},
		{
			name:      "overridden method",
			container: reflect.TypeFor[HolderOverride](),
			want: []want{
				{"Items", types.MemberMethod, reflect.TypeFor[HolderOverride](), 0},
			},
		},
		{
			name:      "no declarations",
			container: reflect.TypeFor[Both](),
			want:      []want{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := r.DeclarationsFor(tt.container)
			require.NoError(t, err)
			got := make([]want, len(decls))
			for i, d := range decls {
				got[i] = want{d.Member.Name, d.Member.Kind, d.Member.Owner, d.Member.Depth}
				assert.NotEmpty(t, d.Entities, "declaration of %s must not be empty", d.Member.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeclarationsFor_MatchesEntityTypesFor(t *testing.T) {
	r := newTestRegistry(t)

	for _, c := range r.Containers() {
		decls, err := r.DeclarationsFor(c)
		require.NoError(t, err)
		for _, d := range decls {
			got, err := r.EntityTypesFor(c, d.Member.Name)
			require.NoError(t, err)
			assert.Equal(t, d.Entities, got, "%s.%s", c.Name(), d.Member.Name)
		}
	}
}

func TestDeclarationsFor_Idempotent(t *testing.T) {
	r := newTestRegistry(t)
	container := reflect.TypeFor[Derived]()

	first, err := r.DeclarationsFor(container)
	require.NoError(t, err)

	// Callers cannot corrupt cached data through the returned slices.
	first[0].Entities[0] = types.EntityType{Name: "Mutated"}
	first[0].Member.Index[0] = 99

	second, err := r.DeclarationsFor(container)
	require.NoError(t, err)
	third, err := r.DeclarationsFor(container)
	require.NoError(t, err)

	assert.Equal(t, second, third)
	assert.Equal(t, "Widget", second[0].Entities[0].Name)
	assert.Equal(t, []int{0, 0}, second[0].Member.Index)
}

func TestDeclarationsFor_NotContainer(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.DeclarationsFor(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, types.ErrNotContainer)

	_, err = r.DeclarationsFor(nil)
	assert.ErrorIs(t, err, types.ErrNotContainer)

	assert.False(t, r.HasDeclaration(reflect.TypeFor[[]Widget](), "Widgets"))
}

func TestLazyResolution_ConfigurationErrors(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name      string
		container reflect.Type
		wantErr   error
	}{
		{"empty tag", reflect.TypeFor[EmptyTag](), types.ErrEmptyDeclaration},
		{"blank tag", reflect.TypeFor[BlankTag](), types.ErrEmptyDeclaration},
		{"unknown entity", reflect.TypeFor[UnknownTag](), types.ErrUnknownEntity},
		{"ambiguous declared member", reflect.TypeFor[Ambiguous](), types.ErrAmbiguousMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.DeclarationsFor(tt.container)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = r.EntityTypesFor(tt.container, "Things")
			assert.ErrorIs(t, err, tt.wantErr, "lookups never coerce a misconfiguration into a result")
			assert.False(t, r.HasDeclaration(tt.container, "Things"))

			// The cached error is reported again.
			_, err = r.DeclarationsFor(tt.container)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLazyResolution_Concurrent(t *testing.T) {
	r := newTestRegistry(t)
	container := reflect.TypeFor[Recursive]()

	const workers = 32
	results := make([][]types.Declaration, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decls, err := r.DeclarationsFor(container)
			assert.NoError(t, err)
			results[i] = decls
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestMember(t *testing.T) {
	r := newTestRegistry(t)

	m, err := r.Member(reflect.TypeFor[Derived](), "Name")
	require.NoError(t, err)
	assert.Equal(t, types.MemberField, m.Kind)
	assert.Equal(t, reflect.TypeFor[Base](), m.Owner)
	assert.True(t, m.Inherited())

	m, err = r.Member(reflect.TypeFor[Holder](), "Count")
	require.NoError(t, err)
	assert.Equal(t, types.MemberMethod, m.Kind)

	m, err = r.Member(reflect.TypeFor[MethodShadow](), "Widgets")
	require.NoError(t, err)
	assert.Equal(t, types.MemberMethod, m.Kind)
	assert.Equal(t, reflect.TypeFor[MethodShadow](), m.Owner)

	_, err = r.Member(reflect.TypeFor[Holder](), "Missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCatalog(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, []string{"Widget", "Gadget", "Part"}, names(r.Entities()))

	e, ok := r.Entity("Gadget")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[Gadget](), e.Type)

	_, ok = r.Entity("Nope")
	assert.False(t, ok)

	containers := r.Containers()
	require.Len(t, containers, 9)
	assert.Equal(t, reflect.TypeFor[Base](), containers[0])

	c, ok := r.Container("HolderChild")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[HolderChild](), c)

	_, ok = r.Container("EmptyTag")
	assert.False(t, ok, "lazily resolved containers are not listed")
}
