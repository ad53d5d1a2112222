package registry

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mesh-intelligence/crudable/pkg/types"
)

// resolution is the flattened view of one container type.
type resolution struct {
	decls   []types.Declaration
	members map[string]*memberInfo
}

type memberInfo struct {
	member   types.Member
	declared bool
	entities []types.EntityType
}

// candidate is one member found while walking the embedding tree.
type candidate struct {
	member   types.Member
	declared bool
	entities []types.EntityType
	seq      int
}

// build walks the embedding tree of t and keeps, for each member name, the
// shallowest candidate. Every declaration found on the way is validated, so
// a misconfigured ancestor fails the container even when it is overridden.
func (r *Registry) build(t reflect.Type) (*resolution, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", t, types.ErrNotContainer)
	}

	w := walker{r: r}
	if err := w.walk(t, 0, nil, map[reflect.Type]bool{}); err != nil {
		return nil, err
	}

	byName := make(map[string][]candidate)
	var names []string
	for _, c := range w.found {
		if _, ok := byName[c.member.Name]; !ok {
			names = append(names, c.member.Name)
		}
		byName[c.member.Name] = append(byName[c.member.Name], c)
	}

	methods := reflect.PointerTo(t)
	res := &resolution{members: make(map[string]*memberInfo)}
	var winners []candidate
	for _, name := range names {
		cs := byName[name]
		minDepth := slices.MinFunc(cs, func(a, b candidate) int {
			return cmp.Compare(a.member.Depth, b.member.Depth)
		}).member.Depth
		var top []candidate
		for _, c := range cs {
			if c.member.Depth == minDepth {
				top = append(top, c)
			}
		}
		// A method in the method set of *t is never shadowed by a field, so
		// it hides every field candidate of the same name.
		if top[0].member.Kind == types.MemberField {
			if _, ok := methods.MethodByName(name); ok {
				res.members[name] = &memberInfo{member: types.Member{
					Name:  name,
					Kind:  types.MemberMethod,
					Owner: t,
				}}
				continue
			}
		}
		if len(top) > 1 {
			// Go rejects ambiguous selectors; an undeclared ambiguous
			// member is simply not visible.
			for _, c := range top {
				if c.declared {
					return nil, fmt.Errorf("%s.%s via %s and %s: %w",
						t.Name(), name, top[0].member.Owner, top[1].member.Owner, types.ErrAmbiguousMember)
				}
			}
			continue
		}
		win := top[0]
		res.members[name] = &memberInfo{member: win.member, declared: win.declared, entities: win.entities}
		if win.declared {
			winners = append(winners, win)
		}
	}

	slices.SortStableFunc(winners, func(a, b candidate) int {
		if a.member.Kind != b.member.Kind {
			return cmp.Compare(a.member.Kind, b.member.Kind)
		}
		if a.member.Kind == types.MemberMethod {
			return strings.Compare(a.member.Name, b.member.Name)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	res.decls = make([]types.Declaration, len(winners))
	for i, c := range winners {
		res.decls[i] = types.Declaration{Member: c.member, Entities: c.entities}
	}
	return res, nil
}

// walker collects candidates in depth-first struct order.
type walker struct {
	r     *Registry
	found []candidate
	seq   int
}

func (w *walker) add(c candidate) {
	c.seq = w.seq
	w.seq++
	w.found = append(w.found, c)
}

func (w *walker) walk(t reflect.Type, depth int, prefix []int, onPath map[reflect.Type]bool) error {
	onPath[t] = true
	defer delete(onPath, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(slices.Clone(prefix), i)
		c := candidate{member: types.Member{
			Name:  f.Name,
			Kind:  types.MemberField,
			Owner: t,
			Depth: depth,
			Index: index,
		}}
		if tag, ok := f.Tag.Lookup(TagName); ok {
			entities, err := w.r.parseEntities(strings.Split(tag, ","))
			if err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name(), f.Name, err)
			}
			c.declared = true
			c.entities = entities
		}
		w.add(c)

		if f.Anonymous {
			et := types.Indirect(f.Type)
			if et.Kind() == reflect.Struct && !onPath[et] {
				if err := w.walk(et, depth+1, index, onPath); err != nil {
					return err
				}
			}
		}
	}

	for _, d := range w.r.methods[t] {
		entities, err := w.r.parseEntities(d.entities)
		if err != nil {
			return fmt.Errorf("%s.%s(): %w", t.Name(), d.name, err)
		}
		w.add(candidate{
			member: types.Member{
				Name:  d.name,
				Kind:  types.MemberMethod,
				Owner: t,
				Depth: depth,
			},
			declared: true,
			entities: entities,
		})
	}
	return nil
}

// parseEntities resolves entity names against the catalog. Blank names are
// ignored and duplicates keep their first position.
func (r *Registry) parseEntities(names []string) ([]types.EntityType, error) {
	var out []types.EntityType
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		e, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", types.ErrUnknownEntity, name)
		}
		seen[name] = true
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, types.ErrEmptyDeclaration
	}
	return out, nil
}
