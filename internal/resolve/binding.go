package resolve

import (
	"cmp"
	"slices"

	"github.com/specialistvlad/pipelineir/internal/model"
)

// Binding records that a scope needs (or exposes) a parameter. Source names
// the sibling scope the value comes from; empty means it is forwarded from
// the enclosing scope (for inputs) or produced by the scope's own executable
// (for outputs).
type Binding struct {
	Param  *model.Parameter
	Source string
}

// BindingSet is an unordered set of bindings, identified by parameter
// pattern and source.
type BindingSet struct {
	items map[string]Binding
}

func bindingKey(b Binding) string {
	return b.Param.Pattern() + "\x00" + b.Source
}

func (s *BindingSet) add(b Binding) {
	if s.items == nil {
		s.items = make(map[string]Binding)
	}
	s.items[bindingKey(b)] = b
}

// Len returns the number of bindings.
func (s *BindingSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Sorted returns the bindings ordered by parameter full name, then source.
func (s *BindingSet) Sorted() []Binding {
	if s == nil {
		return nil
	}
	out := make([]Binding, 0, len(s.items))
	for _, b := range s.items {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return cmp.Or(
			cmp.Compare(a.Param.FullName(), b.Param.FullName()),
			cmp.Compare(a.Param.Pattern(), b.Param.Pattern()),
			cmp.Compare(a.Source, b.Source),
		)
	})
	return out
}

// Lookup returns the binding for p. If p is bound from several sources the
// first in sorted order wins.
func (s *BindingSet) Lookup(p *model.Parameter) (Binding, bool) {
	for _, b := range s.Sorted() {
		if b.Param.Pattern() == p.Pattern() {
			return b, true
		}
	}
	return Binding{}, false
}

// Contains reports whether the exact binding is present.
func (s *BindingSet) Contains(p *model.Parameter, source string) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[bindingKey(Binding{Param: p, Source: source})]
	return ok
}

// Bindings maps scope names to binding sets.
type Bindings map[string]*BindingSet

// For returns the sorted bindings of a scope.
func (b Bindings) For(scope string) []Binding {
	return b[scope].Sorted()
}

// Set returns the binding set of a scope, possibly nil.
func (b Bindings) Set(scope string) *BindingSet {
	return b[scope]
}

func (b Bindings) add(scope string, binding Binding) {
	set, ok := b[scope]
	if !ok {
		set = &BindingSet{}
		b[scope] = set
	}
	set.add(binding)
}
