package knowledge

import "cascade/internal/syntax"

// Registry merges providers. It is immutable after NewRegistry and safe
// for concurrent readers.
type Registry struct {
	properties     map[string]Entry
	atDirectives   map[string]Entry
	pseudoClasses  map[string]Entry
	pseudoElements map[string]Entry
}

var _ Oracle = (*Registry)(nil)

// NewRegistry merges providers in order; a later entry with the same
// normalized name replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		properties:     make(map[string]Entry),
		atDirectives:   make(map[string]Entry),
		pseudoClasses:  make(map[string]Entry),
		pseudoElements: make(map[string]Entry),
	}
	for _, p := range providers {
		if p == nil {
			continue
		}
		merge(r.properties, p.ProvideProperties())
		merge(r.atDirectives, p.ProvideAtDirectives())
		merge(r.pseudoClasses, p.ProvidePseudoClasses())
		merge(r.pseudoElements, p.ProvidePseudoElements())
	}
	return r
}

func merge(dst map[string]Entry, entries []Entry) {
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		dst[Normalize(e.Name)] = e
	}
}

// Default is the registry over the builtin tables only.
func Default() *Registry {
	return NewRegistry(Builtin())
}

func (r *Registry) IsKnownAtRule(name string) bool {
	_, ok := r.atDirectives[Normalize(name)]
	return ok
}

// IsKnownProperty treats custom properties (--x) as known.
func (r *Registry) IsKnownProperty(name string) bool {
	if len(name) > 2 && name[0] == '-' && name[1] == '-' {
		return true
	}
	_, ok := r.properties[Normalize(name)]
	return ok
}

func (r *Registry) IsKnownPseudoClass(name string) bool {
	_, ok := r.pseudoClasses[Normalize(name)]
	return ok
}

func (r *Registry) IsKnownPseudoElement(name string) bool {
	_, ok := r.pseudoElements[Normalize(name)]
	return ok
}

// Property returns the merged entry for a property name.
func (r *Registry) Property(name string) (Entry, bool) {
	e, ok := r.properties[Normalize(name)]
	return e, ok
}

// Counts reports the size of each table.
func (r *Registry) Counts() (properties, atDirectives, pseudoClasses, pseudoElements int) {
	return len(r.properties), len(r.atDirectives), len(r.pseudoClasses), len(r.pseudoElements)
}

// ForDialect wraps an oracle so that preprocessor directives of d count as
// known at-rules. Other dialects' directives stay unknown.
func ForDialect(o Oracle, d syntax.Dialect) Oracle {
	if o == nil {
		o = Default()
	}
	return dialectOracle{Oracle: o, dialect: d}
}

type dialectOracle struct {
	Oracle
	dialect syntax.Dialect
}

func (o dialectOracle) IsKnownAtRule(name string) bool {
	if syntax.Directive(name, o.dialect) != syntax.None {
		return true
	}
	return o.Oracle.IsKnownAtRule(name)
}
