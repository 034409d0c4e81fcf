package runtime

import (
	"sort"

	"minicode/interpreter-go/pkg/algebra"
)

// PolynomialRegistry is the run-wide namespace of named symbolic expressions.
// It is consulted before variables when identifiers are resolved. Entries are
// only overwritten, never removed, until the host calls Clear.
type PolynomialRegistry struct {
	entries map[string]algebra.Expr
}

func NewPolynomialRegistry() *PolynomialRegistry {
	return &PolynomialRegistry{entries: make(map[string]algebra.Expr)}
}

func (r *PolynomialRegistry) Set(name string, expr algebra.Expr) {
	r.entries[name] = expr
}

func (r *PolynomialRegistry) Get(name string) (algebra.Expr, bool) {
	e, ok := r.entries[name]
	return e, ok
}

func (r *PolynomialRegistry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *PolynomialRegistry) Len() int { return len(r.entries) }

// Clear empties the registry. Called by the host between runs.
func (r *PolynomialRegistry) Clear() {
	clear(r.entries)
}

// Names returns the registered names in sorted order.
func (r *PolynomialRegistry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
