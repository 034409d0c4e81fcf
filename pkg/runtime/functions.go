package runtime

import (
	"sort"

	"minicode/interpreter-go/pkg/ast"
)

// FunctionDefinition is a user procedure. The body is kept unevaluated.
type FunctionDefinition struct {
	Name   string
	Params []string
	Body   *ast.Block
}

// Arity is the number of declared parameters.
func (f *FunctionDefinition) Arity() int { return len(f.Params) }

// FunctionTable maps procedure names to their definitions.
type FunctionTable struct {
	defs map[string]*FunctionDefinition
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{defs: make(map[string]*FunctionDefinition)}
}

// Define stores a definition, replacing any previous one with the same name.
func (t *FunctionTable) Define(name string, params []string, body *ast.Block) *FunctionDefinition {
	copied := make([]string, len(params))
	copy(copied, params)
	def := &FunctionDefinition{Name: name, Params: copied, Body: body}
	t.defs[name] = def
	return def
}

func (t *FunctionTable) Lookup(name string) (*FunctionDefinition, bool) {
	def, ok := t.defs[name]
	return def, ok
}

func (t *FunctionTable) Len() int { return len(t.defs) }

// Names returns the defined procedure names in sorted order.
func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
