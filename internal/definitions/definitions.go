// Package definitions implements the Definition Table of spec.md §4.B: the
// mapping from macro name to definition record. Per spec.md §9's own
// design note ("a hash map keyed by name is obviously superior and has no
// observable semantic difference" over the reference source's linear
// scan), this is a map, not a vector.
package definitions

import "github.com/cprep/cprep/internal/cpptoken"

// Kind classifies a Definition. NativeCallback and TypedefShaped are
// reserved for follow-on specs (spec.md §9 lists function-like macro
// expansion, native-callback definitions and typedef-as-preprocessor-
// definition as non-goals of this core); nothing in this package
// constructs them.
type Kind int

const (
	ObjectLike Kind = iota
	FunctionLike
	NativeCallback
	TypedefShaped
)

// Definition is a single entry owned by the Table: a name, its kind, an
// optional ordered parameter list, and its replacement-list body.
type Definition struct {
	Name       string
	Kind       Kind
	Parameters []string
	Body       []cpptoken.Token
}

// Table is the Definition Table: names are unique, and inserting a name
// that already exists replaces the prior entry wholesale.
type Table struct {
	defs map[string]*Definition
}

// NewTable returns an empty Definition Table.
func NewTable() *Table {
	return &Table{defs: make(map[string]*Definition)}
}

// Insert removes any existing record for name and installs a new one. A
// non-empty parameters slice makes the definition function-like;
// otherwise it is object-like. Insert always leaves exactly one record
// for name.
func (t *Table) Insert(name string, body []cpptoken.Token, parameters []string) *Definition {
	kind := ObjectLike
	if len(parameters) > 0 {
		kind = FunctionLike
	}
	def := &Definition{
		Name:       name,
		Kind:       kind,
		Parameters: parameters,
		Body:       body,
	}
	t.defs[name] = def
	return def
}

// Remove deletes the record for name, if any.
func (t *Table) Remove(name string) {
	delete(t.defs, name)
}

// Get returns the record for name, or (nil, false) if undefined.
func (t *Table) Get(name string) (*Definition, bool) {
	def, ok := t.defs[name]
	return def, ok
}

// ParameterIndex returns the zero-based position of name within def's
// parameter list, or -1 if def is nil or name is not a parameter.
func ParameterIndex(def *Definition, name string) int {
	if def == nil {
		return -1
	}
	for i, p := range def.Parameters {
		if p == name {
			return i
		}
	}
	return -1
}
