// Package vartable implements the host-visible variable table that
// snexpr expressions read from and assign into.
//
// Variables form an insertion-ordered singly-linked collection keyed by
// name, compared bytewise (matching the engine's lack of Unicode-aware
// identifier handling). A variable is created lazily the first time an
// expression references its name during parsing, and lives until the
// table itself is released; a *Variable handed out by LookupOrCreate is a
// stable pointer that every AST node referencing that name shares.
package vartable

// Variable is a single named slot holding one float64. The upstream engine
// gives its variable struct a union of a float and a string member, but
// the string member is never read back anywhere in eval — a Var node
// always converts its slot's numeric member to a ConstNum, and assignment
// always stores a numeric coercion of its right-hand side — so only the
// number is modeled here.
type Variable struct {
	Name  string
	Value float64
	next  *Variable
}

// Table is an ordered collection of Variables, newest first.
type Table struct {
	head *Variable
}

// New returns an empty variable table.
func New() *Table {
	return &Table{}
}

// LookupOrCreate returns the existing Variable named name, or creates and
// inserts a new zero-valued one if none exists yet. The returned pointer is
// stable for the lifetime of the table: callers (the parser building a Var
// AST node, or a host priming values before evaluation) may retain it.
func (t *Table) LookupOrCreate(name string) *Variable {
	if v := t.Lookup(name); v != nil {
		return v
	}
	v := &Variable{Name: name, next: t.head}
	t.head = v
	return v
}

// Lookup returns the existing Variable named name, or nil if the table has
// never seen that name.
func (t *Table) Lookup(name string) *Variable {
	for v := t.head; v != nil; v = v.next {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Len reports how many distinct variables the table currently holds.
func (t *Table) Len() int {
	n := 0
	for v := t.head; v != nil; v = v.next {
		n++
	}
	return n
}

// Each calls fn once per variable, in most-recently-created-first order
// (the order the underlying linked list stores them in). Mutating the
// table from within fn is not supported.
func (t *Table) Each(fn func(*Variable)) {
	for v := t.head; v != nil; v = v.next {
		fn(v)
	}
}

// Reset drops every variable from the table. Any *Variable obtained from a
// prior LookupOrCreate becomes a dangling reference; callers must not keep
// evaluating an AST built against this table afterward.
func (t *Table) Reset() {
	t.head = nil
}
