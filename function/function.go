// Package function implements the host-provided function registry that
// snexpr Func nodes resolve against at parse time.
package function

// Entry is a single registered callback: a name the parser resolves call
// expressions against, the callback itself, an optional per-entry cleanup
// hook, and the size in bytes of the private context block allocated for
// each call site.
//
// Callback receives the entry it was invoked through (so one Go function
// can back several differently-configured entries), the already-evaluated
// argument results, and a pointer to its call-private context — a fresh
// zero-valued block of ContextSize bytes, owned by the AST node and handed
// back unchanged across repeated Eval calls on the same node.
type Entry struct {
	Name        string
	Callback    func(entry *Entry, args []float64, context []byte) (float64, error)
	Cleanup     func(entry *Entry, context []byte)
	ContextSize int
}

// Registry is a read-only (from the parser's perspective) table of host
// function entries, built once by the host before parsing.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry builds a Registry from the given entries. A duplicate name
// overwrites an earlier entry with the same name.
func NewRegistry(entries ...*Entry) *Registry {
	r := &Registry{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Name] = e
	}
	return r
}

// Lookup resolves name to its registered Entry.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[name]
	return e, ok
}
