package env

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/amiga-tools/aminstall/node"
)

// SymbolTable is an ordered, case-insensitive name -> *node.Node index.
// Grounded on runtime/symtable.go's SymbolTable (a map-backed table
// attached to a Scope), generalized to also preserve definition order via
// an arraylist.List so a future (database "globals") dump or debug trace
// can list bindings in the order scripts defined them, not random map
// order.
type SymbolTable struct {
	mu    sync.Mutex
	order *arraylist.List
	index map[string]*node.Node
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{order: arraylist.New(), index: make(map[string]*node.Node)}
}

// Get looks up a binding by case-insensitive name.
func (t *SymbolTable) Get(name string) (*node.Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.index[strings.ToLower(name)]
	return s, ok
}

// Define installs sym under its own Name, preserving first-definition
// order; redefining an existing name replaces it in place.
func (t *SymbolTable) Define(sym *node.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := strings.ToLower(sym.Name)
	if _, exists := t.index[key]; !exists {
		t.order.Add(sym)
	}
	t.index[key] = sym
}

// Each walks bindings in definition order.
func (t *SymbolTable) Each(fn func(*node.Node)) {
	t.mu.Lock()
	snapshot := t.order.Values()
	t.mu.Unlock()
	for _, v := range snapshot {
		fn(v.(*node.Node))
	}
}

// Size reports the number of distinct bindings.
func (t *SymbolTable) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Size()
}

// Environment is the binding environment of spec §4.3: a global root
// Context plus the reserved-variable table. Lexical scoping for
// procedure arguments lives directly on the *node.Node tree (Custom and
// Context nodes carry their own Symbols); Environment only adds the
// global table lookup at the end of that chain and the separate
// reserved-variable namespace.
type Environment struct {
	Root       *node.Node
	globals    *SymbolTable
	procedures *SymbolTable
	reserved   *Reserved
}

// New creates an Environment with a fresh global root Context and
// reserved-variable table seeded by Bootstrap(opts).
func New(opts BootstrapOptions) *Environment {
	return &Environment{
		Root:       node.NewContext(),
		globals:    NewSymbolTable(),
		procedures: NewSymbolTable(),
		reserved:   Bootstrap(opts),
	}
}

// Reserved exposes the "@..." variable table.
func (e *Environment) Reserved() *Reserved { return e.reserved }

// Globals exposes the global symbol table, e.g. for a debug dump.
func (e *Environment) Globals() *SymbolTable { return e.globals }

// DefineProcedure registers a Custom node for later CusRef/@onerror
// lookup by name (spec §4.4's (procedure), §7's onerror registration).
func (e *Environment) DefineProcedure(custom *node.Node) {
	e.procedures.Define(custom)
}

// FindProcedure looks up a registered Custom by case-insensitive name.
func (e *Environment) FindProcedure(name string) (*node.Node, bool) {
	return e.procedures.Get(name)
}

// FindSymbol implements spec §4.2's find_symbol: first the symbols of
// the nearest enclosing Custom (procedure arguments), then each
// enclosing Context walking up Parent edges, finally the global table.
func (e *Environment) FindSymbol(from *node.Node, name string) (*node.Node, bool) {
	for cur := from; cur != nil; cur = cur.Parent {
		if cur.Kind == node.Custom {
			if s, ok := cur.FindLocal(name); ok {
				return s, true
			}
			break // only the *nearest* enclosing Custom's formals are searched
		}
	}
	for cur := from; cur != nil; cur = cur.Parent {
		if cur.Kind == node.Context {
			if s, ok := cur.FindLocal(name); ok {
				return s, true
			}
		}
	}
	return e.globals.Get(name)
}

// Bind implements spec §4.3's (set)/(symbolset) rule: update a matching
// formal of the nearest enclosing Custom in place, else install (or
// update) a binding in the global root Context.
func (e *Environment) Bind(from *node.Node, name string, value *node.Node) {
	for cur := from; cur != nil; cur = cur.Parent {
		if cur.Kind == node.Custom {
			if s, ok := cur.FindLocal(name); ok {
				s.Resolved = value
				return
			}
			break
		}
	}
	if s, ok := e.globals.Get(name); ok {
		s.Resolved = value
		return
	}
	sym := node.NewSymbol(name)
	sym.Resolved = value
	e.globals.Define(sym)
	e.Root.Append(sym)
}
