/*
Package env implements the binding environment of spec §4.3: the user
variable bindings created by (set)/(symbolset) and procedure arguments,
and the reserved "@..."-prefixed dotted system variables that configure
evaluator behavior and short-circuit prompts (spec §5, §6's "Startup
variables").

Grounded on runtime/symtable.go's Scope/SymbolTable pattern (a named
scope with its own symbol table, scopes linked in a tree via Parent):
generalized here to two concerns layered the way spec §9's design notes
ask for — "two hash maps (global, current procedure-local) layered
under a small stack for nested procedure calls" — except lexical scoping
for procedure arguments is carried directly on *node.Node.Symbols (the
nearest-enclosing Custom, walked via Parent), so env only needs to own
the global table and the separate reserved-variable table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package env

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'aminstall.env'.
func tracer() tracing.Trace {
	return tracing.Select("aminstall.env")
}
