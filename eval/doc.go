/*
Package eval implements the Evaluator of spec §4.2: the tree-walk
primitives resolve/invoke/num/str/tru, the top-level run loop, and the
error/signal/trap machinery of spec §4.5 and §7. It implements
node.Evaluator, so builtins' NativeFunc callbacks call back into it
without builtins needing to import eval directly; eval does not import
builtins either — cmd/aminstall/main.go imports both and wires them
together.

Grounded on terex/eval.go's Eval/evalAtom/evalList (a single small
dispatch function per AST shape, mutating Environment.lastError rather
than using Go panic/recover for control flow) and, for error/control
handling specifically, the same mutate-through-receiver-state idiom
generalized from one error slot into this language's richer Code+Signal
split (spec §4.5).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'aminstall.eval'.
func tracer() tracing.Trace {
	return tracing.Select("aminstall.eval")
}
