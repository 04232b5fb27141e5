/*
Package node implements the tagged-variant AST record of spec §3: a
single Node type occupied selectively by Kind, plus the constructor and
tree-mutation API of §4.1 (Push, Append, Kill). It also declares the
Evaluator interface Native callbacks dispatch through, so that a Native's
call can reach the environment, host and dialog layers without node
importing any of them concretely — see host.Host and dialog.Dialog,
which are themselves free of any dependency back on node.

Grounded on terex.Atom/GCons (_examples/npillmayer-gorgo/terex/terex.go):
this package keeps the teacher's "one small tagged struct, explicit
constructors per tag" shape, generalized from terex's Lisp-cons-cell
pairs to this language's fixed node kinds with pointer slices instead of
car/cdr chains — a Go slice naturally replaces the C source's `end()`
sentinel (len(children)==0 means "no more children").

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 the aminstall contributors.
*/
package node

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'aminstall.node'.
func tracer() tracing.Trace {
	return tracing.Select("aminstall.node")
}
