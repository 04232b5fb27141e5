package builtins

import (
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// stopped reports whether a loop body's result means "an error or a
// Signal is unwinding" — a builtin only sees node.Evaluator, which does
// not expose the error slot directly, so this checks for the shared
// ErrorNode sentinel Fail always returns plus the Signal accessor.
func stopped(ev node.Evaluator, result *node.Node) bool {
	return result == node.ErrorNode || ev.Signal().Unwinding()
}

// bIf implements (if P THEN [ELSE]) (spec §4.4).
func bIf(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	if ev.Tru(args[0]) {
		if len(args) > 1 {
			return ev.Invoke(args[1])
		}
		return node.DangleNode
	}
	if len(args) > 2 {
		return ev.Invoke(args[2])
	}
	return node.DangleNode
}

// bWhile implements (while P BODY): pre-test loop.
func bWhile(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 2 {
		return node.DangleNode
	}
	last := node.DangleNode
	for ev.Tru(args[0]) {
		last = ev.Invoke(args[1])
		if stopped(ev, last) {
			break
		}
	}
	return last
}

// bUntil implements (until P BODY): post-test loop.
func bUntil(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 2 {
		return node.DangleNode
	}
	last := node.DangleNode
	for {
		last = ev.Invoke(args[1])
		if stopped(ev, last) {
			break
		}
		if ev.Tru(args[0]) {
			break
		}
	}
	return last
}

// bSelect implements (select N V0 V1 ...): out-of-range returns Number 0.
func bSelect(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(0)
	}
	idx := int(ev.Num(args[0]))
	choices := args[1:]
	if idx < 0 || idx >= len(choices) {
		return node.NewNumber(0)
	}
	return ev.Resolve(choices[idx])
}

// bTrap implements (trap MASK BODY) over Evaluator.Trap.
func bTrap(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 2 {
		return node.DangleNode
	}
	mask := uint32(ev.Num(args[0]))
	body := args[1]
	return ev.Trap(mask, func() *node.Node { return ev.Invoke(body) })
}

// bForeach implements (foreach DIR PAT STMTS): lists DIR, and for each
// entry whose name matches the Amiga glob PAT, binds @each-name/@each-type
// (file=1, dir=2) and evaluates STMTS.
func bForeach(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 3 {
		return node.DangleNode
	}
	dir := ev.Str(args[0])
	pat := ev.Str(args[1])
	stmts := args[2]

	pattern, err := ev.Host().CompilePattern(pat)
	if err != nil {
		return ev.Fail(ierrors.ErrNoItem, n.Pos, "bad pattern: "+pat)
	}
	entries, err := ev.Host().ReadDir(dir)
	if err != nil {
		return ev.Fail(ierrors.ErrNoSuchFileOrDir, n.Pos, dir)
	}
	last := node.DangleNode
	for _, e := range entries {
		if !pattern.Match(e.Name) {
			continue
		}
		ev.SetStrVar("each-name", e.Name)
		if e.Kind == host.Dir {
			ev.SetNumVar("each-type", 2)
		} else {
			ev.SetNumVar("each-type", 1)
		}
		last = ev.Invoke(stmts)
		if stopped(ev, last) {
			break
		}
	}
	return last
}

// Procedure builds a Native that, when evaluated, registers custom as the
// script-wide Custom named custom.Name (spec §4.4: "(procedure NAME ARGS?
// BODY) - define a Custom; no effect at call site"). Since this module has
// no parser, the Custom itself (with its formals already Append-ed and its
// body already Push-ed) is built by the caller with node.NewCustom; this
// wraps that construction step as the operator spec.md names.
func Procedure(custom *node.Node) *node.Node {
	return node.NewNative("procedure", node.RetDangle, func(ev node.Evaluator, n *node.Node) *node.Node {
		ev.DefineProcedure(custom)
		return node.DangleNode
	})
}

// OnError builds a Native that, when evaluated, installs body as the
// @onerror handler (spec §4.4/§7).
func OnError(body ...*node.Node) *node.Node {
	custom := node.NewCustom("@onerror")
	for _, stmt := range body {
		custom.Push(stmt)
	}
	return node.NewNative("onerror", node.RetDangle, func(ev node.Evaluator, n *node.Node) *node.Node {
		ev.DefineProcedure(custom)
		return node.DangleNode
	})
}
