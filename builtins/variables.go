package builtins

import (
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// bSet implements (set X V ...): X/V pairs, bound left to right.
func bSet(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	last := node.DangleNode
	for i := 0; i+1 < len(args); i += 2 {
		val := ev.Resolve(args[i+1])
		ev.Bind(n, args[i].Name, val)
		last = val
	}
	return last
}

// bSymbolSet implements (symbolset NAME V): the name is a computed String
// expression rather than a direct identifier occurrence.
func bSymbolSet(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 2 {
		return node.DangleNode
	}
	name := ev.Str(args[0])
	val := ev.Resolve(args[1])
	ev.Bind(n, name, val)
	return val
}

// bSymbolVal implements (symbolval NAME): lookup by computed name.
func bSymbolVal(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	name := ev.Str(args[0])
	if sym, ok := ev.FindSymbol(n, name); ok {
		if sym.Resolved == nil {
			return node.DangleNode
		}
		return sym.Resolved
	}
	if strict, _ := ev.GetNumVar("strict"); strict != 0 {
		return ev.Fail(ierrors.ErrUndefinedVariable, n.Pos, name)
	}
	return node.DangleNode
}
