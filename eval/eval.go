package eval

import (
	"github.com/amiga-tools/aminstall"
	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/env"
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// Evaluator implements node.Evaluator: the per-interpreter struct spec
// §9's design notes ask for, "carrying error, scratch buffer, dialog
// handle, host handle, and root Context" — generalized here to carry a
// Code/Signal pair and a trap-mask stack instead of a single error slot
// (spec §4.5).
type Evaluator struct {
	env    *env.Environment
	host   host.Host
	dialog dialog.Dialog
	root   *node.Node

	sig    ierrors.Signal
	sigMsg string

	hasErr  bool
	errCode ierrors.Code
	errLine aminstall.Pos
	errMsg  string

	trapStack []uint32

	logPath string
}

var _ node.Evaluator = (*Evaluator)(nil)

// New creates an Evaluator over the given environment and host/dialog
// adapters.
func New(e *env.Environment, h host.Host, d dialog.Dialog) *Evaluator {
	logPath, _ := e.Reserved().GetStr("log-file")
	return &Evaluator{env: e, host: h, dialog: d, logPath: logPath}
}

func (ev *Evaluator) Host() host.Host     { return ev.host }
func (ev *Evaluator) Dialog() dialog.Dialog { return ev.dialog }
func (ev *Evaluator) Root() *node.Node    { return ev.root }
func (ev *Evaluator) Env() *env.Environment { return ev.env }

func (ev *Evaluator) FindSymbol(from *node.Node, name string) (*node.Node, bool) {
	return ev.env.FindSymbol(from, name)
}

func (ev *Evaluator) Bind(from *node.Node, name string, value *node.Node) {
	ev.env.Bind(from, name, value)
}

func (ev *Evaluator) DefineProcedure(custom *node.Node) { ev.env.DefineProcedure(custom) }
func (ev *Evaluator) FindProcedure(name string) (*node.Node, bool) {
	return ev.env.FindProcedure(name)
}

func (ev *Evaluator) GetNumVar(name string) (int64, bool)  { return ev.env.Reserved().GetNum(name) }
func (ev *Evaluator) GetStrVar(name string) (string, bool) { return ev.env.Reserved().GetStr(name) }
func (ev *Evaluator) SetNumVar(name string, v int64)       { ev.env.Reserved().SetNum(name, v) }
func (ev *Evaluator) SetStrVar(name string, v string)      { ev.env.Reserved().SetStr(name, v) }

// Resolve implements spec §4.2's resolve primitive.
func (ev *Evaluator) Resolve(n *node.Node) *node.Node {
	if n == nil {
		return node.DangleNode
	}
	switch n.Kind {
	case node.Number, node.String, node.Option, node.Status, node.Dangle:
		return n
	case node.Symbol, node.Custom:
		if n.Resolved == nil {
			return node.DangleNode
		}
		return n.Resolved
	case node.SymRef:
		return ev.resolveSymRef(n)
	case node.Native:
		return ev.resolveNative(n)
	case node.CusRef:
		return ev.invokeCusRef(n)
	case node.Context:
		return ev.evalStatements(n)
	default:
		return node.DangleNode
	}
}

// Invoke implements spec §4.2's invoke primitive: like Resolve, but a
// Native/Context/CusRef is always recomputed rather than served from
// cache (used for loop bodies so each iteration re-runs its statements).
func (ev *Evaluator) Invoke(n *node.Node) *node.Node {
	if n == nil {
		return node.DangleNode
	}
	switch n.Kind {
	case node.Native:
		return ev.callNative(n)
	case node.Context:
		return ev.evalStatements(n)
	case node.CusRef:
		return ev.invokeCusRef(n)
	default:
		return ev.Resolve(n)
	}
}

func (ev *Evaluator) resolveNative(n *node.Node) *node.Node {
	if n.Resolved != nil && n.Resolved != node.DangleNode {
		return n.Resolved
	}
	return ev.callNative(n)
}

func (ev *Evaluator) callNative(n *node.Node) *node.Node {
	if n.Call == nil {
		return ev.Fail(ierrors.ErrUnknownOperator, n.Pos, n.Name)
	}
	result := n.Call(ev, n)
	if result == nil {
		result = node.DangleNode
	}
	n.Resolved = result
	return result
}

func (ev *Evaluator) resolveSymRef(n *node.Node) *node.Node {
	if sym, ok := ev.env.FindSymbol(n, n.Name); ok {
		if sym.Resolved == nil {
			return node.DangleNode
		}
		return sym.Resolved
	}
	if strict, _ := ev.env.Reserved().GetNum("strict"); strict != 0 {
		return ev.Fail(ierrors.ErrUndefinedVariable, n.Pos, n.Name)
	}
	return node.DangleNode
}

func (ev *Evaluator) invokeCusRef(ref *node.Node) *node.Node {
	proc := ref.Proc
	if proc == nil {
		p, ok := ev.env.FindProcedure(ref.Name)
		if !ok {
			return ev.Fail(ierrors.ErrUnknownOperator, ref.Pos, ref.Name)
		}
		proc = p
		ref.Proc = p
	}
	actuals := ref.Args()
	for i, formal := range proc.Symbols {
		if i < len(actuals) {
			formal.Resolved = ev.Resolve(actuals[i])
		} else {
			formal.Resolved = node.DangleNode
		}
	}
	result := ev.evalStatements(proc)
	proc.Resolved = result
	return result
}

// evalStatements runs n's Children in source order, stopping early on a
// Signal or a newly-raised error (spec §4.2's run/§5's "Source order").
func (ev *Evaluator) evalStatements(n *node.Node) *node.Node {
	var last *node.Node = node.DangleNode
	for _, stmt := range n.Children {
		last = ev.Resolve(stmt)
		if ev.sig.Unwinding() || ev.hasErr {
			break
		}
	}
	return last
}

// Num implements spec §4.2's num primitive.
func (ev *Evaluator) Num(n *node.Node) int64 {
	v := ev.Resolve(n)
	switch v.Kind {
	case node.Number:
		return v.ID
	case node.String:
		return parseNumber(v.Name)
	default:
		return 0
	}
}

// Str implements spec §4.2's str primitive.
func (ev *Evaluator) Str(n *node.Node) string {
	v := ev.Resolve(n)
	switch v.Kind {
	case node.String:
		return v.Name
	case node.Number:
		return renderNumber(v.ID)
	default:
		return ""
	}
}

// Tru implements spec §4.2's tru primitive.
func (ev *Evaluator) Tru(n *node.Node) bool {
	return ev.Num(n) != 0
}
