package builtins

import (
	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/env"
	"github.com/amiga-tools/aminstall/eval"
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/node"
)

// newTestRig wires a fresh Evaluator over an in-memory Host and a
// Scripted dialog, the same doubles eval_test.go uses.
func newTestRig() (*eval.Evaluator, *env.Environment, *host.Mem, *dialog.Scripted) {
	e := env.New(env.BootstrapOptions{AppName: "Test", UserLevel: 2})
	m := host.NewMem()
	d := &dialog.Scripted{}
	return eval.New(e, m, d), e, m, d
}

// call builds a Native invocation of op with positional args and applies
// opts (typically option-node builders) before resolving it against ev.
func call(ev *eval.Evaluator, op node.NativeFunc, args []*node.Node, opts ...*node.Node) *node.Node {
	n := node.NewNative("test-op", node.RetDangle, op)
	for _, a := range args {
		n.Push(a)
	}
	for _, o := range opts {
		n.Push(o)
	}
	return ev.Resolve(n)
}

// opt builds an Option node carrying zero or more value children.
func opt(tag node.OptTag, values ...*node.Node) *node.Node {
	o := node.NewOption(tag)
	for _, v := range values {
		o.Push(v)
	}
	return o
}

func num(v int64) *node.Node    { return node.NewNumber(v) }
func str(s string) *node.Node   { return node.NewString(s) }
