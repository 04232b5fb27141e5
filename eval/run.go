package eval

import (
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// Run implements spec §4.2's run(root): evaluates the top-level Context
// in source order, invoking @onerror on any error (spec §7) and stopping
// early on a Signal. If the handler itself errors or HALTs, run exits
// (spec §7's global handler tier rule) rather than continuing to the next
// top-level statement. The tree is postorder-killed once evaluation
// finishes (spec §4.1/§3's lifecycle rules).
func (ev *Evaluator) Run(root *node.Node) *node.Node {
	ev.root = root
	var last *node.Node = node.DangleNode
	for _, stmt := range root.Children {
		last = ev.Resolve(stmt)
		if ev.hasErr {
			last = ev.invokeOnError()
		}
		if ev.sig.Unwinding() || ev.hasErr {
			break
		}
	}
	ev.reportCompletion()
	root.Kill()
	return last
}

// invokeOnError implements spec §7's global handler tier: the installed
// @onerror Custom runs once with @error-msg already bound; its return
// value replaces the error (the error slot is cleared first, "allowing
// scripts to swallow errors"). The default handler is spec's
// "do-nothing that evaluates (select 0 0)", i.e. a plain Number 0.
func (ev *Evaluator) invokeOnError() *node.Node {
	ev.hasErr = false
	proc, ok := ev.env.FindProcedure("@onerror")
	if !ok {
		return node.NewNumber(0)
	}
	result := ev.evalStatements(proc)
	proc.Resolved = result
	return result
}

// reportCompletion shows the final banner spec §7 describes: "on HALT
// or ABORT, the evaluator emits a final message... and returns."
func (ev *Evaluator) reportCompletion() {
	if ev.dialog == nil {
		return
	}
	switch ev.sig {
	case ierrors.Halt, ierrors.Abort:
		msg := "Installation aborted"
		if ev.sigMsg != "" {
			msg = "Installation aborted: " + ev.sigMsg
		}
		ev.dialog.Complete(false, msg)
	case ierrors.Panic:
		ev.dialog.Complete(false, "Internal error: "+ev.sigMsg)
	case ierrors.Bail:
		msg := "Installation complete"
		if ev.sigMsg != "" {
			msg = ev.sigMsg
		}
		ev.dialog.Complete(true, msg)
	default:
		ev.dialog.Complete(true, "Installation complete")
	}
}
