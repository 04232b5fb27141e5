package builtins

import (
	"strings"

	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

func joinCommand(ev node.Evaluator, n *node.Node) string {
	args := n.Args()
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = ev.Str(a)
	}
	return strings.Join(parts, " ")
}

// bExecute implements (execute F [ARGS…] [(safe)]): run an external
// command synchronously and return its exit code, gated like the file
// operators (confirm/pretend).
func bExecute(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(0)
	}
	cmdline := joinCommand(ev, n)
	if cmdline == "" {
		return node.DangleNode
	}
	code, err := ev.Host().Execute(cmdline)
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrInvalidApp, cmdline)
	}
	ev.Log(n.Pos, "execute", "%s -> %d", cmdline, code)
	return node.NewNumber(int64(code))
}

// bRexx implements (rexx SCRIPT [ARGS…]): launches SCRIPT through the
// ARexx command-line launcher convention ("rx "), otherwise identical to
// execute.
func bRexx(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(0)
	}
	cmdline := joinCommand(ev, n)
	if cmdline == "" {
		return node.DangleNode
	}
	code, err := ev.Host().Execute("rx " + cmdline)
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrInvalidApp, cmdline)
	}
	ev.Log(n.Pos, "rexx", "%s -> %d", cmdline, code)
	return node.NewNumber(int64(code))
}

// bRun implements (run F [ARGS…]): fire the command in the background and
// return immediately, the way AmigaDOS's own "run" detaches a child task —
// unlike execute, the caller never observes the exit code.
func bRun(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	cmdline := joinCommand(ev, n)
	if cmdline == "" {
		return node.DangleNode
	}
	h := ev.Host()
	go func() { _, _ = h.Execute(cmdline) }()
	ev.Log(n.Pos, "run", "%s", cmdline)
	return node.NewNumber(1)
}

// bExit implements (exit [s…] [(quiet)]): a clean, non-error termination
// (ierrors.Bail), carrying s… as the final banner text unless (quiet)
// suppresses it.
func bExit(ev node.Evaluator, n *node.Node) *node.Node {
	msg := ""
	if !optPresent(n, node.OptQuiet) {
		msg = concatArgs(ev, n)
	}
	ev.Halt(ierrors.Bail, msg)
	return node.HaltNode
}

// bAbort implements (abort [s…]): like exit, but raises ierrors.Abort —
// spec §5's "ABORT is equivalent to HALT plus a user message".
func bAbort(ev node.Evaluator, n *node.Node) *node.Node {
	ev.Halt(ierrors.Abort, concatArgs(ev, n))
	return node.HaltNode
}

// bReboot implements (reboot): on real Amiga hardware this never returns;
// Host.Reboot degrades to a no-op off-Amiga (spec §6's closing paragraph),
// so evaluation proceeds normally afterward.
func bReboot(ev node.Evaluator, n *node.Node) *node.Node {
	if err := ev.Host().Reboot(); err != nil {
		return applyFailure(ev, n, ierrors.ErrInvalidApp, "reboot")
	}
	ev.Log(n.Pos, "reboot", "")
	return node.NewNumber(1)
}
