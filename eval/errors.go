package eval

import (
	"github.com/amiga-tools/aminstall"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// Fail implements spec §4.5/§7: an error whose code bit is covered by
// any active (trap MASK) is downgraded to a numeric return of the
// innermost covering mask and never reaches the error slot or @onerror. Otherwise it
// sets the error slot (checked by evalStatements/Run before continuing)
// and returns the shared ErrorNode sentinel, never nil.
func (ev *Evaluator) Fail(code ierrors.Code, line aminstall.Pos, msg string) *node.Node {
	for i := len(ev.trapStack) - 1; i >= 0; i-- {
		if code.InMask(ev.trapStack[i]) {
			tracer().Debugf("line %s: %s trapped by mask %#x", line, code, ev.trapStack[i])
			return node.NewNumber(int64(ev.trapStack[i]))
		}
	}
	ev.hasErr = true
	ev.errCode = code
	ev.errLine = line
	ev.errMsg = msg
	ev.env.Reserved().SetStr("error-msg", msg)
	ev.env.Reserved().SetNum("ioerr", int64(code))
	tracer().Errorf("line %s: %s: %s", line, code, msg)
	return node.ErrorNode
}

// Halt raises a non-trappable Signal that unwinds Run (spec §4.5:
// "HALT is a soft cancel... ABORT is equivalent to HALT plus a user
// message").
func (ev *Evaluator) Halt(sig ierrors.Signal, msg string) {
	ev.sig = sig
	ev.sigMsg = msg
}

// Signal reports the currently-raised Signal, if any.
func (ev *Evaluator) Signal() ierrors.Signal { return ev.sig }

// Trap implements spec §4.5/§7.2's (trap MASK BODY): errors raised while
// body runs whose code bit is in mask are downgraded rather than
// propagated to @onerror; the scope is restored on return even if body
// raises a Signal.
func (ev *Evaluator) Trap(mask uint32, body func() *node.Node) *node.Node {
	ev.trapStack = append(ev.trapStack, mask)
	defer func() {
		ev.trapStack = ev.trapStack[:len(ev.trapStack)-1]
	}()
	return body()
}

// ErrorInfo reports the evaluator's current error slot, for tests and
// for the top-level run loop's @onerror dispatch.
func (ev *Evaluator) ErrorInfo() (code ierrors.Code, line aminstall.Pos, msg string, has bool) {
	return ev.errCode, ev.errLine, ev.errMsg, ev.hasErr
}

// ClearError clears the error slot, e.g. once @onerror has run (spec §7:
// "its return value replaces the error").
func (ev *Evaluator) ClearError() { ev.hasErr = false }
