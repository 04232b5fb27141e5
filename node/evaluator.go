package node

import (
	"github.com/amiga-tools/aminstall"
	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/ierrors"
)

// Evaluator is what a Native's NativeFunc dispatches through to reach
// the tree-walk primitives (spec §4.2), the reserved/user variable
// environment (spec §4.3), and the host/dialog adapters (spec §6).
// Defined in this package (rather than env/eval importing node and node
// importing them back) so that Native callbacks can be written and
// tested against the interface alone; package eval provides the
// concrete implementation.
type Evaluator interface {
	// Resolve reduces n to its value node (spec §4.2's resolve).
	Resolve(n *Node) *Node
	// Invoke is like Resolve but never reuses a cached Native result
	// (used for loop bodies — spec §4.2).
	Invoke(n *Node) *Node
	// Num is resolve+coerce-to-integer (spec §4.2's num).
	Num(n *Node) int64
	// Str is resolve+coerce-to-string (spec §4.2's str).
	Str(n *Node) string
	// Tru is num(n) != 0 (spec §4.2's tru).
	Tru(n *Node) bool

	// FindSymbol performs scope lookup by case-insensitive name (spec
	// §4.2's find_symbol): nearest enclosing Custom's formals, then
	// parent Contexts, then the global root Context.
	FindSymbol(from *Node, name string) (*Node, bool)
	// Bind creates or updates a user binding (spec §4.3's (set)/(symbolset)
	// rule: formal of the current Custom if one matches, else global root).
	Bind(from *Node, name string, value *Node)

	// DefineProcedure registers a Custom under its own Name for later
	// CusRef/onerror-handler lookup (spec §4.4's (procedure) and §7's
	// "(onerror BODY) ... stored as a Custom named @onerror").
	DefineProcedure(custom *Node)
	// FindProcedure looks up a registered Custom by case-insensitive name.
	FindProcedure(name string) (*Node, bool)

	// GetNumVar/GetStrVar/SetNumVar/SetStrVar read or write a reserved "@..." dotted binding (spec
	// §4.3's get_numvar/get_strvar/set_numvar/set_strvar), silently no-op
	// on a kind mismatch.
	GetNumVar(name string) (int64, bool)
	GetStrVar(name string) (string, bool)
	SetNumVar(name string, v int64)
	SetStrVar(name string, v string)

	// Fail sets the evaluator's error slot (spec §4.5/§7) unless code is
	// masked by an active (trap); it returns the node operators should
	// return (either ErrorNode or, under an active trap, a Number of the
	// trap mask). line is the offending call's source line.
	Fail(code ierrors.Code, line aminstall.Pos, msg string) *Node
	// Halt raises a non-trappable Signal (Halt/Abort/Panic/Bail) that
	// unwinds Run; msg becomes the final banner text for Halt/Abort.
	Halt(sig ierrors.Signal, msg string)
	// Signal reports the currently-raised Signal, if any.
	Signal() ierrors.Signal

	// Trap runs body with mask bits added to the active trap mask,
	// downgrading any Fail whose code is in mask to a numeric return
	// instead of invoking @onerror (spec §4.5/§7.2).
	Trap(mask uint32, body func() *Node) *Node

	// Log appends a line to the install log if @log is enabled (spec §6's
	// "Persisted state").
	Log(line aminstall.Pos, op string, format string, args ...interface{})

	Host() host.Host
	Dialog() dialog.Dialog

	// Root returns the top-level Context the evaluator is walking.
	Root() *Node
}
