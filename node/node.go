package node

import (
	"fmt"

	"github.com/amiga-tools/aminstall"
)

// NativeFunc is the callback a Native node dispatches through (spec
// §4.4: "a function fn(ctx) -> node"). Failures are not returned as a Go
// error; operators call ev.Fail to set the evaluator's error slot (or
// ev.Halt with Halt/Abort/Bail to raise a Signal) and still return a node,
// matching spec §3's "operators must always return a node."
type NativeFunc func(ev Evaluator, n *Node) *Node

// Node is the single tagged record of spec §3. Fields are occupied
// selectively by Kind; see the per-kind doc comments below.
type Node struct {
	Kind Kind
	Pos  aminstall.Pos

	// ID is the integer payload: numeric literal value (Number), source
	// line (mostly tracked via Pos instead), option tag (Option, as OptTag),
	// or sentinel selector (Status, as StatusTag).
	ID int64

	// Name is the string payload: string literal value (String), or the
	// symbol/operator/procedure name (Symbol, SymRef, Native, Custom, CusRef).
	Name string

	// Call is the operator callback for Native nodes.
	Call NativeFunc
	// RetKind declares a Native's default coercion (spec §3).
	RetKind RetKind

	// Proc is the resolved Custom definition a CusRef is bound to, cached
	// after the first successful name lookup.
	Proc *Node

	Parent   *Node
	Children []*Node
	Symbols  []*Node

	// Resolved holds the most recent evaluation result for Symbol and
	// Native nodes (spec §3's interior-mutability note in §9).
	Resolved *Node
}

// Status singletons (spec §3's "process-wide singletons"); never owned,
// never mutated, safe to compare by pointer identity.
var (
	EndOfList = &Node{Kind: Status, ID: int64(StatusEndOfList), Name: "end-of-list"}
	HaltNode  = &Node{Kind: Status, ID: int64(StatusHalt), Name: "halt"}
	AbortNode = &Node{Kind: Status, ID: int64(StatusAbort), Name: "abort"}
	ErrorNode = &Node{Kind: Status, ID: int64(StatusError), Name: "error"}
	BailNode  = &Node{Kind: Status, ID: int64(StatusBail), Name: "bail"}
	// DangleNode is the shared placeholder "no value yet" default.
	DangleNode = &Node{Kind: Dangle, Name: "dangle"}
)

// NewNumber creates a Number node.
func NewNumber(v int64) *Node { return &Node{Kind: Number, ID: v} }

// NewString creates a String node.
func NewString(s string) *Node { return &Node{Kind: String, Name: s} }

// NewSymbol creates a Symbol binding node, initially unresolved (Dangle).
func NewSymbol(name string) *Node {
	return &Node{Kind: Symbol, Name: name, Resolved: DangleNode}
}

// NewSymRef creates an unresolved identifier occurrence.
func NewSymRef(name string) *Node { return &Node{Kind: SymRef, Name: name} }

// NewNative creates a call to a built-in operator.
func NewNative(name string, ret RetKind, call NativeFunc) *Node {
	return &Node{Kind: Native, Name: name, RetKind: ret, Call: call, Resolved: DangleNode}
}

// NewOption creates a keyword-argument child of an operator Native.
func NewOption(tag OptTag) *Node { return &Node{Kind: Option, ID: int64(tag)} }

// NewCustom creates a user-defined procedure definition. Formal
// parameters are appended afterwards via Append.
func NewCustom(name string) *Node { return &Node{Kind: Custom, Name: name} }

// NewCusRef creates a call to a user-defined procedure, resolved by name
// lookup at call time.
func NewCusRef(name string) *Node { return &Node{Kind: CusRef, Name: name} }

// NewContext creates a grouping node with its own local symbol table.
func NewContext() *Node { return &Node{Kind: Context} }

// OptTag returns an Option node's tag.
func (n *Node) OptTag() OptTag { return OptTag(n.ID) }

// StatusTag returns a Status node's sentinel selector.
func (n *Node) StatusTag() StatusTag { return StatusTag(n.ID) }

// Push appends child to n's Children, reparenting it (spec §4.1's
// push(container, child)).
func (n *Node) Push(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return n
}

// Append adds a Symbol node to n's local Symbols table (spec §4.1's
// append(&sequence, node)).
func (n *Node) Append(sym *Node) *Node {
	sym.Parent = n
	n.Symbols = append(n.Symbols, sym)
	return n
}

// Option looks up the first Option child with the given tag.
func (n *Node) Option(tag OptTag) (*Node, bool) {
	for _, c := range n.Children {
		if c.Kind == Option && c.OptTag() == tag {
			return c, true
		}
	}
	return nil, false
}

// Args returns n's non-Option children, in order: the positional
// arguments of an operator call.
func (n *Node) Args() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind != Option {
			out = append(out, c)
		}
	}
	return out
}

// FindLocal searches n's own Symbols table by case-insensitive name.
func (n *Node) FindLocal(name string) (*Node, bool) {
	for _, s := range n.Symbols {
		if equalFold(s.Name, name) {
			return s, true
		}
	}
	return nil, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Kill performs the postorder teardown of spec §4.1: in a garbage
// collected runtime this is a deliberate simplification to "release
// references" rather than free memory, but it keeps the same shape
// (and the same call site in eval.Run) as the reference design, and it
// matters in Go too: it breaks Parent back-edges so a killed subtree
// cannot keep its former owner alive and is not accidentally
// re-attached by later code.
func (n *Node) Kill() {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		c.Kill()
	}
	for _, s := range n.Symbols {
		s.Kill()
	}
	if n.Resolved != nil && n.Resolved != DangleNode && !isStatusSingleton(n.Resolved) {
		n.Resolved.Kill()
	}
	n.Children = nil
	n.Symbols = nil
	n.Resolved = nil
	n.Parent = nil
}

func isStatusSingleton(n *Node) bool {
	switch n {
	case EndOfList, HaltNode, AbortNode, ErrorNode, BailNode, DangleNode:
		return true
	default:
		return false
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Number:
		return fmt.Sprintf("%d", n.ID)
	case String:
		return fmt.Sprintf("%q", n.Name)
	case Symbol, SymRef, Custom, CusRef, Native:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
	case Status:
		return fmt.Sprintf("Status(%s)", n.Name)
	default:
		return n.Kind.String()
	}
}
