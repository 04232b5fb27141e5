package builtins

import (
	"testing"

	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

func TestControlIfBothBranches(t *testing.T) {
	ev, _, _, _ := newTestRig()
	got := call(ev, bIf, []*node.Node{num(1), str("yes"), str("no")})
	if got.Name != "yes" {
		t.Fatalf("expected \"yes\", got %v", got)
	}
	got = call(ev, bIf, []*node.Node{num(0), str("yes"), str("no")})
	if got.Name != "no" {
		t.Fatalf("expected \"no\", got %v", got)
	}
}

func TestControlSelectOutOfRange(t *testing.T) {
	ev, _, _, _ := newTestRig()
	got := call(ev, bSelect, []*node.Node{num(5), str("a"), str("b")})
	if got.Kind != node.Number || got.ID != 0 {
		t.Fatalf("out-of-range select should return Number 0, got %v", got)
	}
}

func TestControlTrapDowngradesMatchingCode(t *testing.T) {
	ev, _, _, _ := newTestRig()
	const mask = uint32(1) << uint(ierrors.ErrDivByZero)
	trapArgs := []*node.Node{num(int64(mask)), node.NewNative("divzero", node.RetNumber, bDiv)}
	trapArgs[1].Push(num(1))
	trapArgs[1].Push(num(0))
	got := call(ev, bTrap, trapArgs)
	if got.Kind != node.Number || got.ID != int64(mask) {
		t.Fatalf("expected trapped Fail to return the mask as a Number, got %v", got)
	}
	if _, _, _, has := ev.ErrorInfo(); has {
		t.Fatalf("a trapped error must not reach the error slot")
	}
}

func TestControlWhileStopsOnError(t *testing.T) {
	ev, _, _, _ := newTestRig()
	ev.SetNumVar("counter", 0)

	// condition: counter < 3
	cond := node.NewNative("<", node.RetNumber, cmpBuiltin(func(c int64) bool { return c < 0 }))
	cond.Push(node.NewSymRef("counter"))
	cond.Push(num(3))

	// body: divide by zero every time -> Fail immediately
	body := node.NewNative("div", node.RetNumber, bDiv)
	body.Push(num(1))
	body.Push(num(0))

	loopArgs := []*node.Node{cond, body}
	got := call(ev, bWhile, loopArgs)
	if got != node.ErrorNode {
		t.Fatalf("expected the loop to stop on the first Fail, got %v", got)
	}
}

func TestControlForeachBindsEachNameAndType(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutDir("libs")
	m.PutFile("libs/a.library", []byte("x"))
	m.PutDir("libs/sub")

	var lastNames []string
	types := map[string]int64{}
	record := node.NewNative("record", node.RetDangle, func(ev node.Evaluator, n *node.Node) *node.Node {
		name, _ := ev.GetStrVar("each-name")
		lastNames = append(lastNames, name)
		types[name], _ = ev.GetNumVar("each-type")
		return node.DangleNode
	})

	got := call(ev, bForeach, []*node.Node{str("libs"), str("#?"), record})
	if got == node.ErrorNode {
		t.Fatalf("unexpected Fail from foreach")
	}
	if len(lastNames) != 2 {
		t.Fatalf("expected two entries visited, got %v", lastNames)
	}
	if types["a.library"] != 1 || types["sub"] != 2 {
		t.Fatalf("expected each-type file=1 for a.library and dir=2 for sub, got %v", types)
	}
}

func TestProcedureRegistersCustom(t *testing.T) {
	ev, _, _, _ := newTestRig()
	custom := node.NewCustom("greet")
	custom.Push(str("hello"))
	proc := Procedure(custom)
	if got := ev.Resolve(proc); got != node.DangleNode {
		t.Fatalf("(procedure) itself has no value, got %v", got)
	}
	found, ok := ev.FindProcedure("greet")
	if !ok || found != custom {
		t.Fatalf("expected greet to be registered, got %v ok=%v", found, ok)
	}
}

func TestOnErrorRegistersUnderReservedName(t *testing.T) {
	ev, _, _, _ := newTestRig()
	handler := OnError(str("handled"))
	ev.Resolve(handler)
	found, ok := ev.FindProcedure("@onerror")
	if !ok || found.Name != "@onerror" {
		t.Fatalf("expected @onerror to be registered, got %v ok=%v", found, ok)
	}
}
