package builtins

import (
	"testing"

	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

func TestSetBindsSymRefAndReads(t *testing.T) {
	ev, _, _, _ := newTestRig()
	setArgs := []*node.Node{node.NewSymRef("x"), num(42)}
	got := call(ev, bSet, setArgs)
	if got.ID != 42 {
		t.Fatalf("(set) should return the bound value, got %v", got)
	}
	ref := node.NewSymRef("x")
	if resolved := ev.Resolve(ref); resolved.ID != 42 {
		t.Fatalf("expected x to resolve to 42, got %v", resolved)
	}
}

func TestSymbolSetAndSymbolValByComputedName(t *testing.T) {
	ev, _, _, _ := newTestRig()
	call(ev, bSymbolSet, []*node.Node{str("dest"), str("ram:")})
	got := call(ev, bSymbolVal, []*node.Node{str("dest")})
	if got.Name != "ram:" {
		t.Fatalf("expected \"ram:\", got %v", got)
	}
}

func TestSymbolValUndefinedNonStrictIsDangle(t *testing.T) {
	ev, _, _, _ := newTestRig()
	got := call(ev, bSymbolVal, []*node.Node{str("nope")})
	if got != node.DangleNode {
		t.Fatalf("expected Dangle for an undefined name under non-strict mode, got %v", got)
	}
}

func TestSymbolValUndefinedStrictFails(t *testing.T) {
	ev, _, _, _ := newTestRig()
	ev.SetNumVar("strict", 1)
	got := call(ev, bSymbolVal, []*node.Node{str("nope")})
	if got != node.ErrorNode {
		t.Fatalf("expected a Fail under strict mode, got %v", got)
	}
	code, _, _, has := ev.ErrorInfo()
	if !has || code != ierrors.ErrUndefinedVariable {
		t.Fatalf("expected ErrUndefinedVariable, got %v has=%v", code, has)
	}
}
