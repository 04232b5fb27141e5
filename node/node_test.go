package node

import "testing"

func TestConstructorsAndPush(t *testing.T) {
	ctx := NewContext()
	n1 := NewNumber(5)
	n2 := NewString("hi")
	ctx.Push(n1)
	ctx.Push(n2)
	if len(ctx.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(ctx.Children))
	}
	if n1.Parent != ctx || n2.Parent != ctx {
		t.Fatal("Push did not reparent children")
	}
}

func TestAppendSymbols(t *testing.T) {
	proc := NewCustom("inc")
	x := NewSymbol("x")
	proc.Append(x)
	if len(proc.Symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(proc.Symbols))
	}
	found, ok := proc.FindLocal("X")
	if !ok || found != x {
		t.Fatal("FindLocal should be case-insensitive and find x")
	}
}

func TestOptionLookupAndArgs(t *testing.T) {
	call := NewNative("copyfiles", RetNumber, nil)
	src := NewOption(OptSource)
	src.Push(NewString("Src"))
	dest := NewOption(OptDest)
	dest.Push(NewString("Dst"))
	call.Push(NewString("positional"))
	call.Push(src)
	call.Push(dest)

	if _, ok := call.Option(OptSource); !ok {
		t.Fatal("expected to find source option")
	}
	if _, ok := call.Option(OptAll); ok {
		t.Fatal("did not expect to find all option")
	}
	args := call.Args()
	if len(args) != 1 || args[0].Name != "positional" {
		t.Fatalf("Args should exclude Option children, got %+v", args)
	}
}

func TestStatusSingletonsDistinct(t *testing.T) {
	if EndOfList == HaltNode || HaltNode == AbortNode || AbortNode == ErrorNode || ErrorNode == BailNode {
		t.Fatal("status singletons must be distinct")
	}
	if EndOfList.StatusTag() != StatusEndOfList {
		t.Fatal("EndOfList StatusTag mismatch")
	}
}

func TestKillClearsChildrenAndParent(t *testing.T) {
	ctx := NewContext()
	child := NewNumber(1)
	ctx.Push(child)
	ctx.Kill()
	if len(ctx.Children) != 0 {
		t.Fatal("Kill should clear children")
	}
	if child.Parent != nil {
		t.Fatal("Kill should clear the killed child's Parent back-edge")
	}
}

func TestKillDoesNotTouchStatusSingletons(t *testing.T) {
	sym := NewSymbol("x")
	sym.Resolved = HaltNode
	sym.Kill()
	if HaltNode.Parent != nil || HaltNode.Name != "halt" {
		t.Fatal("Kill must never mutate a shared status singleton")
	}
}
