package env

import (
	"testing"

	"github.com/amiga-tools/aminstall/node"
)

func TestBootstrapDefaults(t *testing.T) {
	e := New(BootstrapOptions{AppName: "Demo", UserLevel: 1, UserMin: 0})
	if v, ok := e.Reserved().GetNum("strict"); !ok || v != 0 {
		t.Fatalf("@strict default: %v %v", v, ok)
	}
	if v, ok := e.Reserved().GetStr("app-name"); !ok || v != "Demo" {
		t.Fatalf("@app-name: %v %v", v, ok)
	}
	if v, ok := e.Reserved().GetStr("log-file"); !ok || v != "install_log_file" {
		t.Fatalf("@log-file default: %v %v", v, ok)
	}
}

func TestUserLevelClampedToMin(t *testing.T) {
	e := New(BootstrapOptions{UserLevel: 0, UserMin: 2})
	if v, _ := e.Reserved().GetNum("user-level"); v != 2 {
		t.Fatalf("expected user-level clamped to user-min=2, got %d", v)
	}
}

func TestReservedKindMismatchIsNoop(t *testing.T) {
	r := newReserved()
	r.SetStr("icon", "foo")
	r.SetNum("icon", 99) // wrong kind: must be silently ignored
	if v, ok := r.GetStr("icon"); !ok || v != "foo" {
		t.Fatalf("SetNum on a string var should be a no-op, got %v %v", v, ok)
	}
	if _, ok := r.GetNum("icon"); ok {
		t.Fatal("icon should not be readable as a number")
	}
}

func TestGlobalBindAndFind(t *testing.T) {
	e := New(BootstrapOptions{})
	e.Bind(e.Root, "x", node.NewNumber(5))
	sym, ok := e.FindSymbol(e.Root, "X")
	if !ok || sym.Resolved.ID != 5 {
		t.Fatalf("expected global X=5, got %v %v", sym, ok)
	}
	// rebind updates in place rather than creating a second Symbol
	e.Bind(e.Root, "x", node.NewNumber(6))
	if e.Globals().Size() != 1 {
		t.Fatalf("rebind should not grow the global table, size=%d", e.Globals().Size())
	}
}

func TestProcedureArgumentShadowsGlobal(t *testing.T) {
	e := New(BootstrapOptions{})
	e.Bind(e.Root, "x", node.NewNumber(100))

	proc := node.NewCustom("inc")
	formalX := node.NewSymbol("x")
	formalX.Resolved = node.NewNumber(41)
	proc.Append(formalX)
	proc.Parent = e.Root // nearest enclosing Context above the Custom

	body := node.NewSymRef("x")
	body.Parent = proc

	sym, ok := e.FindSymbol(body, "x")
	if !ok || sym.Resolved.ID != 41 {
		t.Fatalf("expected procedure-local x=41 to shadow global, got %v %v", sym, ok)
	}

	e.Bind(body, "x", node.NewNumber(42))
	if formalX.Resolved.ID != 42 {
		t.Fatal("Bind from within a Custom body should update the formal in place")
	}
	if global, _ := e.FindSymbol(e.Root, "x"); global.Resolved.ID != 100 {
		t.Fatal("global x must be untouched by the procedure-local rebind")
	}
}
