package builtins

import (
	"testing"

	"github.com/amiga-tools/aminstall/node"
)

func TestAskBoolNoviceReturnsDefaultWithoutAsking(t *testing.T) {
	ev, e, _, d := newTestRig()
	e.Reserved().SetNum("user-level", 0)
	d.Bools = []bool{true} // would be consumed if the dialog were actually asked
	got := call(ev, bAskBool, nil, opt(node.OptDefault, num(0)))
	if got.ID != 0 {
		t.Fatalf("novice level should short-circuit to the default, got %v", got)
	}
	if len(d.Bools) != 1 {
		t.Fatalf("the dialog backend should not have been consulted")
	}
}

func TestAskBoolAsksAtExpertLevel(t *testing.T) {
	ev, e, _, d := newTestRig()
	e.Reserved().SetNum("user-level", 2)
	d.Bools = []bool{true}
	got := call(ev, bAskBool, nil, opt(node.OptDefault, num(0)))
	if got.ID != 1 {
		t.Fatalf("expected the scripted true answer, got %v", got)
	}
}

func TestAskOptionsRoundTripsMaskThroughTreeset(t *testing.T) {
	ev, e, _, d := newTestRig()
	e.Reserved().SetNum("user-level", 2)
	d.Opts = [][]bool{{true, false, true}}
	got := call(ev, bAskOptions, nil,
		opt(node.OptChoices, str("a"), str("b"), str("c")),
		opt(node.OptDefault, num(0)))
	if got.ID != 0b101 {
		t.Fatalf("expected mask 0b101 from {true,false,true}, got %v", got)
	}
}

func TestAskOptionsDefaultMaskSeedsInitialSelection(t *testing.T) {
	ev, e, _, _ := newTestRig()
	e.Reserved().SetNum("user-level", 0)
	got := call(ev, bAskOptions, nil,
		opt(node.OptChoices, str("a"), str("b"), str("c")),
		opt(node.OptDefault, num(0b110)))
	if got.ID != 0b110 {
		t.Fatalf("novice level should echo the default mask untouched, got %v", got)
	}
}

func TestIndexSetMaskRoundTrip(t *testing.T) {
	bools := []bool{true, false, true, true}
	mask := maskFromBools(bools)
	back := indexSetToBools(indexSetFromMask(mask, len(bools)), len(bools))
	for i := range bools {
		if bools[i] != back[i] {
			t.Fatalf("round trip mismatch at %d: %v vs %v", i, bools, back)
		}
	}
}

func TestSanitizeChoiceStripsInvisibleMarker(t *testing.T) {
	got := sanitizeChoice("\x1b[2pHidden")
	if got != "Hidden" {
		t.Fatalf("expected marker stripped, got %q", got)
	}
}
