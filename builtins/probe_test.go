package builtins

import (
	"hash/adler32"
	"testing"

	"github.com/amiga-tools/aminstall/node"
)

func TestExistsReportsFileVsDirVsNone(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("s/a", []byte("x"))
	m.PutDir("s/sub")

	if got := call(ev, bExists, []*node.Node{str("s/a")}); got.ID != 1 {
		t.Fatalf("expected 1 (file), got %v", got)
	}
	if got := call(ev, bExists, []*node.Node{str("s/sub")}); got.ID != 2 {
		t.Fatalf("expected 2 (dir), got %v", got)
	}
	if got := call(ev, bExists, []*node.Node{str("s/nope")}); got.ID != 0 {
		t.Fatalf("expected 0 (none), got %v", got)
	}
}

func TestFileOnlyAndPathOnly(t *testing.T) {
	ev, _, _, _ := newTestRig()
	if got := call(ev, bFileOnly, []*node.Node{str("s/sub/a.library")}); got.Name != "a.library" {
		t.Fatalf("expected a.library, got %v", got)
	}
	if got := call(ev, bPathOnly, []*node.Node{str("s/sub/a.library")}); got.Name != "s/sub" {
		t.Fatalf("expected s/sub, got %v", got)
	}
}

func TestGetSumMatchesAdler32(t *testing.T) {
	ev, _, m, _ := newTestRig()
	data := []byte("installer payload")
	m.PutFile("f", data)
	got := call(ev, bGetSum, []*node.Node{str("f")})
	if got.ID != int64(adler32.Checksum(data)) {
		t.Fatalf("expected adler32 checksum, got %v", got)
	}
}

func TestGetVersionProbeChain(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.SetResidentVersion("mylib.library", 3, 7)
	got := call(ev, bGetVersion, []*node.Node{str("mylib.library")})
	want := int64(3)<<16 | 7
	if got.ID != want {
		t.Fatalf("expected resident version %d, got %v", want, got)
	}

	m.SetLibraryVersion("other.library", 1, 2)
	got = call(ev, bGetVersion, []*node.Node{str("other.library")})
	want = int64(1)<<16 | 2
	if got.ID != want {
		t.Fatalf("expected library version %d, got %v", want, got)
	}
}

func TestGetVersionResidentOnlyReturnsMinusOneWhenAbsent(t *testing.T) {
	ev, _, _, _ := newTestRig()
	got := call(ev, bGetVersion, []*node.Node{str("missing")}, opt(node.OptResident))
	if got.ID != -1 {
		t.Fatalf("expected -1 when (resident) is given and nothing resident matches, got %v", got)
	}
}

func TestEarlierComparesModTimes(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("a", []byte("1"))
	m.PutFile("b", []byte("1"))
	m.SetModTime("a", 100)
	m.SetModTime("b", 200)
	got := call(ev, bEarlier, []*node.Node{str("a"), str("b")})
	if got.ID != 1 {
		t.Fatalf("expected a to be earlier than b, got %v", got)
	}
}

func TestDatabaseCPUAndEquality(t *testing.T) {
	ev, _, _, _ := newTestRig()
	got := call(ev, bDatabase, []*node.Node{str("cpu")})
	if got.Name != "mem68k" {
		t.Fatalf("expected the Mem host's stub CPU name, got %v", got)
	}
	got = call(ev, bDatabase, []*node.Node{str("cpu"), str("mem68k")})
	if got.Name != "1" {
		t.Fatalf("expected equality test to report \"1\", got %v", got)
	}
}
