package builtins

import (
	"strings"
	"testing"

	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

func TestGatePretendSkipsUnlessSafe(t *testing.T) {
	ev, _, _, _ := newTestRig()
	ev.SetNumVar("pretend", 1)
	n := node.NewNative("op", node.RetDangle, nil)
	if gate(ev, n) {
		t.Fatalf("expected gate to hold back under @pretend")
	}
	safe := node.NewNative("op", node.RetDangle, nil)
	safe.Push(opt(node.OptSafe))
	if !gate(ev, safe) {
		t.Fatalf("expected (safe) to proceed even under @pretend")
	}
}

func TestGateConfirmThresholdAsksAndCanDecline(t *testing.T) {
	ev, e, _, d := newTestRig()
	e.Reserved().SetNum("user-level", 2)
	d.Bools = []bool{false}
	n := node.NewNative("op", node.RetDangle, nil)
	n.Push(opt(node.OptConfirm))
	if gate(ev, n) {
		t.Fatalf("expected the declined confirm to block the operation")
	}
}

func TestOptionalModeDefaultsToFail(t *testing.T) {
	n := node.NewNative("op", node.RetDangle, nil)
	if optionalMode(n) != node.OptFail {
		t.Fatalf("expected FAIL as the default optional mode")
	}
	n2 := node.NewNative("op", node.RetDangle, nil)
	inner := node.NewOption(node.OptNofail)
	n2.Push(opt(node.OptOptional, inner))
	if optionalMode(n2) != node.OptNofail {
		t.Fatalf("expected NOFAIL read back from the nested option")
	}
}

func TestApplyFailureNofailSwallows(t *testing.T) {
	ev, _, _, _ := newTestRig()
	n := node.NewNative("op", node.RetDangle, nil)
	n.Push(opt(node.OptOptional, node.NewOption(node.OptNofail)))
	got := applyFailure(ev, n, ierrors.ErrDeleteFile, "x")
	if got.Kind != node.Number || got.ID != 0 {
		t.Fatalf("expected NOFAIL to swallow the error, got %v", got)
	}
	if _, _, _, has := ev.ErrorInfo(); has {
		t.Fatalf("NOFAIL must not set the error slot")
	}
}

func TestApplyFailureDefaultPropagates(t *testing.T) {
	ev, _, _, _ := newTestRig()
	n := node.NewNative("op", node.RetDangle, nil)
	got := applyFailure(ev, n, ierrors.ErrDeleteFile, "x")
	if got != node.ErrorNode {
		t.Fatalf("expected FAIL (default) to propagate, got %v", got)
	}
}

func TestCopyFilesWholeDirectory(t *testing.T) {
	ev, _, m, d := newTestRig()
	m.PutDir("src")
	m.PutFile("src/a", []byte("aaa"))
	m.PutFile("src/b", []byte("bb"))
	m.PutDir("dst")

	n := node.NewNative("copyfiles", node.RetNumber, bCopyFiles)
	n.Push(opt(node.OptSource, str("src")))
	n.Push(opt(node.OptDest, str("dst")))
	got := ev.Resolve(n)
	if got.Kind != node.Number || got.ID != 1 {
		t.Fatalf("expected success (1), got %v", got)
	}
	if data, err := m.ReadFile("dst/a"); err != nil || string(data) != "aaa" {
		t.Fatalf("expected dst/a to carry src/a's contents, err=%v data=%q", err, data)
	}
	if data, err := m.ReadFile("dst/b"); err != nil || string(data) != "bb" {
		t.Fatalf("expected dst/b to carry src/b's contents, err=%v data=%q", err, data)
	}
	if len(d.CopyBatches) != 1 || len(d.CopyBatches[0]) != 2 {
		t.Fatalf("expected one CopyBegin batch of two entries, got %v", d.CopyBatches)
	}
}

func TestCopyFilesFontsOptionExcludesFontFiles(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutDir("src")
	m.PutFile("src/a.font", []byte("f"))
	m.PutFile("src/b", []byte("bb"))
	m.PutDir("dst")

	n := node.NewNative("copyfiles", node.RetNumber, bCopyFiles)
	n.Push(opt(node.OptSource, str("src")))
	n.Push(opt(node.OptDest, str("dst")))
	got := ev.Resolve(n)
	if got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	if _, err := m.ReadFile("dst/a.font"); err != nil {
		t.Fatalf("without (fonts), .font files should still copy, err=%v", err)
	}

	ev2, _, m2h, _ := newTestRig()
	m2h.PutDir("src")
	m2h.PutFile("src/a.font", []byte("f"))
	m2h.PutFile("src/b", []byte("bb"))
	m2h.PutDir("dst")

	n2 := node.NewNative("copyfiles", node.RetNumber, bCopyFiles)
	n2.Push(opt(node.OptSource, str("src")))
	n2.Push(opt(node.OptDest, str("dst")))
	n2.Push(opt(node.OptFonts))
	got2 := ev2.Resolve(n2)
	if got2.ID != 1 {
		t.Fatalf("expected success, got %v", got2)
	}
	if _, err := m2h.ReadFile("dst/a.font"); err == nil {
		t.Fatalf("(fonts) present should skip .font files, but dst/a.font exists")
	}
	if _, err := m2h.ReadFile("dst/b"); err != nil {
		t.Fatalf("non-font files must still copy, err=%v", err)
	}
}

func TestCopyFilesMissingSourceOrDestFails(t *testing.T) {
	ev, _, _, _ := newTestRig()
	n := node.NewNative("copyfiles", node.RetNumber, bCopyFiles)
	got := ev.Resolve(n)
	if got != node.ErrorNode {
		t.Fatalf("expected a Fail for missing source/dest, got %v", got)
	}
	code, _, _, _ := ev.ErrorInfo()
	if code != ierrors.ErrMissingOption {
		t.Fatalf("expected ErrMissingOption, got %v", code)
	}
}

func TestDeleteWildcard(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutDir("s")
	m.PutFile("s/a.o", []byte("1"))
	m.PutFile("s/b.o", []byte("1"))
	m.PutFile("s/c.txt", []byte("1"))

	got := call(ev, bDelete, []*node.Node{str("s/#?.o")})
	if got.ID != 2 {
		t.Fatalf("expected 2 deletions, got %v", got)
	}
	if exists, _ := m.Exists("s/c.txt"); exists != host.File {
		t.Fatalf("expected s/c.txt to survive, got %v", exists)
	}
}

func TestDeleteSingleFileOptionalOkNoDelete(t *testing.T) {
	ev, _, _, _ := newTestRig()
	n := node.NewNative("delete", node.RetNumber, bDelete)
	n.Push(str("nope"))
	n.Push(opt(node.OptOptional, node.NewOption(node.OptOkNoDelete)))
	got := ev.Resolve(n)
	if got.Kind != node.Number || got.ID != 0 {
		t.Fatalf("a missing target under OKNODELETE should quietly return 0, got %v", got)
	}
}

func TestMakeDirCreatesSegmentsOutermostFirst(t *testing.T) {
	ev, _, m, _ := newTestRig()
	got := call(ev, bMakeDir, []*node.Node{str("a/b/c")})
	if got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		if kind, _ := m.Exists(dir); kind != host.Dir {
			t.Fatalf("expected %s to exist as a directory", dir)
		}
	}
}

func TestMakeDirExpandsHomeRelativePath(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.SetHome("home")
	got := call(ev, bMakeDir, []*node.Node{str("~/app/data")})
	if got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	if kind, _ := m.Exists("home/app/data"); kind != host.Dir {
		t.Fatalf("expected ~/app/data to expand to home/app/data, got kind=%v", kind)
	}
	if kind, _ := m.Exists("~/app/data"); kind != host.None {
		t.Fatalf("expected no literal ~ entry to be created")
	}
}

func TestProtectFlagsAndMask(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("f", []byte("x"))
	got := call(ev, bProtect, []*node.Node{str("f"), str("+r")})
	if got.ID != 1<<3 {
		t.Fatalf("expected the r bit set, got %v", got)
	}
	perm, _ := m.GetPerm("f")
	if perm != 1<<3 {
		t.Fatalf("expected stored permission to match, got %#x", perm)
	}
}

func TestProtectNoFlagsReadsCurrent(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("f", []byte("x"))
	_ = m.SetPerm("f", 0xAA)
	got := call(ev, bProtect, []*node.Node{str("f")})
	if got.ID != 0xAA {
		t.Fatalf("a bare (protect FILE) should just read back the current mask, got %v", got)
	}
}

func TestStartupInsertsAndReplacesMarkedBlock(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("s:user-startup", []byte("Path C: add\n"))

	n := node.NewNative("startup", node.RetNumber, bStartup)
	n.Push(str("MyApp"))
	n.Push(opt(node.OptCommand, str("Assign MYAPP: dh0:myapp")))
	if got := ev.Resolve(n); got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	data, _ := m.ReadFile("s:user-startup")
	first := string(data)
	if !strings.Contains(first, ";BEGIN MyApp") || !strings.Contains(first, "Assign MYAPP: dh0:myapp") || !strings.Contains(first, ";END MyApp") {
		t.Fatalf("expected a marked block inserted, got %q", first)
	}

	n2 := node.NewNative("startup", node.RetNumber, bStartup)
	n2.Push(str("MyApp"))
	n2.Push(opt(node.OptCommand, str("Assign MYAPP: dh1:myapp")))
	ev.Resolve(n2)
	data, _ = m.ReadFile("s:user-startup")
	second := string(data)
	if strings.Contains(second, "dh0:myapp") {
		t.Fatalf("expected the old block contents replaced, got %q", second)
	}
	if !strings.Contains(second, "dh1:myapp") {
		t.Fatalf("expected the new command present, got %q", second)
	}
}

func TestTextFileAssemblesAppendAndInclude(t *testing.T) {
	ev, _, m, _ := newTestRig()
	m.PutFile("included", []byte("INC"))

	n := node.NewNative("textfile", node.RetNumber, bTextFile)
	n.Push(opt(node.OptDest, str("out")))
	n.Push(opt(node.OptAppend, str("first ")))
	n.Push(opt(node.OptInclude, str("included")))
	got := ev.Resolve(n)
	if got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	data, err := m.ReadFile("out")
	if err != nil || string(data) != "first INC" {
		t.Fatalf("expected assembled content \"first INC\", got %q err=%v", data, err)
	}
}

func TestToolTypeSetsTooltype(t *testing.T) {
	ev, _, m, _ := newTestRig()
	n := node.NewNative("tooltype", node.RetNumber, bToolType)
	n.Push(opt(node.OptDest, str("app.info")))
	inner := node.NewOption(node.OptSetToolType)
	inner.Push(str("STACK"))
	inner.Push(str("8000"))
	n.Push(inner)
	got := ev.Resolve(n)
	if got.ID != 1 {
		t.Fatalf("expected success, got %v", got)
	}
	icon, err := m.IconRead("app.info")
	if err != nil {
		t.Fatalf("expected the icon to have been written: %v", err)
	}
	if v, ok := icon.Tooltype("STACK"); !ok || v != "8000" {
		t.Fatalf("expected STACK=8000, got %v ok=%v", v, ok)
	}
}
