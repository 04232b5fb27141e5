package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPatternLiteral(t *testing.T) {
	p, err := CompilePattern("Foo")
	if err != nil {
		t.Fatal(err)
	}
	if p.HasWildcards() {
		t.Fatal("literal pattern reported wildcards")
	}
	if !p.Match("Foo") || p.Match("Bar") {
		t.Fatal("literal pattern matched incorrectly")
	}
}

func TestPatternWildcards(t *testing.T) {
	cases := []struct {
		pat, name string
		want      bool
	}{
		{"#?.info", "Tool.info", true},
		{"*.info", "Tool.info", true},
		{"#?.info", "Tool.infox", false},
		{"T??l", "Tool", true},
		{"T??l", "Too", false},
		{"[A-C]oo", "Boo", true},
		{"[A-C]oo", "Doo", false},
		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"~foo", "bar", true},
		{"~foo", "foo", false},
	}
	for _, c := range cases {
		p, err := CompilePattern(c.pat)
		if err != nil {
			t.Fatalf("compile %q: %v", c.pat, err)
		}
		if got := p.Match(c.name); got != c.want {
			t.Errorf("pattern %q vs %q: got %v, want %v", c.pat, c.name, got, c.want)
		}
	}
}

func TestSortEntries(t *testing.T) {
	in := []Entry{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	out := SortEntries(in)
	if out[0].Name != "a" || out[1].Name != "b" || out[2].Name != "c" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if in[0].Name != "c" {
		t.Fatal("SortEntries mutated its input")
	}
}

func TestIconTooltype(t *testing.T) {
	ic := Icon{}
	ic.SetTooltype("STACK", "8000")
	ic.SetTooltype("NOBUFFER", "")
	if v, ok := ic.Tooltype("STACK"); !ok || v != "8000" {
		t.Fatalf("STACK tooltype: %v %v", v, ok)
	}
	if _, ok := ic.Tooltype("NOBUFFER"); !ok {
		t.Fatal("bare tooltype not found")
	}
	ic.SetTooltype("STACK", "16000")
	if v, _ := ic.Tooltype("STACK"); v != "16000" {
		t.Fatalf("STACK not replaced, got %v", v)
	}
	if len(ic.ToolTypes) != 2 {
		t.Fatalf("replace should not append, got %v", ic.ToolTypes)
	}
	ic.DeleteTooltype("NOBUFFER")
	if _, ok := ic.Tooltype("NOBUFFER"); ok {
		t.Fatal("NOBUFFER not deleted")
	}
}

func TestMemFilesystem(t *testing.T) {
	m := NewMem()
	m.PutDir("Work")
	m.PutFile("Work/readme.txt", []byte("hello"))

	if kind, err := m.Exists("Work/readme.txt"); err != nil || kind != File {
		t.Fatalf("exists: %v %v", kind, err)
	}
	if err := m.MakeDir("Work/Sub"); err != nil {
		t.Fatal(err)
	}
	if err := m.CopyFile("Work/readme.txt", "Work/Sub/readme.txt", nil); err != nil {
		t.Fatal(err)
	}
	entries, err := m.ReadDir("Work/Sub")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "readme.txt" {
		t.Fatalf("unexpected dir listing: %+v", entries)
	}
	if err := m.Rename("Work/Sub/readme.txt", "Work/Sub/doc.txt"); err != nil {
		t.Fatal(err)
	}
	if kind, _ := m.Exists("Work/Sub/doc.txt"); kind != File {
		t.Fatal("rename did not take effect")
	}
	if err := m.Remove("Work/readme.txt"); err != nil {
		t.Fatal(err)
	}
	if kind, _ := m.Exists("Work/readme.txt"); kind != None {
		t.Fatal("remove did not take effect")
	}
}

func TestMemAssignsAndIcons(t *testing.T) {
	m := NewMem()
	if err := m.MakeAssign("LIBS", "System/Libs", false); err != nil {
		t.Fatal(err)
	}
	if target, ok := m.GetAssign("LIBS", false); !ok || target != "System/Libs" {
		t.Fatalf("assign: %v %v", target, ok)
	}
	m.PutFile("System/Libs/foo.tool", nil)
	icon := Icon{DefaultTool: "C:Foo", Stack: 4000}
	icon.SetTooltype("WINDOW", "CON:0/0/640/200")
	if err := m.IconWrite("System/Libs/foo.tool", icon); err != nil {
		t.Fatal(err)
	}
	got, err := m.IconRead("System/Libs/foo.tool")
	if err != nil {
		t.Fatal(err)
	}
	if got.DefaultTool != "C:Foo" || got.Stack != 4000 {
		t.Fatalf("icon round-trip mismatch: %+v", got)
	}
	if v, ok := got.Tooltype("WINDOW"); !ok || v != "CON:0/0/640/200" {
		t.Fatalf("tooltype round-trip mismatch: %v %v", v, ok)
	}
}

func TestMemVersionProbes(t *testing.T) {
	m := NewMem()
	m.SetLibraryVersion("icon.library", 44, 2)
	maj, min, ok := m.ReadLibrary("icon.library")
	if !ok || maj != 44 || min != 2 {
		t.Fatalf("library probe: %v %v %v", maj, min, ok)
	}
	if _, _, ok := m.ReadLibrary("nosuch.library"); ok {
		t.Fatal("expected miss for unset library")
	}
}

func TestPosixExpandPathResolvesHomeRelative(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available in this environment")
	}
	p := NewPosix()
	if got := p.ExpandPath("~"); got != home {
		t.Fatalf("expected bare ~ to expand to %q, got %q", home, got)
	}
	want := filepath.Join(home, "foo/bar")
	if got := p.ExpandPath("~/foo/bar"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := p.ExpandPath("dh0:myapp"); got != "dh0:myapp" {
		t.Fatalf("a non-~ path must pass through unchanged, got %q", got)
	}
}

func TestMemLocaleDefaultsThenHonorsSeed(t *testing.T) {
	m := NewMem()
	if got := m.Locale(); got != "en_US" {
		t.Fatalf("expected default en_US, got %q", got)
	}
	m.SetLocale("de_DE")
	if got := m.Locale(); got != "de_DE" {
		t.Fatalf("expected seeded locale, got %q", got)
	}
}

func TestScanVerTag(t *testing.T) {
	body := "junkjunk$VER: MyTool 2.3 (01.02.2026)\x00trailing"
	maj, min, ok := scanVerTag(strings.NewReader(body))
	if !ok || maj != 2 || min != 3 {
		t.Fatalf("scanVerTag: %v %v %v", maj, min, ok)
	}
}
