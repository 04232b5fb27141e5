package host

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// memNode is one file or directory in Mem's in-memory tree.
type memNode struct {
	kind     Existence
	data     []byte
	perm     uint32
	modTime  int64
	children map[string]*memNode
	icon     *Icon
}

func newMemDir() *memNode {
	return &memNode{kind: Dir, children: make(map[string]*memNode)}
}

// Mem is an in-memory Host double for tests: no real filesystem I/O, no
// external processes, deterministic probe answers. Grounded on the
// teacher's runtime test doubles (runtime/symtable_test.go uses plain maps
// rather than a mock framework), carried over here for host.Host.
type Mem struct {
	mu      sync.Mutex
	root    *memNode
	assigns map[string]string

	versions map[string][2]int // kind+":"+name -> [major, minor]
	env      map[string]string

	cpu, os       string
	chip, total   int64
	workbench     string
	kickstart     string
	fromShell     bool
	execLog       []string
	diskFreeBytes int64
	locale        string
	home          string
}

var _ Host = (*Mem)(nil)

// NewMem creates an empty in-memory host with a root directory "/".
func NewMem() *Mem {
	return &Mem{
		root:          newMemDir(),
		assigns:       make(map[string]string),
		versions:      make(map[string][2]int),
		env:           make(map[string]string),
		cpu:           "mem68k",
		os:            "amitest",
		chip:          2 << 20,
		total:         8 << 20,
		workbench:     "3.1",
		kickstart:     "3.1",
		fromShell:     true,
		diskFreeBytes: 1 << 30,
	}
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (m *Mem) lookup(path string) *memNode {
	segs := splitPath(path)
	cur := m.root
	for _, s := range segs {
		if cur.children == nil {
			return nil
		}
		next, ok := cur.children[s]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func (m *Mem) lookupParent(path string) (*memNode, string, bool) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil, "", false
	}
	cur := m.root
	for _, s := range segs[:len(segs)-1] {
		next, ok := cur.children[s]
		if !ok || next.kind != Dir {
			return nil, "", false
		}
		cur = next
	}
	return cur, segs[len(segs)-1], true
}

// PutFile seeds the in-memory tree with a file, creating any missing
// parent directories, for test setup.
func (m *Mem) PutFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	segs := splitPath(path)
	if len(segs) == 0 {
		return
	}
	parent := m.root
	for _, s := range segs[:len(segs)-1] {
		next, ok := parent.children[s]
		if !ok {
			next = newMemDir()
			parent.children[s] = next
		} else if next.kind != Dir {
			return
		}
		parent = next
	}
	name := segs[len(segs)-1]
	parent.children[name] = &memNode{kind: File, data: append([]byte(nil), data...), perm: 0, modTime: time.Now().Unix()}
}

// SetModTime backdates/advances a seeded file's modification time, for
// tests of (earlier A B).
func (m *Mem) SetModTime(path string, unix int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.lookup(path); n != nil {
		n.modTime = unix
	}
}

func (m *Mem) Stat(path string) (size int64, modTime int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil {
		return 0, 0, fmt.Errorf("no such entry: %s", path)
	}
	return int64(len(n.data)), n.modTime, nil
}

func (m *Mem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil || n.kind != File {
		return nil, fmt.Errorf("not a file: %s", path)
	}
	return append([]byte(nil), n.data...), nil
}

// WriteFile writes content verbatim, creating or overwriting the entry,
// for (textfile)'s assembled body and (startup)'s rewritten @user-startup.
func (m *Mem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent, name, ok := m.lookupParent(path)
	if !ok {
		return fmt.Errorf("no such parent directory for: %s", path)
	}
	parent.children[name] = &memNode{kind: File, data: append([]byte(nil), data...), modTime: time.Now().Unix()}
	return nil
}

// PutDir seeds the in-memory tree with an (empty, if new) directory.
func (m *Mem) PutDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	segs := splitPath(path)
	cur := m.root
	for _, s := range segs {
		next, ok := cur.children[s]
		if !ok {
			next = newMemDir()
			cur.children[s] = next
		}
		cur = next
	}
}

func (m *Mem) Exists(path string) (Existence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil {
		return None, nil
	}
	return n.kind, nil
}

func (m *Mem) ReadDir(path string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil || n.kind != Dir {
		return nil, fmt.Errorf("not a directory: %s", path)
	}
	entries := make([]Entry, 0, len(n.children))
	for name, child := range n.children {
		entries = append(entries, Entry{Name: name, Kind: child.kind})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *Mem) CopyFile(src, dst string, progress func(copied, total int64)) error {
	m.mu.Lock()
	srcNode := m.lookup(src)
	if srcNode == nil || srcNode.kind != File {
		m.mu.Unlock()
		return fmt.Errorf("not a file: %s", src)
	}
	parent, name, ok := m.lookupParent(dst)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("no such directory for: %s", dst)
	}
	total := int64(len(srcNode.data))
	if progress != nil {
		progress(total, total)
	}
	m.mu.Lock()
	parent.children[name] = &memNode{kind: File, data: append([]byte(nil), srcNode.data...), perm: srcNode.perm, modTime: time.Now().Unix()}
	m.mu.Unlock()
	return nil
}

func (m *Mem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent, name, ok := m.lookupParent(path)
	if !ok {
		return fmt.Errorf("no such entry: %s", path)
	}
	n, ok := parent.children[name]
	if !ok {
		return fmt.Errorf("no such entry: %s", path)
	}
	if n.kind == Dir && len(n.children) > 0 {
		return fmt.Errorf("directory not empty: %s", path)
	}
	delete(parent.children, name)
	return nil
}

func (m *Mem) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent, name, ok := m.lookupParent(path)
	if !ok {
		return nil
	}
	delete(parent.children, name)
	return nil
}

func (m *Mem) Rename(old, new string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldParent, oldName, ok := m.lookupParent(old)
	if !ok {
		return fmt.Errorf("no such entry: %s", old)
	}
	n, ok := oldParent.children[oldName]
	if !ok {
		return fmt.Errorf("no such entry: %s", old)
	}
	newParent, newName, ok := m.lookupParent(new)
	if !ok {
		return fmt.Errorf("no such directory for: %s", new)
	}
	delete(oldParent.children, oldName)
	newParent.children[newName] = n
	return nil
}

func (m *Mem) MakeDir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent, name, ok := m.lookupParent(path)
	if !ok {
		return fmt.Errorf("no such parent directory for: %s", path)
	}
	if _, exists := parent.children[name]; exists {
		return fmt.Errorf("already exists: %s", path)
	}
	parent.children[name] = newMemDir()
	return nil
}

func (m *Mem) GetPerm(path string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil {
		return 0, fmt.Errorf("no such entry: %s", path)
	}
	return n.perm, nil
}

func (m *Mem) SetPerm(path string, mask uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil {
		return fmt.Errorf("no such entry: %s", path)
	}
	n.perm = mask
	return nil
}

func (m *Mem) ReadVersionFromFile(path string) (int, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil || n.kind != File {
		return 0, 0, false
	}
	maj, min, ok := scanVerTag(strings.NewReader(string(n.data)))
	return maj, min, ok
}

// SetResidentVersion/SetLibraryVersion/SetDeviceVersion let tests stage
// (getversion) answers for sources that have no on-disk representation.
func (m *Mem) SetResidentVersion(name string, major, minor int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions["resident:"+name] = [2]int{major, minor}
}

func (m *Mem) SetLibraryVersion(name string, major, minor int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions["library:"+name] = [2]int{major, minor}
}

func (m *Mem) SetDeviceVersion(name string, major, minor int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions["device:"+name] = [2]int{major, minor}
}

func (m *Mem) ReadResident(name string) (int, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.versions["resident:"+name]
	return v[0], v[1], ok
}

func (m *Mem) ReadLibrary(name string) (int, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.versions["library:"+name]
	return v[0], v[1], ok
}

func (m *Mem) ReadDevice(name string) (int, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.versions["device:"+name]
	return v[0], v[1], ok
}

func (m *Mem) SetDiskSpace(free int64) { m.diskFreeBytes = free }

func (m *Mem) DiskSpace(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookup(path) == nil && path != "" && path != "/" {
		return 0, fmt.Errorf("no such entry: %s", path)
	}
	return m.diskFreeBytes, nil
}

func (m *Mem) DeviceFor(path string) (string, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return "RAM", nil
	}
	return strings.ToUpper(segs[0]), nil
}

func (m *Mem) GetAssign(name string, wantVolume bool) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.assigns[strings.ToUpper(name)]
	if !ok {
		return "", false
	}
	if wantVolume {
		dev, _ := m.DeviceFor(target)
		return dev, true
	}
	return target, true
}

func (m *Mem) MakeAssign(name, target string, unassign bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToUpper(name)
	if unassign {
		delete(m.assigns, key)
		return nil
	}
	m.assigns[key] = target
	return nil
}

func (m *Mem) RelabelVolume(oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.assigns {
		if v == oldName {
			m.assigns[k] = newName
		}
	}
	return nil
}

func (m *Mem) IconRead(path string) (Icon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil || n.icon == nil {
		return Icon{}, fmt.Errorf("no icon for: %s", path)
	}
	cp := *n.icon
	cp.ToolTypes = append([]string(nil), n.icon.ToolTypes...)
	return cp, nil
}

func (m *Mem) IconWrite(path string, icon Icon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.lookup(path)
	if n == nil {
		parent, name, ok := m.lookupParent(path)
		if !ok {
			return fmt.Errorf("no such parent directory for: %s", path)
		}
		n = &memNode{kind: File}
		parent.children[name] = n
	}
	cp := icon
	cp.ToolTypes = append([]string(nil), icon.ToolTypes...)
	n.icon = &cp
	return nil
}

func (m *Mem) IconDefault(kind IconKind) Icon {
	switch kind {
	case IconDrawer, IconDisk:
		return Icon{Stack: 4000, NoPosition: true}
	default:
		return Icon{NoPosition: true}
	}
}

func (m *Mem) Reboot() error { return nil }

func (m *Mem) Execute(cmdline string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.execLog = append(m.execLog, cmdline)
	return 0, nil
}

// ExecLog returns every command passed to Execute, in order, for assertions.
func (m *Mem) ExecLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.execLog...)
}

func (m *Mem) CompilePattern(pat string) (Pattern, error) { return CompilePattern(pat) }

func (m *Mem) CPUName() string        { return m.cpu }
func (m *Mem) OSName() string         { return m.os }
func (m *Mem) ChipMem() int64         { return m.chip }
func (m *Mem) TotalMem() int64        { return m.total }
func (m *Mem) Workbench() string      { return m.workbench }
func (m *Mem) Kickstart() string      { return m.kickstart }
func (m *Mem) LaunchedFromShell() bool { return m.fromShell }

func (m *Mem) SetLaunchedFromShell(v bool) { m.fromShell = v }

func (m *Mem) Getenv(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.env[name]
	return v, ok
}

func (m *Mem) Setenv(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env[name] = value
}

// ExpandPath mirrors Posix.ExpandPath's "~" home-relative resolution
// against a test-seeded home directory, so builtins tests can assert
// that a path-consuming operator actually calls through to ExpandPath
// rather than just trusting it's wired.
func (m *Mem) ExpandPath(path string) string {
	if m.home == "" {
		return path
	}
	if path == "~" {
		return m.home
	}
	if strings.HasPrefix(path, "~/") {
		return m.home + "/" + path[2:]
	}
	return path
}

// SetHome seeds the home directory ExpandPath resolves "~" against.
func (m *Mem) SetHome(home string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.home = home
}

// Locale returns the test-seeded locale, defaulting to "en_US" like Posix.
func (m *Mem) Locale() string {
	if m.locale == "" {
		return "en_US"
	}
	return m.locale
}

// SetLocale seeds the locale Locale reports, for tests exercising locale branching.
func (m *Mem) SetLocale(locale string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locale = locale
}
