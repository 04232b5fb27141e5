package host

// Existence is the result of an existence probe (spec §6 exists(path)).
type Existence int

const (
	None Existence = iota
	File
	Dir
)

// Entry is one listing result from ReadDir.
type Entry struct {
	Name string
	Kind Existence
}

// IconKind selects a built-in default icon shape for IconDefault.
type IconKind int

const (
	IconTool IconKind = iota
	IconDrawer
	IconDisk
	IconProject
)

// Icon is the subset of Amiga DiskObject metadata the Installer language
// mutates: default tool, tool stack size, screen position, and tooltypes.
type Icon struct {
	DefaultTool string
	Stack       int
	PosX, PosY  int
	NoPosition  bool
	ToolTypes   []string // "KEY" or "KEY=VALUE", in file order
}

// Tooltype looks up a tooltype by key. ok is false if the key is absent.
func (ic Icon) Tooltype(key string) (value string, ok bool) {
	for _, tt := range ic.ToolTypes {
		k, v, has := splitToolType(tt)
		if k == key {
			if has {
				return v, true
			}
			return "", true
		}
	}
	return "", false
}

func splitToolType(tt string) (key, value string, hasValue bool) {
	for i := 0; i < len(tt); i++ {
		if tt[i] == '=' {
			return tt[:i], tt[i+1:], true
		}
	}
	return tt, "", false
}

// SetTooltype sets key=value (or bare key if value==""); an already-present
// key is replaced in place, preserving its position.
func (ic *Icon) SetTooltype(key, value string) {
	entry := key
	if value != "" {
		entry = key + "=" + value
	}
	for i, tt := range ic.ToolTypes {
		k, _, _ := splitToolType(tt)
		if k == key {
			ic.ToolTypes[i] = entry
			return
		}
	}
	ic.ToolTypes = append(ic.ToolTypes, entry)
}

// DeleteTooltype removes key, if present.
func (ic *Icon) DeleteTooltype(key string) {
	out := ic.ToolTypes[:0]
	for _, tt := range ic.ToolTypes {
		k, _, _ := splitToolType(tt)
		if k != key {
			out = append(out, tt)
		}
	}
	ic.ToolTypes = out
}

// Pattern is a compiled Amiga-style wildcard pattern (spec §4.4/§6:
// ?, #?, *, [...], |, ~). See pattern.go.
type Pattern interface {
	Match(name string) bool
	HasWildcards() bool
	String() string
}

// Host is the adapter interface of spec §6. Every method may fail; on
// non-Amiga hosts (spec §6, final paragraph) icon/relabel/assign/reboot/
// execute/some probes degrade to identity or fixed values rather than
// erroring, so that scripts relying on them still terminate.
type Host interface {
	Exists(path string) (Existence, error)
	ReadDir(path string) ([]Entry, error)
	Stat(path string) (size int64, modTime int64, err error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	CopyFile(src, dst string, progress func(copied, total int64)) error
	Remove(path string) error
	RemoveAll(path string) error
	Rename(old, new string) error
	MakeDir(path string) error

	GetPerm(path string) (uint32, error)
	SetPerm(path string, mask uint32) error

	ReadVersionFromFile(path string) (major, minor int, ok bool)
	ReadResident(name string) (major, minor int, ok bool)
	ReadLibrary(name string) (major, minor int, ok bool)
	ReadDevice(name string) (major, minor int, ok bool)

	DiskSpace(path string) (int64, error)
	DeviceFor(path string) (string, error)
	GetAssign(name string, wantVolume bool) (string, bool)
	MakeAssign(name, target string, unassign bool) error
	RelabelVolume(oldName, newName string) error

	IconRead(path string) (Icon, error)
	IconWrite(path string, icon Icon) error
	IconDefault(kind IconKind) Icon

	Reboot() error
	Execute(cmdline string) (exitCode int, err error)

	CompilePattern(pattern string) (Pattern, error)

	CPUName() string
	OSName() string
	ChipMem() int64
	TotalMem() int64
	Workbench() string
	Kickstart() string
	LaunchedFromShell() bool

	Getenv(name string) (string, bool)
	ExpandPath(path string) string
	Locale() string
}
