package env

import (
	"strings"
	"sync"
)

// Reserved stores the "@..."-prefixed dotted system variables of spec
// §4.3/§6. Each name is exclusively numeric or string-valued; writing a
// name with the wrong kind of setter is a silent no-op, an intentional
// robustness property carried over from the source (spec §4.3's
// get_numvar/get_strvar/set_numvar/set_strvar).
type Reserved struct {
	mu   sync.Mutex
	nums map[string]int64
	strs map[string]string
}

func normalizeVarName(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "@"))
}

func newReserved() *Reserved {
	return &Reserved{
		nums: make(map[string]int64),
		strs: make(map[string]string),
	}
}

// GetNum reads a numeric reserved variable.
func (r *Reserved) GetNum(name string) (int64, bool) {
	key := normalizeVarName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.nums[key]
	return v, ok
}

// GetStr reads a string reserved variable.
func (r *Reserved) GetStr(name string) (string, bool) {
	key := normalizeVarName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.strs[key]
	return v, ok
}

// SetNum writes a numeric reserved variable; a no-op if name is already
// bound as a string.
func (r *Reserved) SetNum(name string, v int64) {
	key := normalizeVarName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, isStr := r.strs[key]; isStr {
		return
	}
	r.nums[key] = v
}

// SetStr writes a string reserved variable; a no-op if name is already
// bound as a number.
func (r *Reserved) SetStr(name string, v string) {
	key := normalizeVarName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, isNum := r.nums[key]; isNum {
		return
	}
	r.strs[key] = v
}

// BootstrapOptions seeds the startup variables of spec §6 from CLI/
// ToolType arguments and host locale; Bootstrap applies the fixed
// initializers alongside these caller-supplied values.
type BootstrapOptions struct {
	AppName     string
	Icon        string
	LogFile     string
	UserLevel   int64 // 0 novice, 1 average, 2 expert
	UserMin     int64
	Language    string
	NoLog       bool
	NoPretend   bool
	DefaultDest string
}

const installerVersion = 45 // interpreter's own @installer-version

// promptHelpNames lists the operators whose "*-help" reserved string the
// source pre-seeds as empty (spec §6: "a batch of empty *-help strings").
var promptHelpNames = []string{
	"askbool", "askchoice", "askdir", "askdisk", "askfile", "asknumber",
	"askoptions", "askstring", "confirm", "copyfiles", "copylib", "delete",
	"makedir", "rename", "textfile", "tooltype", "welcome",
}

// Bootstrap creates a Reserved table seeded per spec §6's "Startup
// variables": caller-supplied CLI/ToolType values, clamped/defaulted,
// plus the fixed constant initializers.
func Bootstrap(opts BootstrapOptions) *Reserved {
	r := newReserved()

	if opts.UserLevel < opts.UserMin {
		opts.UserLevel = opts.UserMin
	}
	r.SetStr("app-name", opts.AppName)
	r.SetStr("icon", opts.Icon)
	logFile := opts.LogFile
	if logFile == "" {
		logFile = "install_log_file"
	}
	r.SetStr("log-file", logFile)
	r.SetNum("user-level", opts.UserLevel)
	r.SetNum("user-min", opts.UserMin)
	language := opts.Language
	if language == "" {
		language = "english"
	}
	r.SetStr("language", language)
	r.SetNum("no-log", boolToNum(opts.NoLog))
	r.SetNum("no-pretend", boolToNum(opts.NoPretend))
	r.SetStr("default-dest", opts.DefaultDest)

	// Fixed constant initializers (spec §6).
	r.SetNum("pretend", 0)
	r.SetNum("log", 0)
	r.SetNum("installer-version", installerVersion)
	r.SetNum("ioerr", 0)
	r.SetNum("yes", 0)
	r.SetNum("skip", 0)
	r.SetNum("abort", 0)
	r.SetNum("back", 0)
	r.SetNum("strict", 0) // off-Amiga default; see DESIGN.md Open Questions
	r.SetNum("effect", 0)
	r.SetNum("color_1", 0)
	r.SetNum("color_2", 0)
	r.SetStr("user-startup", "s:user-startup")
	r.SetStr("error-msg", "")
	r.SetStr("each-name", "")
	r.SetNum("each-type", 0)

	for _, name := range promptHelpNames {
		r.SetStr(name+"-help", "")
	}
	return r
}

func boolToNum(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
