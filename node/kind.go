package node

// Kind discriminates which fields of a Node are meaningful (spec §3).
type Kind int

const (
	// Number holds an integer literal or computed value in ID.
	Number Kind = iota
	// String holds a string literal or computed value in Name.
	String
	// Symbol is a binding (name -> Resolved value).
	Symbol
	// SymRef is an unresolved identifier occurrence, a lookup target.
	SymRef
	// Native is a call to a built-in operator.
	Native
	// Option is a keyword argument child of a Native, e.g. (prompt ...).
	Option
	// Custom is a user-defined procedure definition.
	Custom
	// CusRef is a call to a user-defined procedure, bound by name at call time.
	CusRef
	// Context groups a sequence of statements with a local symbol table.
	Context
	// Status is a sentinel result (end-of-list, dangle, halt, abort, error, bail).
	Status
	// Dangle is the placeholder "no value yet" default return.
	Dangle
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	case SymRef:
		return "SymRef"
	case Native:
		return "Native"
	case Option:
		return "Option"
	case Custom:
		return "Custom"
	case CusRef:
		return "CusRef"
	case Context:
		return "Context"
	case Status:
		return "Status"
	case Dangle:
		return "Dangle"
	default:
		return "Kind?"
	}
}

// RetKind is the declared coercion default of a Native (spec §3's
// `ret_kind` field).
type RetKind int

const (
	// RetDangle means "whatever the body last produced", i.e. no coercion.
	RetDangle RetKind = iota
	RetNumber
	RetString
)

func (k RetKind) String() string {
	switch k {
	case RetNumber:
		return "Number"
	case RetString:
		return "String"
	default:
		return "Dangle"
	}
}

// OptTag is the fixed option-keyword enum of spec §6.
type OptTag int

const (
	OptNone OptTag = iota
	OptAll
	OptAppend
	OptAssigns
	OptBack
	OptChoices
	OptCommand
	OptCompression
	OptConfirm
	OptDefault
	OptDelopts
	OptDest
	OptDisk
	OptFiles
	OptFonts
	OptGetDefaultTool
	OptGetPosition
	OptGetStack
	OptGetToolType
	OptHelp
	OptInfos
	OptInclude
	OptNewname
	OptNewpath
	OptNogauge
	OptNoposition
	OptNoreq
	OptPattern
	OptPrompt
	OptQuiet
	OptRange
	OptSafe
	OptSetDefaultTool
	OptSetPosition
	OptSetStack
	OptSetToolType
	OptSource
	OptSwapColors
	OptOptional
	OptResident
	OptOverride
	OptDynopt
	OptFail
	OptNofail
	OptOkNoDelete
	OptForce
	OptAskUser
)

var optNames = map[OptTag]string{
	OptAll: "all", OptAppend: "append", OptAssigns: "assigns", OptBack: "back",
	OptChoices: "choices", OptCommand: "command", OptCompression: "compression",
	OptConfirm: "confirm", OptDefault: "default", OptDelopts: "delopts",
	OptDest: "dest", OptDisk: "disk", OptFiles: "files", OptFonts: "fonts",
	OptGetDefaultTool: "getdefaulttool", OptGetPosition: "getposition",
	OptGetStack: "getstack", OptGetToolType: "gettooltype", OptHelp: "help",
	OptInfos: "infos", OptInclude: "include", OptNewname: "newname",
	OptNewpath: "newpath", OptNogauge: "nogauge", OptNoposition: "noposition",
	OptNoreq: "noreq", OptPattern: "pattern", OptPrompt: "prompt",
	OptQuiet: "quiet", OptRange: "range", OptSafe: "safe",
	OptSetDefaultTool: "setdefaulttool", OptSetPosition: "setposition",
	OptSetStack: "setstack", OptSetToolType: "settooltype", OptSource: "source",
	OptSwapColors: "swapcolors", OptOptional: "optional", OptResident: "resident",
	OptOverride: "override", OptDynopt: "dynopt", OptFail: "fail",
	OptNofail: "nofail", OptOkNoDelete: "oknodelete", OptForce: "force",
	OptAskUser: "askuser",
}

func (t OptTag) String() string {
	if s, ok := optNames[t]; ok {
		return s
	}
	return "option?"
}

// StatusTag distinguishes the sentinel Status values (spec §3's
// "end-of-list, dangle, halt, abort, error, bail").
type StatusTag int

const (
	StatusEndOfList StatusTag = iota
	StatusHalt
	StatusAbort
	StatusError
	StatusBail
)
