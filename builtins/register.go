package builtins

import "github.com/amiga-tools/aminstall/node"

type entry struct {
	ret  node.RetKind
	call node.NativeFunc
}

// registry maps every fixed operator keyword of spec §4.4 to its
// implementation. (procedure)/(onerror) are deliberately absent: they
// need an already-built *node.Custom from the caller, so they are
// constructed directly via Procedure/OnError rather than looked up here.
var registry = map[string]entry{
	"+": {node.RetNumber, bAdd}, "-": {node.RetNumber, bSub},
	"*": {node.RetNumber, bMul}, "/": {node.RetNumber, bDiv},
	"and": {node.RetNumber, bAnd}, "or": {node.RetNumber, bOr},
	"xor": {node.RetNumber, bXor}, "not": {node.RetNumber, bNot},
	"bitand": {node.RetNumber, bBitAnd}, "bitor": {node.RetNumber, bBitOr},
	"bitxor": {node.RetNumber, bBitXor}, "bitnot": {node.RetNumber, bBitNot},
	"shiftleft": {node.RetNumber, bShiftLeft}, "shiftright": {node.RetNumber, bShiftRight},
	"in": {node.RetNumber, bIn},
	"=":  {node.RetNumber, cmpBuiltin(func(c int64) bool { return c == 0 })},
	"<":  {node.RetNumber, cmpBuiltin(func(c int64) bool { return c < 0 })},
	">":  {node.RetNumber, cmpBuiltin(func(c int64) bool { return c > 0 })},
	"<=": {node.RetNumber, cmpBuiltin(func(c int64) bool { return c <= 0 })},
	">=": {node.RetNumber, cmpBuiltin(func(c int64) bool { return c >= 0 })},
	"<>": {node.RetNumber, cmpBuiltin(func(c int64) bool { return c != 0 })},

	"if": {node.RetDangle, bIf}, "while": {node.RetDangle, bWhile},
	"until": {node.RetDangle, bUntil}, "select": {node.RetDangle, bSelect},
	"trap": {node.RetDangle, bTrap}, "foreach": {node.RetDangle, bForeach},

	"set": {node.RetDangle, bSet}, "symbolset": {node.RetDangle, bSymbolSet},
	"symbolval": {node.RetDangle, bSymbolVal},

	"askbool": {node.RetNumber, bAskBool}, "askchoice": {node.RetNumber, bAskChoice},
	"askoptions": {node.RetNumber, bAskOptions}, "asknumber": {node.RetNumber, bAskNumber},
	"askstring": {node.RetString, bAskString}, "askfile": {node.RetString, bAskFile},
	"askdir": {node.RetString, bAskDir}, "askdisk": {node.RetString, bAskDisk},

	"message": {node.RetDangle, bMessage}, "welcome": {node.RetDangle, bWelcome},
	"working": {node.RetDangle, bWorking}, "complete": {node.RetDangle, bComplete},
	"user": {node.RetNumber, bUser}, "debug": {node.RetDangle, bDebug},
	"transcript": {node.RetDangle, bTranscript},

	"exists": {node.RetNumber, bExists}, "fileonly": {node.RetString, bFileOnly},
	"pathonly": {node.RetString, bPathOnly}, "getsize": {node.RetNumber, bGetSize},
	"getsum": {node.RetNumber, bGetSum}, "getassign": {node.RetString, bGetAssign},
	"getdevice": {node.RetString, bGetDevice}, "getdiskspace": {node.RetNumber, bGetDiskSpace},
	"getenv": {node.RetString, bGetEnv}, "getversion": {node.RetNumber, bGetVersion},
	"database": {node.RetString, bDatabase}, "earlier": {node.RetNumber, bEarlier},
	"iconinfo": {node.RetDangle, bIconInfo},

	"copyfiles": {node.RetNumber, bCopyFiles}, "copylib": {node.RetNumber, bCopyLib},
	"delete": {node.RetNumber, bDelete}, "rename": {node.RetNumber, bRename},
	"makedir": {node.RetNumber, bMakeDir}, "makeassign": {node.RetNumber, bMakeAssign},
	"protect": {node.RetNumber, bProtect}, "startup": {node.RetNumber, bStartup},
	"textfile": {node.RetNumber, bTextFile}, "tooltype": {node.RetNumber, bToolType},

	"execute": {node.RetNumber, bExecute}, "rexx": {node.RetNumber, bRexx},
	"run": {node.RetNumber, bRun}, "exit": {node.RetDangle, bExit},
	"abort": {node.RetDangle, bAbort}, "reboot": {node.RetNumber, bReboot},
}

// New builds the Native node for a fixed operator keyword. ok is false for
// any name not in spec §4.4's fixed operator set (e.g. a user-defined
// procedure name, looked up instead via Evaluator.FindProcedure).
func New(name string) (*node.Node, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return node.NewNative(name, e.ret, e.call), true
}

// Names returns every registered operator keyword, for tooling/tests.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	return names
}
