package builtins

import (
	"hash/adler32"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/node"
)

// bExists implements (exists PATH [(noreq)]): 0 none, 1 file, 2 dir.
func bExists(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(0)
	}
	kind, err := ev.Host().Exists(ev.Str(args[0]))
	if err != nil {
		return node.NewNumber(0)
	}
	return node.NewNumber(int64(kind))
}

// bFileOnly implements (fileonly P): the final path segment.
func bFileOnly(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	return node.NewString(filepath.Base(ev.Str(args[0])))
}

// bPathOnly implements (pathonly P): every segment but the last.
func bPathOnly(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	dir := filepath.Dir(ev.Str(args[0]))
	if dir == "." {
		return node.NewString("")
	}
	return node.NewString(dir)
}

func bGetSize(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(-1)
	}
	size, _, err := ev.Host().Stat(ev.Str(args[0]))
	if err != nil {
		return node.NewNumber(-1)
	}
	return node.NewNumber(size)
}

// bGetSum implements (getsum F): the file's Adler-32 checksum, the
// specific algorithm spec §4.4 names.
func bGetSum(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(0)
	}
	data, err := ev.Host().ReadFile(ev.Str(args[0]))
	if err != nil {
		return node.NewNumber(0)
	}
	return node.NewNumber(int64(adler32.Checksum(data)))
}

func bGetAssign(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	wantVolume := optPresent(n, node.OptDisk)
	v, ok := ev.Host().GetAssign(ev.Str(args[0]), wantVolume)
	if !ok {
		return node.NewString("")
	}
	return node.NewString(v)
}

func bGetDevice(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	v, err := ev.Host().DeviceFor(ev.Str(args[0]))
	if err != nil {
		return node.NewString("")
	}
	return node.NewString(v)
}

// diskSpaceUnits matches the UNIT names the original installer accepts:
// bytes (default), k, m.
var diskSpaceUnits = map[string]int64{
	"":  1,
	"k": 1024,
	"m": 1024 * 1024,
}

func bGetDiskSpace(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(0)
	}
	bytes, err := ev.Host().DiskSpace(ev.Str(args[0]))
	if err != nil {
		return node.NewNumber(0)
	}
	unit := ""
	if len(args) > 1 {
		unit = strings.ToLower(ev.Str(args[1]))
	}
	div, ok := diskSpaceUnits[unit]
	if !ok {
		div = 1
	}
	return node.NewNumber(bytes / div)
}

func bGetEnv(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	v, _ := ev.Host().Getenv(ev.Str(args[0]))
	return node.NewString(v)
}

// bGetVersion implements (getversion [NAME] [(resident)]): probe resident,
// then a file's $VER: tag, then library, then device; returns
// (major<<16)|minor, or -1 if none matched.
func bGetVersion(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	name := ""
	if len(args) > 0 {
		name = ev.Str(args[0])
	}
	if maj, min, ok := ev.Host().ReadResident(name); ok {
		return node.NewNumber(int64(maj)<<16 | int64(min))
	}
	if optPresent(n, node.OptResident) {
		return node.NewNumber(-1)
	}
	if maj, min, ok := ev.Host().ReadVersionFromFile(name); ok {
		return node.NewNumber(int64(maj)<<16 | int64(min))
	}
	if maj, min, ok := ev.Host().ReadLibrary(name); ok {
		return node.NewNumber(int64(maj)<<16 | int64(min))
	}
	if maj, min, ok := ev.Host().ReadDevice(name); ok {
		return node.NewNumber(int64(maj)<<16 | int64(min))
	}
	return node.NewNumber(-1)
}

// bDatabase implements (database KEY [VALUE]): host info lookup; a VALUE
// arg turns this into a 0/1 equality test instead of a raw read.
func bDatabase(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewString("")
	}
	key := strings.ToLower(ev.Str(args[0]))
	var val string
	switch key {
	case "cpu":
		val = ev.Host().CPUName()
	case "os":
		val = ev.Host().OSName()
	case "graphics-mem":
		val = strconv.FormatInt(ev.Host().ChipMem(), 10)
	case "total-mem":
		val = strconv.FormatInt(ev.Host().TotalMem(), 10)
	case "workbench":
		val = ev.Host().Workbench()
	case "kickstart":
		val = ev.Host().Kickstart()
	default:
		val = ""
	}
	if len(args) > 1 {
		want := ev.Str(args[1])
		return node.NewString(boolStr(val == want))
	}
	return node.NewString(val)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// bEarlier implements (earlier A B): compares mtimes, true if A is older.
func bEarlier(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) < 2 {
		return node.NewNumber(0)
	}
	_, mtA, errA := ev.Host().Stat(ev.Str(args[0]))
	_, mtB, errB := ev.Host().Stat(ev.Str(args[1]))
	if errA != nil || errB != nil {
		return node.NewNumber(0)
	}
	return node.NewNumber(boolNum(mtA < mtB))
}

// bIconInfo implements (iconinfo ...): populate scoped variables from an
// icon's default tool, stack, position and specific tooltypes, driven by
// the get* counterparts (getdefaulttool) of the set* options bToolType in
// files.go uses to mutate.
func bIconInfo(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	path := ev.Str(args[0])
	icon, err := ev.Host().IconRead(path)
	if err != nil {
		icon = host.Icon{}
	}
	if optPresent(n, node.OptGetDefaultTool) {
		ev.SetStrVar("icon-defaulttool", icon.DefaultTool)
	}
	if optPresent(n, node.OptGetStack) {
		ev.SetNumVar("icon-stack", int64(icon.Stack))
	}
	if optPresent(n, node.OptGetPosition) {
		ev.SetNumVar("icon-posx", int64(icon.PosX))
		ev.SetNumVar("icon-posy", int64(icon.PosY))
	}
	if opt, ok := n.Option(node.OptGetToolType); ok && len(opt.Children) > 0 {
		key := ev.Str(opt.Children[0])
		v, has := icon.Tooltype(key)
		if has {
			ev.SetStrVar("icon-tooltype", v)
		} else {
			ev.SetStrVar("icon-tooltype", "")
		}
	}
	return node.DangleNode
}
