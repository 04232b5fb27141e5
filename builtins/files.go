package builtins

import (
	"fmt"
	"path"
	"strings"

	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/host"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// gate implements spec §4.4's "Common gating logic" steps 1-2, shared by
// copyfiles/copylib/delete/makedir/rename/textfile/tooltype: an optional
// (confirm [TH]) dialog at or above the threshold user-level (default 2,
// expert), then a (safe)-gated skip under @pretend.
func gate(ev node.Evaluator, n *node.Node) bool {
	if confOpt, ok := n.Option(node.OptConfirm); ok {
		threshold := int64(2)
		if len(confOpt.Children) > 0 {
			threshold = ev.Num(confOpt.Children[0])
		}
		lvl, _ := ev.GetNumVar("user-level")
		yes, _ := ev.GetNumVar("yes")
		if lvl >= threshold && yes == 0 {
			v, answer := ev.Dialog().Bool(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), true)
			if !handleAnswer(ev, answer) || !v {
				return false
			}
		}
	}
	if !optPresent(n, node.OptSafe) {
		if pretend, _ := ev.GetNumVar("pretend"); pretend != 0 {
			return false
		}
	}
	return true
}

// optionalMode reads (optional FAIL|NOFAIL|OKNODELETE|FORCE|ASKUSER),
// defaulting to FAIL (propagate the error) when absent.
func optionalMode(n *node.Node) node.OptTag {
	opt, ok := n.Option(node.OptOptional)
	if !ok || len(opt.Children) == 0 {
		return node.OptFail
	}
	return opt.Children[0].OptTag()
}

// applyFailure implements the FAIL/NOFAIL/OKNODELETE/FORCE/ASKUSER matrix
// of step 3 in the common gating logic: decide whether err should still
// propagate as an evaluator Fail.
func applyFailure(ev node.Evaluator, n *node.Node, code ierrors.Code, msg string) *node.Node {
	switch optionalMode(n) {
	case node.OptNofail, node.OptOkNoDelete:
		return node.NewNumber(0)
	case node.OptForce:
		return node.NewNumber(0)
	case node.OptAskUser:
		v, answer := ev.Dialog().Bool("Retry "+msg+"?", "", false)
		if handleAnswer(ev, answer) && v {
			return node.NewNumber(0)
		}
		return ev.Fail(code, n.Pos, msg)
	default: // OptFail
		return ev.Fail(code, n.Pos, msg)
	}
}

// collectCopyPlan walks source (file or directory) and builds the
// (source path, dest path) pairs copyfiles/copylib need, filtering by
// choices/pattern/fonts per spec §4.4.
func collectCopyPlan(ev node.Evaluator, n *node.Node, source, dest string) ([]dialog.CopyEntry, error) {
	kind, err := ev.Host().Exists(source)
	if err != nil {
		return nil, err
	}
	if kind != host.Dir {
		return []dialog.CopyEntry{{Src: source, Dst: dest}}, nil
	}

	var pattern host.Pattern
	if opt, ok := n.Option(node.OptPattern); ok && len(opt.Children) > 0 {
		pattern, _ = ev.Host().CompilePattern(ev.Str(opt.Children[0]))
	}
	choices := map[string]bool{}
	hasChoices := false
	if opt, ok := n.Option(node.OptChoices); ok {
		hasChoices = true
		for _, c := range opt.Children {
			choices[ev.Str(c)] = true
		}
	}
	skipFonts := optPresent(n, node.OptFonts)

	var entries []dialog.CopyEntry
	var walk func(rel string) error
	walk = func(rel string) error {
		srcDir := path.Join(source, rel)
		list, err := ev.Host().ReadDir(srcDir)
		if err != nil {
			return err
		}
		for _, e := range list {
			if skipFonts && strings.HasSuffix(e.Name, ".font") {
				continue
			}
			if pattern != nil && !pattern.Match(e.Name) {
				continue
			}
			if hasChoices && !choices[e.Name] {
				continue
			}
			relChild := path.Join(rel, e.Name)
			if e.Kind == host.Dir {
				if err := walk(relChild); err != nil {
					return err
				}
				continue
			}
			entries = append(entries, dialog.CopyEntry{
				Src: path.Join(source, relChild),
				Dst: path.Join(dest, relChild),
			})
		}
		return nil
	}
	if err := walk(""); err != nil {
		return nil, err
	}
	return entries, nil
}

func copyOne(ev node.Evaluator, n *node.Node, entry dialog.CopyEntry, total int64) *node.Node {
	if newname := optStr(ev, n, node.OptNewname, ""); newname != "" {
		entry.Dst = path.Join(path.Dir(entry.Dst), newname)
	}
	dir := path.Dir(entry.Dst)
	if _, err := ev.Host().Exists(dir); err == nil {
		_ = ev.Host().MakeDir(dir)
	}
	var progressFn func(copied, total int64)
	if !optPresent(n, node.OptNogauge) {
		progressFn = func(copied, t int64) { ev.Dialog().CopySetCur(0, entry, copied, t) }
	}
	if err := ev.Host().CopyFile(entry.Src, entry.Dst, progressFn); err != nil {
		return applyFailure(ev, n, ierrors.ErrWriteFile, entry.Dst)
	}
	if optPresent(n, node.OptInfos) {
		if icon, err := ev.Host().IconRead(entry.Src); err == nil {
			if optPresent(n, node.OptNoposition) {
				icon.NoPosition = true
			}
			_ = ev.Host().IconWrite(entry.Dst, icon)
		}
	}
	ev.Log(n.Pos, "copyfiles", "%s -> %s", entry.Src, entry.Dst)
	return node.NewNumber(1)
}

// bCopyFiles implements (copyfiles ...) (spec §4.4).
func bCopyFiles(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	source := optStr(ev, n, node.OptSource, "")
	dest := optStr(ev, n, node.OptDest, "")
	if source == "" || dest == "" {
		return ev.Fail(ierrors.ErrMissingOption, n.Pos, "copyfiles requires source and dest")
	}
	source = ev.Host().ExpandPath(source)
	dest = ev.Host().ExpandPath(dest)
	plan, err := collectCopyPlan(ev, n, source, dest)
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrRead, source)
	}
	ev.Dialog().CopyBegin(plan)
	defer ev.Dialog().CopyEnd()
	for _, entry := range plan {
		result := copyOne(ev, n, entry, int64(len(plan)))
		if result == node.ErrorNode {
			return node.HaltNode
		}
		if ev.Signal().Unwinding() {
			return node.HaltNode
		}
	}
	return node.NewNumber(1)
}

// bCopyLib implements (copylib ...): like copyfiles but source is always a
// single file, installed only if strictly newer (by file-scanned
// version), or the user confirms otherwise at expert level. A missing
// source version aborts; a missing destination version overwrites.
func bCopyLib(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	source := optStr(ev, n, node.OptSource, "")
	dest := optStr(ev, n, node.OptDest, "")
	if source == "" || dest == "" {
		return ev.Fail(ierrors.ErrMissingOption, n.Pos, "copylib requires source and dest")
	}
	source = ev.Host().ExpandPath(source)
	dest = ev.Host().ExpandPath(dest)
	srcMaj, srcMin, srcOK := ev.Host().ReadVersionFromFile(source)
	if !srcOK {
		return ev.Fail(ierrors.ErrNoVersion, n.Pos, source)
	}
	if dstMaj, dstMin, dstOK := ev.Host().ReadVersionFromFile(dest); dstOK {
		srcVer := srcMaj<<16 | srcMin
		dstVer := dstMaj<<16 | dstMin
		if srcVer <= dstVer {
			lvl, _ := ev.GetNumVar("user-level")
			if lvl < 2 {
				return node.NewNumber(0)
			}
			v, answer := ev.Dialog().Bool("Install older/same version of "+dest+"?", "", false)
			if !handleAnswer(ev, answer) || !v {
				return node.NewNumber(0)
			}
		}
	}
	entry := dialog.CopyEntry{Src: source, Dst: dest}
	ev.Dialog().CopyBegin([]dialog.CopyEntry{entry})
	defer ev.Dialog().CopyEnd()
	return copyOne(ev, n, entry, 1)
}

// bDelete implements (delete FILE [options]).
func bDelete(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	target := ev.Host().ExpandPath(ev.Str(args[0]))
	pattern, err := ev.Host().CompilePattern(path.Base(target))
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrNoItem, target)
	}
	dir := path.Dir(target)
	if !pattern.HasWildcards() {
		if err := removeOne(ev, n, target); err != nil {
			return applyFailure(ev, n, ierrors.ErrDeleteFile, target)
		}
		return node.NewNumber(1)
	}
	entries, err := ev.Host().ReadDir(dir)
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrNoSuchFileOrDir, dir)
	}
	count := 0
	for _, e := range entries {
		if !pattern.Match(e.Name) {
			continue
		}
		full := path.Join(dir, e.Name)
		if err := removeOne(ev, n, full); err != nil {
			if r := applyFailure(ev, n, ierrors.ErrDeleteFile, full); r == node.ErrorNode {
				return r
			}
			continue
		}
		count++
	}
	return node.NewNumber(int64(count))
}

func removeOne(ev node.Evaluator, n *node.Node, target string) error {
	kind, err := ev.Host().Exists(target)
	if err != nil {
		return err
	}
	if kind == host.None {
		return fmt.Errorf("no such file or directory: %s", target)
	}
	if kind == host.Dir {
		if optPresent(n, node.OptAll) {
			if err := ev.Host().RemoveAll(target); err != nil {
				return err
			}
		} else if err := ev.Host().Remove(target); err != nil {
			return err
		}
	} else {
		if err := ev.Host().Remove(target); err != nil {
			return err
		}
	}
	if optPresent(n, node.OptInfos) {
		_ = ev.Host().Remove(target + ".info")
	}
	ev.Log(n.Pos, "delete", "%s", target)
	return nil
}

// bRename implements (rename OLD NEW [(disk)]).
func bRename(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	args := n.Args()
	if len(args) < 2 {
		return node.DangleNode
	}
	oldName, newName := ev.Str(args[0]), ev.Str(args[1])
	var err error
	if optPresent(n, node.OptDisk) {
		err = ev.Host().RelabelVolume(oldName, newName)
	} else {
		oldName = ev.Host().ExpandPath(oldName)
		newName = ev.Host().ExpandPath(newName)
		err = ev.Host().Rename(oldName, newName)
	}
	if err != nil {
		return applyFailure(ev, n, ierrors.ErrRenameFile, oldName)
	}
	ev.Log(n.Pos, "rename", "%s -> %s", oldName, newName)
	return node.NewNumber(1)
}

// bMakeDir implements (makedir PATH [(infos)]): create one path segment
// at a time, outermost first, so existing parents are a no-op.
func bMakeDir(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	target := ev.Host().ExpandPath(ev.Str(args[0]))
	segs := strings.Split(strings.Trim(target, "/"), "/")
	cur := ""
	for _, s := range segs {
		if s == "" {
			continue
		}
		cur = path.Join(cur, s)
		if kind, _ := ev.Host().Exists(cur); kind == host.Dir {
			continue
		}
		if err := ev.Host().MakeDir(cur); err != nil {
			return applyFailure(ev, n, ierrors.ErrWriteDir, cur)
		}
	}
	if optPresent(n, node.OptInfos) {
		_ = ev.Host().IconWrite(target, ev.Host().IconDefault(host.IconDrawer))
	}
	ev.Log(n.Pos, "makedir", "%s", target)
	return node.NewNumber(1)
}

// bMakeAssign implements (makeassign NAME [TARGET] [(safe)]).
func bMakeAssign(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	name := ev.Str(args[0])
	unassign := len(args) < 2
	target := ""
	if !unassign {
		target = ev.Str(args[1])
	}
	if err := ev.Host().MakeAssign(name, target, unassign); err != nil {
		return applyFailure(ev, n, ierrors.ErrInvalidAssign, name)
	}
	ev.Log(n.Pos, "makeassign", "%s -> %s", name, target)
	return node.NewNumber(1)
}

// amigaFlagBits maps protect() FLAGS letters to their hsparwed bit (the
// low four bits are inverted per Amiga convention, handled by Host).
var amigaFlagBits = map[byte]uint32{
	'd': 1 << 0, 'e': 1 << 1, 'w': 1 << 2, 'r': 1 << 3,
	'a': 1 << 4, 'p': 1 << 5, 's': 1 << 6, 'h': 1 << 7,
}

func parseProtectFlags(cur uint32, flags string) uint32 {
	isDigits := true
	for i := 0; i < len(flags); i++ {
		if flags[i] < '0' || flags[i] > '9' {
			isDigits = false
			break
		}
	}
	if isDigits && flags != "" {
		var v uint32
		for i := 0; i < len(flags); i++ {
			v = v*10 + uint32(flags[i]-'0')
		}
		return v
	}
	mask := cur
	set := true
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		switch c {
		case '+':
			set = true
		case '-':
			set = false
		default:
			bit, ok := amigaFlagBits[c]
			if !ok {
				continue
			}
			if set {
				mask |= bit
			} else {
				mask &^= bit
			}
		}
	}
	return mask
}

// bProtect implements (protect FILE [FLAGS|MASK] [(override M)] [(safe)]).
func bProtect(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	if len(args) == 0 {
		return node.NewNumber(0)
	}
	target := ev.Host().ExpandPath(ev.Str(args[0]))
	cur, err := ev.Host().GetPerm(target)
	if err != nil {
		return ev.Fail(ierrors.ErrGetPerm, n.Pos, target)
	}
	if len(args) < 2 && !optPresent(n, node.OptOverride) {
		return node.NewNumber(int64(cur))
	}
	if !gate(ev, n) {
		return node.NewNumber(int64(cur))
	}
	mask := cur
	if len(args) >= 2 {
		mask = parseProtectFlags(cur, ev.Str(args[1]))
	}
	if opt, ok := n.Option(node.OptOverride); ok && len(opt.Children) > 0 {
		mask = uint32(ev.Num(opt.Children[0]))
	}
	if err := ev.Host().SetPerm(target, mask); err != nil {
		return applyFailure(ev, n, ierrors.ErrSetPerm, target)
	}
	ev.Log(n.Pos, "protect", "%s %#x", target, mask)
	return node.NewNumber(int64(mask))
}

const startupBeginMarker = ";BEGIN "
const startupEndMarker = ";END "

// bStartup implements (startup APP (command ...) (prompt ...) (help ...)):
// ensure cmdline sits between ;BEGIN APP/;END APP markers in
// @user-startup, written atomically via a sibling temp file and rename.
func bStartup(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	args := n.Args()
	if len(args) == 0 {
		return node.DangleNode
	}
	app := ev.Str(args[0])
	cmdline := optStr(ev, n, node.OptCommand, "")
	startupFile, _ := ev.GetStrVar("user-startup")
	startupFile = ev.Host().ExpandPath(startupFile)

	begin := startupBeginMarker + app
	end := startupEndMarker + app

	existing := ""
	if data, err := ev.Host().ReadFile(startupFile); err == nil {
		existing = string(data)
	}
	lines := strings.Split(existing, "\n")
	var out []string
	inBlock := false
	replaced := false
	for _, line := range lines {
		switch {
		case line == begin:
			inBlock = true
			out = append(out, begin, cmdline, end)
			replaced = true
		case line == end:
			inBlock = false
		case inBlock:
			// drop old block contents
		default:
			out = append(out, line)
		}
	}
	if !replaced {
		out = append(out, begin, cmdline, end)
	}
	content := strings.Join(out, "\n")
	tmp := startupFile + ".new"
	if err := writeWholeFile(ev, tmp, content); err != nil {
		return applyFailure(ev, n, ierrors.ErrWriteFile, tmp)
	}
	if err := ev.Host().Rename(tmp, startupFile); err != nil {
		return applyFailure(ev, n, ierrors.ErrRenameFile, startupFile)
	}
	ev.Log(n.Pos, "startup", "%s: %s", app, cmdline)
	return node.NewNumber(1)
}

func writeWholeFile(ev node.Evaluator, path string, content string) error {
	return ev.Host().WriteFile(path, []byte(content))
}

// bTextFile implements (textfile (dest ...) (append S)* (include F)* ...):
// assemble a file from inline strings and included file contents, in
// option order.
func bTextFile(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	dest := optStr(ev, n, node.OptDest, "")
	if dest == "" {
		return ev.Fail(ierrors.ErrMissingOption, n.Pos, "textfile requires dest")
	}
	dest = ev.Host().ExpandPath(dest)
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Kind != node.Option {
			continue
		}
		switch c.OptTag() {
		case node.OptAppend:
			for _, part := range c.Children {
				sb.WriteString(ev.Str(part))
			}
		case node.OptInclude:
			for _, part := range c.Children {
				incPath := ev.Host().ExpandPath(ev.Str(part))
				data, err := ev.Host().ReadFile(incPath)
				if err != nil {
					return applyFailure(ev, n, ierrors.ErrReadFile, incPath)
				}
				sb.Write(data)
			}
		}
	}
	if err := writeWholeFile(ev, dest, sb.String()); err != nil {
		return applyFailure(ev, n, ierrors.ErrWriteFile, dest)
	}
	ev.Log(n.Pos, "textfile", "%s", dest)
	return node.NewNumber(1)
}

// bToolType implements (tooltype (dest ...) (settooltype K [V])
// (setdefaulttool ...) (setstack N) (setposition X Y)|(noposition) ...):
// mutate or delete tooltypes, default tool, stack size, and icon position.
func bToolType(ev node.Evaluator, n *node.Node) *node.Node {
	if !gate(ev, n) {
		return node.NewNumber(1)
	}
	dest := optStr(ev, n, node.OptDest, "")
	if dest == "" {
		return ev.Fail(ierrors.ErrMissingOption, n.Pos, "tooltype requires dest")
	}
	dest = ev.Host().ExpandPath(dest)
	icon, err := ev.Host().IconRead(dest)
	if err != nil {
		icon = ev.Host().IconDefault(host.IconTool)
	}
	for _, c := range n.Children {
		if c.Kind != node.Option {
			continue
		}
		switch c.OptTag() {
		case node.OptSetToolType:
			if len(c.Children) == 0 {
				continue
			}
			key := ev.Str(c.Children[0])
			if len(c.Children) < 2 {
				icon.DeleteTooltype(key)
				continue
			}
			icon.SetTooltype(key, ev.Str(c.Children[1]))
		case node.OptSetDefaultTool:
			if len(c.Children) > 0 {
				icon.DefaultTool = ev.Str(c.Children[0])
			}
		case node.OptSetStack:
			if len(c.Children) > 0 {
				icon.Stack = int(ev.Num(c.Children[0]))
			}
		case node.OptSetPosition:
			if len(c.Children) > 1 {
				icon.PosX = int(ev.Num(c.Children[0]))
				icon.PosY = int(ev.Num(c.Children[1]))
				icon.NoPosition = false
			}
		case node.OptNoposition:
			icon.NoPosition = true
		}
	}
	if err := ev.Host().IconWrite(dest, icon); err != nil {
		return applyFailure(ev, n, ierrors.ErrWriteFile, dest)
	}
	ev.Log(n.Pos, "tooltype", "%s", dest)
	return node.NewNumber(1)
}
