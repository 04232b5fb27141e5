package builtins

import (
	"strconv"
	"strings"

	"github.com/amiga-tools/aminstall/node"
)

func concatArgs(ev node.Evaluator, n *node.Node) string {
	var sb strings.Builder
	for _, a := range n.Args() {
		sb.WriteString(ev.Str(a))
	}
	return sb.String()
}

// bMessage implements (message ...): concatenates its children and shows
// them via the dialog backend. Dialog.Message is a one-way info display
// (no Proceed/Abort return) — the richer "confirm with threshold, skip or
// HALT on user choice" flow spec §4.4 describes under "Common gating
// logic" is implemented once, in gate(), and shared by the file-operation
// builtins that need it (copyfiles, delete, makedir, ...); bare (message)
// stays advisory, matching the Dialog interface's Message shape. `all`
// forces display even at novice level; `back` (naming a subtree to run on
// a back-button) has no effect here since Dialog.Message never offers one.
func bMessage(ev node.Evaluator, n *node.Node) *node.Node {
	if novice(ev) && !optPresent(n, node.OptAll) {
		return node.DangleNode
	}
	ev.Dialog().Message(concatArgs(ev, n))
	return node.DangleNode
}

// bWelcome implements (welcome ...): the one-time start-of-script banner.
// @user-level/@pretend/@log are expected to already be seeded by the host
// (CLI flags, ToolTypes) per spec §6's "Startup variables"; this simply
// surfaces the banner once evaluated.
func bWelcome(ev node.Evaluator, n *node.Node) *node.Node {
	appName, _ := ev.GetStrVar("app-name")
	ver, _ := ev.GetNumVar("installer-version")
	ev.Dialog().Welcome(appName, strconv.FormatInt(ver, 10))
	return node.DangleNode
}

func bWorking(ev node.Evaluator, n *node.Node) *node.Node {
	ev.Dialog().Working(concatArgs(ev, n))
	return node.DangleNode
}

// bComplete implements (complete N): update progress 0-100. Dialog has no
// dedicated numeric-progress method (it reports copy-transfer progress via
// CopySetCur instead), so this narrates the percentage through Working,
// the closest fit in the interface.
func bComplete(ev node.Evaluator, n *node.Node) *node.Node {
	args := n.Args()
	pct := int64(0)
	if len(args) > 0 {
		pct = ev.Num(args[0])
	}
	ev.Dialog().Working(strconv.FormatInt(pct, 10) + "%")
	return node.NewNumber(pct)
}

// bUser implements (user LEVEL): override @user-level, return the
// previous value.
func bUser(ev node.Evaluator, n *node.Node) *node.Node {
	prev, _ := ev.GetNumVar("user-level")
	if args := n.Args(); len(args) > 0 {
		ev.SetNumVar("user-level", ev.Num(args[0]))
	}
	return node.NewNumber(prev)
}

// bDebug implements (debug ...): write to the host's structured log
// rather than a raw stdout print, reusing the same tracer every other
// package in this module uses.
func bDebug(ev node.Evaluator, n *node.Node) *node.Node {
	tracer().Infof("%s", concatArgs(ev, n))
	return node.DangleNode
}

// bTranscript implements (transcript s...): append to the log file if
// @log is enabled.
func bTranscript(ev node.Evaluator, n *node.Node) *node.Node {
	text := concatArgs(ev, n)
	ev.Log(n.Pos, "transcript", "%s", text)
	return node.DangleNode
}
