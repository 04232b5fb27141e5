package builtins

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/amiga-tools/aminstall/dialog"
	"github.com/amiga-tools/aminstall/ierrors"
	"github.com/amiga-tools/aminstall/node"
)

// sanitizeChoice strips the leading "invisible" escape sequence Installer
// choice strings may carry (spec §4.4: "a leading \x1b[2p escape sequence
// is stripped"); the string is kept in the list (still numbered), just
// with the marker removed, since hiding it entirely is the dialog
// backend's rendering concern.
func sanitizeChoice(s string) string {
	return strings.TrimPrefix(s, "\x1b[2p")
}

func sanitizeChoices(choices []string) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = sanitizeChoice(c)
	}
	return out
}

// novice reports whether @user-level is 0 ("novice"), the threshold below
// which every Prompts-family builtin bypasses the dialog backend and
// returns its default outright (spec §4.4).
func novice(ev node.Evaluator) bool {
	lvl, _ := ev.GetNumVar("user-level")
	return lvl == 0
}

func handleAnswer(ev node.Evaluator, a dialog.Answer) bool {
	switch a {
	case dialog.Abort, dialog.Back:
		ev.Halt(ierrors.Halt, "user cancelled the prompt")
		return false
	default:
		return true
	}
}

func bAskBool(ev node.Evaluator, n *node.Node) *node.Node {
	def := optNum(ev, n, node.OptDefault, 0) != 0
	if novice(ev) {
		return node.NewNumber(boolNum(def))
	}
	v, answer := ev.Dialog().Bool(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), def)
	if !handleAnswer(ev, answer) {
		return node.NewNumber(boolNum(def))
	}
	return node.NewNumber(boolNum(v))
}

func bAskChoice(ev node.Evaluator, n *node.Node) *node.Node {
	choices := sanitizeChoices(optStrs(ev, n, node.OptChoices))
	def := int(optNum(ev, n, node.OptDefault, 0))
	if novice(ev) {
		return node.NewNumber(int64(def))
	}
	v, answer := ev.Dialog().Choice(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), choices, def)
	if !handleAnswer(ev, answer) {
		return node.NewNumber(int64(def))
	}
	return node.NewNumber(int64(v))
}

// indexSet turns bitmask bits 0..n-1 into a treeset.Set of selected
// indices, and back: (askoptions) selections have no inherent order (the
// user may tick boxes in any sequence), unlike the LIFO (trap) mask stack
// in eval/errors.go, so an ordered-set container is the right shape here.
func indexSetFromMask(mask int64, n int) *treeset.Set {
	s := treeset.NewWith(utils.IntComparator)
	for i := 0; i < n; i++ {
		if mask&(1<<uint(i)) != 0 {
			s.Add(i)
		}
	}
	return s
}

func indexSetToBools(s *treeset.Set, n int) []bool {
	out := make([]bool, n)
	for _, v := range s.Values() {
		i := v.(int)
		if i >= 0 && i < n {
			out[i] = true
		}
	}
	return out
}

func maskFromBools(selected []bool) int64 {
	s := treeset.NewWith(utils.IntComparator)
	for i, on := range selected {
		if on {
			s.Add(i)
		}
	}
	var mask int64
	for _, v := range s.Values() {
		mask |= 1 << uint(v.(int))
	}
	return mask
}

// bAskOptions implements (askoptions ...): returns a 32-bit selection
// bitmask over the `choices` list.
func bAskOptions(ev node.Evaluator, n *node.Node) *node.Node {
	choices := sanitizeChoices(optStrs(ev, n, node.OptChoices))
	defMask := optNum(ev, n, node.OptDefault, 0)
	initial := indexSetToBools(indexSetFromMask(defMask, len(choices)), len(choices))
	if novice(ev) {
		return node.NewNumber(defMask)
	}
	selected, answer := ev.Dialog().Options(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), choices, initial)
	if !handleAnswer(ev, answer) {
		return node.NewNumber(defMask)
	}
	return node.NewNumber(maskFromBools(selected))
}

func bAskNumber(ev node.Evaluator, n *node.Node) *node.Node {
	def := int(optNum(ev, n, node.OptDefault, 0))
	lo, hi := optRange(ev, n, 0, 0)
	if novice(ev) {
		return node.NewNumber(int64(def))
	}
	v, answer := ev.Dialog().Number(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), lo, hi, def)
	if !handleAnswer(ev, answer) {
		return node.NewNumber(int64(def))
	}
	return node.NewNumber(int64(v))
}

func bAskString(ev node.Evaluator, n *node.Node) *node.Node {
	def := optStr(ev, n, node.OptDefault, "")
	if novice(ev) {
		return node.NewString(def)
	}
	v, answer := ev.Dialog().String(optStr(ev, n, node.OptPrompt, ""), optStr(ev, n, node.OptHelp, ""), def)
	if !handleAnswer(ev, answer) {
		return node.NewString(def)
	}
	return node.NewString(v)
}

func bAskFile(ev node.Evaluator, n *node.Node) *node.Node {
	def := optStr(ev, n, node.OptDefault, "")
	pattern := optStr(ev, n, node.OptPattern, "")
	if novice(ev) {
		return node.NewString(def)
	}
	v, answer := ev.Dialog().AskFile(optStr(ev, n, node.OptPrompt, ""), def, pattern, !optPresent(n, node.OptNewpath))
	if !handleAnswer(ev, answer) {
		return node.NewString(def)
	}
	return node.NewString(v)
}

func bAskDir(ev node.Evaluator, n *node.Node) *node.Node {
	def := optStr(ev, n, node.OptDefault, "")
	if novice(ev) {
		return node.NewString(def)
	}
	v, answer := ev.Dialog().AskDir(optStr(ev, n, node.OptPrompt, ""), def, optPresent(n, node.OptNewpath))
	if !handleAnswer(ev, answer) {
		return node.NewString(def)
	}
	return node.NewString(v)
}

// bAskDisk implements (askdisk ...): selecting a volume is the same
// dialog shape as (askdir), scoped to top-level device names rather than
// paths; there is no separate Dialog method since the distinction is
// purely a prompting convention, not a different UI primitive.
func bAskDisk(ev node.Evaluator, n *node.Node) *node.Node {
	return bAskDir(ev, n)
}
