package builtins

import "github.com/amiga-tools/aminstall/node"

// Option values are carried as Children of the Option node itself (spec
// §4.4: "option is lazy", so these are only resolved when a specific
// builtin actually asks for them, not eagerly for the whole option list).

func optPresent(n *node.Node, tag node.OptTag) bool {
	_, ok := n.Option(tag)
	return ok
}

func optStr(ev node.Evaluator, n *node.Node, tag node.OptTag, def string) string {
	opt, ok := n.Option(tag)
	if !ok || len(opt.Children) == 0 {
		return def
	}
	return ev.Str(opt.Children[0])
}

func optNum(ev node.Evaluator, n *node.Node, tag node.OptTag, def int64) int64 {
	opt, ok := n.Option(tag)
	if !ok || len(opt.Children) == 0 {
		return def
	}
	return ev.Num(opt.Children[0])
}

func optStrs(ev node.Evaluator, n *node.Node, tag node.OptTag) []string {
	opt, ok := n.Option(tag)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(opt.Children))
	for _, c := range opt.Children {
		out = append(out, ev.Str(c))
	}
	return out
}

func optRange(ev node.Evaluator, n *node.Node, def int, defHi int) (lo, hi int) {
	opt, ok := n.Option(node.OptRange)
	if !ok || len(opt.Children) < 2 {
		return def, defHi
	}
	return int(ev.Num(opt.Children[0])), int(ev.Num(opt.Children[1]))
}
