package host

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// pattern compiles Amiga-style wildcards (see original_source/src/file.c,
// ParsePattern/MatchPattern) into a small node program and matches names
// against it. Supported syntax, per spec §4.4/§6:
//
//	?       any single character
//	#?      any run of characters (classic Amiga "glob all")
//	*       same as #? (common shell alias accepted by the real Installer)
//	[abc]   any one of the listed characters
//	[a-z]   a range within a character class
//	a|b     alternation between sub-patterns a and b
//	~a      negation: matches iff a does not match
//
// A pattern containing none of these is a plain literal; HasWildcards
// reports false for those so callers (builtins' delete) can fall
// back to a straight string-equality fast path as spec §4.4 requires.
type patAtomKind int

const (
	atomLiteral patAtomKind = iota
	atomAny                 // ?
	atomAnyRun              // #? or *
	atomClass               // [...]
)

type patAtom struct {
	kind  patAtomKind
	lit   byte
	class []classRange
	neg   bool // [^...]
}

type classRange struct{ lo, hi byte }

// CompilePattern implements Host.CompilePattern for both Posix and Mem.
func CompilePattern(pat string) (Pattern, error) {
	if pat == "" {
		return &multiPattern{raw: pat}, nil
	}
	negate := false
	body := pat
	if strings.HasPrefix(body, "~") {
		negate = true
		body = body[1:]
	}
	alts := strings.Split(body, "|")
	wildcards := negate || len(alts) > 1
	var compiled [][]patAtom
	for _, alt := range alts {
		atoms, hasWild, err := compileAlt(alt)
		if err != nil {
			return nil, err
		}
		wildcards = wildcards || hasWild
		compiled = append(compiled, atoms)
	}
	return &multiPattern{raw: pat, negate: negate, alts: compiled, wildcards: wildcards}, nil
}

type multiPattern struct {
	raw       string
	negate    bool
	alts      [][]patAtom
	wildcards bool
}

func (p *multiPattern) String() string     { return p.raw }
func (p *multiPattern) HasWildcards() bool { return p.wildcards }

func (p *multiPattern) Match(name string) bool {
	matched := false
	for _, atoms := range p.alts {
		if matchAtoms(atoms, name) {
			matched = true
			break
		}
	}
	if p.negate {
		return !matched
	}
	return matched
}

func compileAlt(alt string) ([]patAtom, bool, error) {
	var atoms []patAtom
	hasWild := false
	for i := 0; i < len(alt); i++ {
		c := alt[i]
		switch {
		case c == '#' && i+1 < len(alt) && alt[i+1] == '?':
			atoms = append(atoms, patAtom{kind: atomAnyRun})
			hasWild = true
			i++
		case c == '*':
			atoms = append(atoms, patAtom{kind: atomAnyRun})
			hasWild = true
		case c == '?':
			atoms = append(atoms, patAtom{kind: atomAny})
			hasWild = true
		case c == '[':
			end := strings.IndexByte(alt[i:], ']')
			if end < 0 {
				return nil, false, fmt.Errorf("unterminated character class in pattern %q", alt)
			}
			cls, err := compileClass(alt[i+1 : i+end])
			if err != nil {
				return nil, false, err
			}
			atoms = append(atoms, cls)
			hasWild = true
			i += end
		default:
			atoms = append(atoms, patAtom{kind: atomLiteral, lit: c})
		}
	}
	return atoms, hasWild, nil
}

func compileClass(body string) (patAtom, error) {
	neg := false
	if strings.HasPrefix(body, "^") {
		neg = true
		body = body[1:]
	}
	var ranges []classRange
	for i := 0; i < len(body); i++ {
		if i+2 < len(body) && body[i+1] == '-' {
			ranges = append(ranges, classRange{lo: body[i], hi: body[i+2]})
			i += 2
		} else {
			ranges = append(ranges, classRange{lo: body[i], hi: body[i]})
		}
	}
	return patAtom{kind: atomClass, class: ranges, neg: neg}, nil
}

// matchAtoms matches a compiled atom sequence against name via backtracking
// recursion; pattern programs from real Installer scripts are short, so the
// naive approach is fine (no catastrophic-backtracking inputs in practice).
func matchAtoms(atoms []patAtom, name string) bool {
	return matchFrom(atoms, 0, name, 0)
}

func matchFrom(atoms []patAtom, ai int, name string, ni int) bool {
	for ai < len(atoms) {
		a := atoms[ai]
		if a.kind == atomAnyRun {
			// try every possible run length, shortest first
			for n := ni; n <= len(name); n++ {
				if matchFrom(atoms, ai+1, name, n) {
					return true
				}
			}
			return false
		}
		if ni >= len(name) {
			return false
		}
		switch a.kind {
		case atomLiteral:
			if name[ni] != a.lit {
				return false
			}
		case atomAny:
			// matches exactly one character, always
		case atomClass:
			if classMatches(a, name[ni]) == a.neg {
				return false
			}
		}
		ai++
		ni++
	}
	return ni == len(name)
}

func classMatches(a patAtom, c byte) bool {
	for _, r := range a.class {
		if c >= r.lo && c <= r.hi {
			return true
		}
	}
	return false
}

// SortEntries orders directory entries by name, matching the deterministic
// traversal copyfiles/foreach tests rely on (spec §8's "foreach enumeration"
// property); real directory-listing order is host-dependent (spec §5).
func SortEntries(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}
