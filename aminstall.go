package aminstall

import "fmt"

// Pos is a source line number, 1-based. The parser (out of scope for this
// module, see doc.go) stamps every node with one; the evaluator carries it
// along into error reports.
type Pos int

// NoPos marks a node with no known source position (built programmatically
// rather than parsed).
const NoPos Pos = 0

func (p Pos) String() string {
	if p == NoPos {
		return "?"
	}
	return fmt.Sprintf("%d", int(p))
}
