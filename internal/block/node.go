// Package block implements BlockNode and the document spine that links
// leaf/composite blocks together, per spec.md §3-4.4 and §4.5.
package block

import (
	"strings"

	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/lexpair"
	"github.com/jarredhawkins/blocklocate/internal/refparser"
)

// Node is a BlockNode: a contiguous run of lines treated as one unit of
// block-structured syntax. lines, indent, lexDiff and parents are write-once;
// above, below, deleted and the two lazy fields are the only mutable state,
// matching the "immutable-ish" design note in spec.md §9.
type Node struct {
	lines      []*codeline.Line
	startIndex uint32
	endIndex   uint32
	indent     uint32
	lexDiff    lexpair.Diff
	parents    []*Node
	above      *Node
	below      *Node
	deleted    bool

	nextIndentComputed bool
	nextIndentValue    uint32

	validComputed bool
	validValue    bool

	// seq breaks priority ties: earlier-inserted nodes sort first among
	// otherwise-equal (nextIndent, indent, endIndex) tuples (spec.md §5,
	// §9 "pick a deterministic tiebreak").
	seq uint64
}

// NewLeaf builds a one-line leaf BlockNode. Leaves have no parents.
func NewLeaf(line *codeline.Line) *Node {
	return &Node{
		lines:      []*codeline.Line{line},
		startIndex: line.Index(),
		endIndex:   line.Index(),
		indent:     line.Indent(),
		lexDiff:    line.LexDiff(),
	}
}

// IsLeaf reports whether this node has no parents (either an original
// one-line leaf, or a composite that unwrapped down to a single leaf).
func (n *Node) IsLeaf() bool { return len(n.parents) == 0 }

// StartIndex returns the zero-based index of the node's first line.
func (n *Node) StartIndex() uint32 { return n.startIndex }

// EndIndex returns the zero-based index of the node's last line.
func (n *Node) EndIndex() uint32 { return n.endIndex }

// Indent returns the node's stable minimum-indent, fixed at construction.
func (n *Node) Indent() uint32 { return n.indent }

// LexDiff returns the node's aggregate lexical pair balance.
func (n *Node) LexDiff() lexpair.Diff { return n.lexDiff }

// Leaning is shorthand for LexDiff().Leaning().
func (n *Node) Leaning() lexpair.Leaning { return n.lexDiff.Leaning() }

// Parents returns the live nodes this one was composed from (empty for a
// leaf), skipping any that have since been absorbed into a larger composite.
// The root sentinel accumulates one entry per matured top-level block as the
// IndentTree driver runs (AddParent), but an earlier top-level block can
// later be swallowed into a bigger one when its neighbour matures too --
// without this filter the root would report both the stale, deleted block
// and the composite that superseded it.
func (n *Node) Parents() []*Node {
	var out []*Node
	for _, p := range n.parents {
		if !p.deleted {
			out = append(out, p)
		}
	}
	return out
}

// Above returns the node immediately above this one on the document spine.
func (n *Node) Above() *Node { return n.above }

// Below returns the node immediately below this one on the document spine.
func (n *Node) Below() *Node { return n.below }

// Deleted reports whether this node has been superseded by a composite.
func (n *Node) Deleted() bool { return n.deleted }

// MarkDeleted tombstones the node. Used by the frontier when an engulfed
// block is evicted from the interval tree (spec.md §4.8).
func (n *Node) MarkDeleted() { n.deleted = true }

// AddParent appends child to n.parents directly, bypassing FromBlocks. Used
// only for the root sentinel, which accumulates maximal top-level blocks as
// the IndentTree driver finds them (spec.md §4.7) rather than being built by
// composition itself.
func (n *Node) AddParent(child *Node) { n.parents = append(n.parents, child) }

// Lines returns the node's member lines in source order.
func (n *Node) Lines() []*codeline.Line { return n.lines }

// Text joins the node's original line text back into one string.
func (n *Node) Text() string {
	var b strings.Builder
	for _, l := range n.lines {
		b.WriteString(l.Original())
		b.WriteByte('\n')
	}
	return b.String()
}

// Valid memoizes a call to the external reference parser on this node's
// joined text. The result is cached forever once computed (spec.md §9,
// "Lazy memoization"); inputs are frozen so that's safe.
func (n *Node) Valid(parser refparser.Parser) (bool, error) {
	if n.validComputed {
		return n.validValue, nil
	}
	ok, err := parser.Valid(n.Text())
	if err != nil {
		return false, err
	}
	n.validComputed = true
	n.validValue = ok
	return ok, nil
}

// ExpandAbove implements the expand_above? predicate from spec.md §4.4.
func (n *Node) ExpandAbove(withIndent uint32) bool {
	a := n.above
	if a == nil {
		return false
	}
	if a.IsLeaf() && a.Leaning() == lexpair.Right {
		return false
	}
	if n.IsLeaf() {
		switch {
		case n.Leaning() == lexpair.Left:
			return false
		case n.Leaning() == lexpair.Both && a.Leaning() == lexpair.Left:
			return true
		}
	}
	if a.Leaning() == lexpair.Left || a.Leaning() == lexpair.Both {
		return a.indent >= withIndent
	}
	return true
}

// ExpandBelow implements the expand_below? predicate: the mirror image of
// ExpandAbove (left<->right, above<->below swapped).
func (n *Node) ExpandBelow(withIndent uint32) bool {
	b := n.below
	if b == nil {
		return false
	}
	if b.IsLeaf() && b.Leaning() == lexpair.Left {
		return false
	}
	if n.IsLeaf() {
		switch {
		case n.Leaning() == lexpair.Right:
			return false
		case n.Leaning() == lexpair.Both && b.Leaning() == lexpair.Right:
			return true
		}
	}
	if b.Leaning() == lexpair.Right || b.Leaning() == lexpair.Both {
		return b.indent >= withIndent
	}
	return true
}

// NextIndent computes (and memoizes) the indent tier at which this node
// would next capture a neighbour, per spec.md §4.4.
func (n *Node) NextIndent() uint32 {
	if n.nextIndentComputed {
		return n.nextIndentValue
	}

	withIndent := n.indent
	var result uint32

	if n.ExpandAbove(withIndent) || n.ExpandBelow(withIndent) {
		result = n.indent
	} else {
		switch {
		case n.above != nil && n.below != nil:
			result = minU32(n.above.indent, n.below.indent)
		case n.above != nil:
			result = n.above.indent
		case n.below != nil:
			result = n.below.indent
		default:
			result = n.indent
		}
		if result > n.indent {
			result = n.indent
		}
	}

	n.nextIndentComputed = true
	n.nextIndentValue = result
	return result
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// allLinesEmpty reports whether every line n spans is blank/hidden. Blank
// lines report indent 0 (spec.md §3, P1) but must not pull a composite's
// minimum indent down to 0 just because it happens to include one.
func allLinesEmpty(n *Node) bool {
	for _, l := range n.lines {
		if !l.Empty() {
			return false
		}
	}
	return true
}

// FromBlocks composes a new node from parents, per the from_blocks contract
// in spec.md §4.4: it unwraps single-composite-child calls, aggregates
// indent/lexDiff/lines in order, marks every (post-unwrap) parent deleted,
// and defaults above/below from the first/last parent.
func FromBlocks(parents []*Node) *Node {
	for len(parents) == 1 && len(parents[0].parents) > 0 {
		parents = parents[0].parents
	}

	composite := &Node{
		startIndex: parents[0].startIndex,
		endIndex:   parents[len(parents)-1].endIndex,
		above:      parents[0].above,
		below:      parents[len(parents)-1].below,
	}

	var minIndent uint32
	haveIndent := false
	diff := lexpair.Empty()
	var lines []*codeline.Line
	for i, p := range parents {
		if !allLinesEmpty(p) && (!haveIndent || p.indent < minIndent) {
			minIndent = p.indent
			haveIndent = true
		}
		if i == 0 {
			diff = p.lexDiff
		} else {
			_, _ = diff.Concat(p.lexDiff)
		}
		lines = append(lines, p.lines...)
	}
	composite.indent = minIndent
	composite.lexDiff = diff
	composite.lines = lines

	for _, p := range parents {
		p.deleted = true
	}

	if len(parents) > 1 {
		composite.parents = append([]*Node{}, parents...)
	}

	return composite
}
