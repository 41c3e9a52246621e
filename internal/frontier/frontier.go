// Package frontier implements CodeFrontier: the set of candidate "suspect"
// blocks under active investigation (spec.md §4.8).
package frontier

import (
	"sort"

	"github.com/jarredhawkins/blocklocate/internal/block"
	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/interval"
	"github.com/jarredhawkins/blocklocate/internal/refparser"
	"github.com/jarredhawkins/blocklocate/internal/selector"
)

// maxDetectSubsetSize bounds the combinatorial search in DetectInvalidBlocks
// for production use; DetectInvalidBlocksExhaustive runs the same search
// without the cap (spec.md §9).
const maxDetectSubsetSize = 6

// Frontier holds candidate suspect blocks, backed by an insertion-sorted
// vector (by indent then start) and an interval tree keyed on each block's
// line range, per spec.md §4.8.
type Frontier struct {
	parser        refparser.Parser
	originalLines []string

	sorted []*block.Node
	tree   *interval.Tree[*block.Node]

	checkNext bool
}

// New builds an empty frontier over the given document lines, which supply
// the original text ValidWithout reconstructs from.
func New(lines []*codeline.Line, parser refparser.Parser) *Frontier {
	originals := make([]string, len(lines))
	for i, l := range lines {
		originals[i] = stripTrailingNewline(l.Original())
	}
	return &Frontier{
		parser:        parser,
		originalLines: originals,
		tree:          interval.NewRangeOrdered[*block.Node](),
	}
}

func stripTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}

// Push adds block to the frontier, evicting any smaller block its range
// engulfs, per spec.md §4.8.
func (f *Frontier) Push(b *block.Node) error {
	f.registerIndentBlock(b)

	key := interval.Key{Start: b.StartIndex(), End: b.EndIndex()}

	// Search for engulfed (or exact-duplicate-range) entries before b goes
	// into the tree, not after: Tree.Push overwrites any existing entry at
	// an identical key rather than keeping both, so searching post-insert
	// can never observe a distinct block sharing b's exact range -- it's
	// already gone, silently, without ever being marked deleted.
	contained := f.tree.SearchContainsKey(key)
	for _, r := range contained {
		r.Value.MarkDeleted()
		f.tree.Delete(r.Key)
	}

	f.tree.Push(key, b)

	f.pruneDeletedTail()

	valid, err := b.Valid(f.parser)
	if err != nil {
		return err
	}
	if !valid {
		f.checkNext = true
	}

	f.insertSorted(b)
	return nil
}

// registerIndentBlock marks every line the block spans as no longer under
// consideration (spec.md §3, CodeLine.visible).
func (f *Frontier) registerIndentBlock(b *block.Node) {
	for _, l := range b.Lines() {
		l.SetVisible(false)
	}
}

func (f *Frontier) insertSorted(b *block.Node) {
	idx := sort.Search(len(f.sorted), func(i int) bool {
		return less(b, f.sorted[i])
	})
	f.sorted = append(f.sorted, nil)
	copy(f.sorted[idx+1:], f.sorted[idx:])
	f.sorted[idx] = b
}

func less(a, b *block.Node) bool {
	if a.Indent() != b.Indent() {
		return a.Indent() < b.Indent()
	}
	return a.StartIndex() < b.StartIndex()
}

// pruneDeletedTail drops deleted entries off the end of the sorted vector,
// the cheap lazy-cleanup spec.md §4.8 calls for. Deleted entries elsewhere
// in the vector are simply filtered out wherever the frontier iterates live
// blocks; this keeps the vector from growing without bound on the common
// path where the newest, largest block is appended last.
func (f *Frontier) pruneDeletedTail() {
	for len(f.sorted) > 0 && f.sorted[len(f.sorted)-1].Deleted() {
		f.sorted = f.sorted[:len(f.sorted)-1]
	}
}

// Live returns every non-deleted block currently in the frontier, in
// (indent, start) order.
func (f *Frontier) Live() []*block.Node {
	var out []*block.Node
	for _, b := range f.sorted {
		if !b.Deleted() {
			out = append(out, b)
		}
	}
	return out
}

// HoldsAllSyntaxErrors reports whether removing every line covered by a live
// frontier block yields a parser-valid document. The can_skip_check
// optimization from spec.md §4.8 short-circuits to false when no invalid
// block has been added since the last call.
func (f *Frontier) HoldsAllSyntaxErrors() (bool, error) {
	if !f.checkNext {
		return false, nil
	}
	f.checkNext = false

	without := make(map[uint32]bool)
	for _, b := range f.Live() {
		for _, l := range b.Lines() {
			without[l.Index()] = true
		}
	}
	return refparser.ValidWithout(f.parser, without, f.originalLines)
}

// InvalidBlocks returns the live frontier blocks that fail to parse on
// their own, the candidate set DetectInvalidBlocks searches over.
func (f *Frontier) InvalidBlocks() ([]*block.Node, error) {
	var out []*block.Node
	for _, b := range f.Live() {
		ok, err := b.Valid(f.parser)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// DetectInvalidBlocks is the InvalidBlockSelector post-pass: the smallest
// subset of frontier blocks whose removal validates the document, capped at
// maxDetectSubsetSize for production use (spec.md §4.8, §9).
func (f *Frontier) DetectInvalidBlocks() ([]*block.Node, error) {
	invalid, err := f.InvalidBlocks()
	if err != nil {
		return nil, err
	}
	return f.detectInvalidBlocks(invalid, maxDetectSubsetSize)
}

// DetectInvalidBlocksExhaustive runs the uncapped search; it exists for the
// test oracle referenced in spec.md §9 to cross-validate the capped path.
func (f *Frontier) DetectInvalidBlocksExhaustive() ([]*block.Node, error) {
	invalid, err := f.InvalidBlocks()
	if err != nil {
		return nil, err
	}
	return f.detectInvalidBlocks(invalid, 0)
}

func (f *Frontier) detectInvalidBlocks(invalid []*block.Node, cap int) ([]*block.Node, error) {
	validates := func(subset []*block.Node) (bool, error) {
		without := make(map[uint32]bool)
		for _, b := range subset {
			for _, l := range b.Lines() {
				without[l.Index()] = true
			}
		}
		return refparser.ValidWithout(f.parser, without, f.originalLines)
	}
	return selector.Select(invalid, validates, cap)
}
