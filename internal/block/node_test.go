package block

import (
	"testing"

	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/lexpair"
)

// noopLexer never opens or closes a pair; these tests only care about how
// FromBlocks aggregates indent, not lexical balance.
type noopLexer struct{}

func (noopLexer) Tokenize(string) ([]lexpair.Event, error) { return nil, nil }

// TestFromBlocksIgnoresBlankLinesWhenComputingMinIndent: a blank leaf always
// reports indent 0 (spec.md §3, P1), but it must not drag a composite's
// minimum indent down to 0 just because one of its members happens to be
// blank -- otherwise a genuinely deep block gets mistaken for a top-level one.
func TestFromBlocksIgnoresBlankLinesWhenComputingMinIndent(t *testing.T) {
	lines, err := codeline.Build("  def foo\n", noopLexer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lines[1].Empty() {
		t.Fatalf("expected second line to be blank")
	}

	composite := FromBlocks([]*Node{NewLeaf(lines[0]), NewLeaf(lines[1])})
	if composite.Indent() != 2 {
		t.Errorf("expected composite indent 2, got %d", composite.Indent())
	}
}

// TestFromBlocksAllBlankMembersFallsBackToZero covers the degenerate case
// where every member line is blank: there's no non-blank indent to report,
// so the composite falls back to 0 rather than leaving it uninitialized.
func TestFromBlocksAllBlankMembersFallsBackToZero(t *testing.T) {
	lines, err := codeline.Build("\n", noopLexer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lines[0].Empty() || !lines[1].Empty() {
		t.Fatalf("expected both lines to be blank")
	}

	composite := FromBlocks([]*Node{NewLeaf(lines[0]), NewLeaf(lines[1])})
	if composite.Indent() != 0 {
		t.Errorf("expected composite indent 0, got %d", composite.Indent())
	}
}
