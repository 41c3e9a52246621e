// Package codeline builds the line-level model the rest of the search
// engine operates over: one immutable-ish Line per logical input line,
// carrying its own lexical pair contribution.
package codeline

import (
	"strings"

	"github.com/jarredhawkins/blocklocate/internal/lexpair"
)

// Lexer tokenizes a single logical source line into lexical pair events.
// Concrete implementations (see internal/rubylex) are external collaborators
// by design -- this package only depends on the contract.
type Lexer interface {
	Tokenize(line string) ([]lexpair.Event, error)
}

// Line is one logical input line. Index, Original, Empty and the raw indent
// are write-once; Visible is the only field that mutates after construction,
// flipped by the frontier once a line is folded into a removed block.
type Line struct {
	index     uint32
	original  string
	empty     bool
	rawIndent uint32
	visible   bool
	lexDiff   lexpair.Diff
}

// Index returns the zero-based line index.
func (l *Line) Index() uint32 { return l.index }

// Original returns the raw line text without its "\n" terminator (Build
// splits on "\n"); a trailing "\r" from CRLF source is kept.
func (l *Line) Original() string { return l.original }

// Empty reports whether the line is visibly blank.
func (l *Line) Empty() bool { return l.empty }

// Visible reports whether the line is still under consideration. It starts
// true and is flipped to false by the frontier once the line is folded into
// a block slated for removal.
func (l *Line) Visible() bool { return l.visible }

// SetVisible updates the visibility flag. Once flipped false it is never
// expected to be revived, but nothing here enforces that beyond convention.
func (l *Line) SetVisible(v bool) { l.visible = v }

// Indent returns the leading-whitespace column count, except blank or
// hidden lines which always report 0 so they never drag down a block's
// minimum-indent computation.
func (l *Line) Indent() uint32 {
	if l.empty || !l.visible {
		return 0
	}
	return l.rawIndent
}

// LexDiff returns this line's own lexical pair contribution.
func (l *Line) LexDiff() lexpair.Diff { return l.lexDiff }

// Less implements the indent_index total order: (indent, index) ascending,
// using the raw (unconditional) indent rather than the visibility-gated one,
// since this ordering is meant to pick the next unvisited line to examine,
// not to compute a block's aggregate indent.
func Less(a, b *Line) bool {
	if a.rawIndent != b.rawIndent {
		return a.rawIndent < b.rawIndent
	}
	return a.index < b.index
}

// Build tokenizes cleaned source text into an ordered sequence of Lines.
// The caller is expected to have already run a SourceCleaner over the text
// so comments, heredocs and multi-line strings appear as blank placeholders.
func Build(source string, lx Lexer) ([]*Line, error) {
	rawLines := strings.Split(source, "\n")
	lines := make([]*Line, 0, len(rawLines))

	for i, raw := range rawLines {
		trimmed := strings.TrimRight(raw, "\r")
		stripped := strings.TrimLeft(trimmed, " \t")
		empty := stripped == ""

		var indent uint32
		if !empty {
			indent = uint32(len(trimmed) - len(stripped))
		}

		diff := lexpair.Empty()
		if !empty {
			events, err := lx.Tokenize(trimmed)
			if err != nil {
				return nil, err
			}
			for _, ev := range events {
				if err := diff.Add(ev); err != nil {
					return nil, err
				}
			}
		}

		lines = append(lines, &Line{
			index:     uint32(i),
			original:  raw,
			empty:     empty,
			rawIndent: indent,
			visible:   true,
			lexDiff:   diff,
		})
	}

	return lines, nil
}
