// Package blocklocate localizes unclosed or mismatched block-structured
// syntax errors in a source file a reference parser rejects. Locate returns
// the minimal set of contiguous line ranges that, once excised, let the
// remainder parse cleanly.
//
// The search engine itself (internal/lexpair, internal/codeline,
// internal/block, internal/interval, internal/frontier, internal/indenttree,
// internal/selector) never imports a concrete Lexer, ReferenceParser or
// SourceCleaner -- those are the external collaborators named below. This
// package wires the engine to default, Ruby-flavored implementations of all
// three when the caller doesn't supply its own.
package blocklocate

import (
	"errors"
	"fmt"

	"github.com/jarredhawkins/blocklocate/internal/balanceparser"
	"github.com/jarredhawkins/blocklocate/internal/block"
	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/frontier"
	"github.com/jarredhawkins/blocklocate/internal/indenttree"
	"github.com/jarredhawkins/blocklocate/internal/lexpair"
	"github.com/jarredhawkins/blocklocate/internal/refparser"
	"github.com/jarredhawkins/blocklocate/internal/rubylex"
	"github.com/jarredhawkins/blocklocate/internal/sourceclean"
)

// Lexer tokenizes one logical source line into lexical pair events. See
// internal/rubylex for the default Ruby-family implementation.
type Lexer = codeline.Lexer

// ReferenceParser answers whether a string of source text is syntactically
// valid. See internal/balanceparser for the default heuristic
// implementation.
type ReferenceParser = refparser.Parser

// SourceCleaner blanks comments and collapses multi-line constructs
// (heredocs, percent literals) to placeholder lines before the engine sees
// them, preserving line numbering. See internal/sourceclean for the default
// implementation.
type SourceCleaner interface {
	Clean(source string) (string, error)
}

// Range is an inclusive, 1-based, source-order line range naming a suspect
// block: the lines Locate would excise to make the remainder parse.
type Range struct {
	Start int
	End   int
}

// Options configures a Locate call. A nil Lexer or Parser defaults to the
// Ruby-flavored implementations in internal/rubylex and
// internal/balanceparser; a nil Cleaner defaults to internal/sourceclean.
// Supply your own to target a different language or a real grammar.
type Options struct {
	Lexer   Lexer
	Parser  ReferenceParser
	Cleaner SourceCleaner
}

// ErrParserUnavailable is returned when Locate is given a reference parser
// that refuses to answer (a crashed subprocess, an unreachable service) --
// distinct from the parser answering "invalid", which is the expected input.
var ErrParserUnavailable = errors.New("blocklocate: reference parser unavailable")

// ErrLexerOverflow mirrors lexpair.ErrOverflow: a single line or block ran up
// a pair counter past what the engine tracks, almost certainly adversarial
// or corrupted input rather than real source.
var ErrLexerOverflow = errors.New("blocklocate: lexer pair counter overflow")

// LocateError wraps the frontier's best-effort ranges when the search
// finished without the frontier ever accounting for every syntax error, yet
// the InvalidBlockSelector still reported suspect blocks. Callers that want
// "something, even if imprecise" can unwrap Ranges; callers that want to
// treat this as fatal can check errors.Is against ErrNoSolution.
type LocateError struct {
	Ranges []Range
	err    error
}

func (e *LocateError) Error() string {
	return fmt.Sprintf("blocklocate: %v (returning %d best-effort range(s))", e.err, len(e.Ranges))
}

func (e *LocateError) Unwrap() error { return e.err }

// ErrNoSolution is wrapped by LocateError when the driver drained its queue
// without the frontier ever holding all syntax errors.
var ErrNoSolution = errors.New("blocklocate: no minimal validating subset found")

// Locate runs the search engine against source and returns the suspect
// ranges a reference parser would need excised to accept the rest.
//
// If source is already valid, Locate returns (nil, nil): there is nothing to
// localize. If the reference parser returns an error on the initial
// whole-source check, Locate returns it wrapped in ErrParserUnavailable.
func Locate(source string, opts Options) ([]Range, error) {
	if opts.Lexer == nil {
		opts.Lexer = rubylex.New()
	}
	if opts.Parser == nil {
		opts.Parser = balanceparser.New(func() codeline.Lexer { return rubylex.New() })
	}
	if opts.Cleaner == nil {
		opts.Cleaner = sourceclean.New()
	}

	cleaned, err := opts.Cleaner.Clean(source)
	if err != nil {
		return nil, err
	}

	valid, err := opts.Parser.Valid(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParserUnavailable, err)
	}
	if valid {
		return nil, nil
	}

	lines, err := codeline.Build(cleaned, opts.Lexer)
	if err != nil {
		if errors.Is(err, lexpair.ErrOverflow) {
			return nil, fmt.Errorf("%w: %v", ErrLexerOverflow, err)
		}
		return nil, err
	}

	doc := block.New(lines)
	f := frontier.New(lines, opts.Parser)
	holds, err := indenttree.Run(doc, f)
	if err != nil {
		return nil, err
	}

	invalid, err := f.DetectInvalidBlocks()
	if err != nil {
		return nil, err
	}

	ranges := toRanges(invalid)
	if len(invalid) > 0 && !holds {
		return ranges, &LocateError{Ranges: ranges, err: ErrNoSolution}
	}

	return ranges, nil
}

func toRanges(blocks []*block.Node) []Range {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Range, len(blocks))
	for i, b := range blocks {
		out[i] = Range{Start: int(b.StartIndex()) + 1, End: int(b.EndIndex()) + 1}
	}
	return out
}

