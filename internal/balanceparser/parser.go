// Package balanceparser implements a heuristic refparser.Parser: it answers
// "is this text syntactically valid?" by running a Lexer over every line and
// checking the accumulated LexPairDiff is balanced. It is explicitly a
// stand-in for a real grammar (spec.md treats the reference parser as an
// external collaborator) -- good enough to drive the search engine end to
// end, never claiming to be a complete Ruby parser.
package balanceparser

import (
	"strings"

	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/lexpair"
)

// Parser checks whole-document lexical balance via a fresh Lexer per call.
type Parser struct {
	newLexer func() codeline.Lexer
}

// New builds a Parser that tokenizes with a new Lexer (from newLexer) on
// every Valid call, so stateful lexers (like rubylex.Lexer, which tracks an
// open-block stack) don't carry state across unrelated validity checks.
func New(newLexer func() codeline.Lexer) *Parser {
	return &Parser{newLexer: newLexer}
}

// Valid reports whether text's lexical pairs are fully balanced end to end.
func (p *Parser) Valid(text string) (bool, error) {
	lx := p.newLexer()

	diff := lexpair.Empty()
	started := false

	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		events, err := lx.Tokenize(trimmed)
		if err != nil {
			return false, err
		}

		line := lexpair.Empty()
		for _, ev := range events {
			if err := line.Add(ev); err != nil {
				return false, err
			}
		}

		if !started {
			diff = line
			started = true
			continue
		}
		if _, err := diff.Concat(line); err != nil {
			return false, err
		}
	}

	return diff.Balanced(), nil
}
