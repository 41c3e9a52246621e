// Package refparser defines the reference-parser contract the search engine
// treats as an external collaborator (spec.md §6): something that can say
// whether a complete program is syntactically valid.
package refparser

import "strings"

// Parser answers whether a complete program is syntactically valid.
// Concrete implementations (see internal/balanceparser) are swappable; the
// engine never assumes anything about how Valid decides.
type Parser interface {
	Valid(text string) (bool, error)
}

// ValidWithout reconstructs source with the given zero-based line indices
// blanked out (so line numbers are preserved) and asks the parser whether
// the result is valid.
func ValidWithout(p Parser, without map[uint32]bool, originalLines []string) (bool, error) {
	var b strings.Builder
	for i, line := range originalLines {
		if without[uint32(i)] {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return p.Valid(b.String())
}
