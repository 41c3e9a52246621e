// Package sourceclean implements a SourceCleaner: it blanks `#` comments and
// collapses heredocs and percent-literal arrays (`%w[...]`, `%i[...]`) down
// to placeholder lines, preserving line numbering so the rest of the engine
// can keep reporting 1-based line ranges against the original file.
//
// It is grounded on the teacher's scanner.go accumulator (internal/parser):
// the same "track an opener/closer pair, keep consuming lines until depth
// drops to zero" shape, applied to heredoc/percent-literal spans instead of
// multi-line symbol matches.
package sourceclean

import (
	"regexp"
	"strings"
)

var heredocPattern = regexp.MustCompile(`<<[~-]?['"]?(\w+)['"]?`)

var percentOpenPattern = regexp.MustCompile(`%[wi]([(\[{<])`)

var percentClosers = map[byte]byte{'(': ')', '[': ']', '{': '}', '<': '>'}

// Cleaner implements SourceCleaner.
type Cleaner struct{}

// New returns a Cleaner. It holds no state between calls.
func New() *Cleaner { return &Cleaner{} }

// Clean blanks comments and collapses heredoc/percent-literal bodies,
// returning text with the same line count as source.
func (c *Cleaner) Clean(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, len(lines))

	var heredocTerm string
	inHeredoc := false

	var percentOpener, percentCloser byte
	percentDepth := 0
	inPercent := false

	for i, raw := range lines {
		switch {
		case inHeredoc:
			if strings.TrimSpace(strings.TrimRight(raw, "\r")) == heredocTerm {
				inHeredoc = false
			}
			out[i] = ""

		case inPercent:
			percentDepth += strings.Count(raw, string(percentOpener)) - strings.Count(raw, string(percentCloser))
			out[i] = ""
			if percentDepth <= 0 {
				inPercent = false
			}

		default:
			line := stripComment(raw)

			if m := heredocPattern.FindStringSubmatchIndex(line); m != nil {
				heredocTerm = line[m[2]:m[3]]
				inHeredoc = true
				// Keep whatever comes after the tag on this same line (e.g. a
				// closing paren) -- only the body, starting next line, is the
				// heredoc's actual content.
				line = line[:m[0]] + line[m[1]:]
			} else if m := percentOpenPattern.FindStringSubmatchIndex(line); m != nil {
				opener := line[m[2]]
				closer := percentClosers[opener]
				rest := line[m[1]:]
				depth := 1 + strings.Count(rest, string(opener)) - strings.Count(rest, string(closer))
				if depth > 0 {
					percentOpener, percentCloser, percentDepth = opener, closer, depth
					inPercent = true
					line = line[:m[0]]
				}
			}

			out[i] = line
		}
	}

	return strings.Join(out, "\n"), nil
}

// stripComment truncates line at the first unquoted, unescaped '#', the same
// quote-tracking scan rubylex uses to find unquoted brackets.
func stripComment(line string) string {
	var inString byte
	escaped := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inString != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == inString:
				inString = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			inString = c
		case '#':
			return line[:i]
		}
	}

	return line
}
