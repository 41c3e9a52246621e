package diagnostics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jarredhawkins/blocklocate"
)

// FormatRange renders one suspect range: a location line plus every source
// line it spans, mirroring pretty.Styles.FormatDiagnostic's
// "location / message" line followed by FormatSourceContext's indented
// source, adapted here to a multi-line range instead of a single
// line:column caret.
func (s *Styles) FormatRange(path string, r blocklocate.Range, lines []string) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), r.Start, r.End)
	b.WriteString(fmt.Sprintf("  %s  %s\n", location, s.Message.Render("suspect block")))

	width := len(strconv.Itoa(r.End))
	for i := r.Start; i <= r.End && i <= len(lines); i++ {
		gutter := fmt.Sprintf("%*d | ", width, i)
		b.WriteString("    " + s.Dim.Render(gutter) + s.SourceLine.Render(lines[i-1]) + "\n")
	}

	return b.String()
}

// FormatRanges renders every range in order, separated by blank lines.
func (s *Styles) FormatRanges(path string, ranges []blocklocate.Range, source string) string {
	if len(ranges) == 0 {
		return s.Dim.Render(fmt.Sprintf("%s: no suspect ranges found\n", path))
	}

	lines := strings.Split(source, "\n")

	var b strings.Builder
	for i, r := range ranges {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.FormatRange(path, r, lines))
	}
	return b.String()
}
