package diagnostics

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/jarredhawkins/blocklocate"
)

// Excise returns source with every line covered by ranges removed, the
// "what I'd delete to make it parse" view --diff shows a unified diff
// against.
func Excise(source string, ranges []blocklocate.Range) string {
	lines := splitLinesKeepNL(source)
	excised := make(map[int]bool, len(ranges))
	for _, r := range ranges {
		for i := r.Start; i <= r.End; i++ {
			excised[i] = true
		}
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if excised[i+1] {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "")
}

// UnifiedDiff renders a classic unified patch between source and source with
// ranges excised, using go-difflib the way
// edward-ap-class-collector/internal/diff.Unified does: split-keeping
// newlines, four lines of context, "a/"+"b/"-style file names.
func UnifiedDiff(path, source string, ranges []blocklocate.Range) (string, error) {
	excised := Excise(source, ranges)

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(source),
		B:        splitLinesKeepNL(excised),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  4,
	}
	return difflib.GetUnifiedDiffString(u)
}

func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}

// StyleUnifiedDiff applies styles to an already-rendered unified diff's
// header, hunk markers, and +/- lines -- a terminal can't interpret raw
// unified-diff text as color on its own.
func (s *Styles) StyleUnifiedDiff(patch string) string {
	lines := strings.SplitAfter(patch, "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			b.WriteString(s.DiffHeader.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString(s.DiffHunk.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(s.DiffAdd.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(s.DiffRemove.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case line == "":
		default:
			b.WriteString(s.DiffContext.Render(strings.TrimSuffix(line, "\n")) + "\n")
		}
	}
	return b.String()
}
