package blocklocate

import (
	"errors"
	"testing"
)

// TestLocateMissingEnd is spec.md Scenario A: a def whose inner if/else/end
// is complete but whose own closing end is missing. The dangling def is the
// one suspect range; the well-formed class Bar/end elsewhere in the file
// should not be flagged.
func TestLocateMissingEnd(t *testing.T) {
	src := `def on_args_add(arguments, argument)
  if arguments.parts.empty?
    Args.new(parts: [argument])
  else
    Args.new(parts: arguments.parts << argument)
  end
# end missing here

class Bar
end
`
	ranges, err := Locate(src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 suspect range, got %d: %+v", len(ranges), ranges)
	}
	if ranges[0] != (Range{Start: 1, End: 1}) {
		t.Errorf("expected range [1,1], got %+v", ranges[0])
	}
}

// TestLocateValidProgramReturnsNoRanges is spec.md Scenario B: a well-formed
// def with an inner if/else/end has nothing to excise.
func TestLocateValidProgramReturnsNoRanges(t *testing.T) {
	src := `def greet(name)
  if name.empty?
    "hello, stranger"
  else
    "hello, #{name}"
  end
end
`
	ranges, err := Locate(src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != nil {
		t.Errorf("expected no suspect ranges for a valid program, got %+v", ranges)
	}
}

// TestLocateOuterEndWithNoOpener is spec.md Scenario C: everything up to the
// final line is internally consistent; only the trailing end has no opener
// left to pair with.
func TestLocateOuterEndWithNoOpener(t *testing.T) {
	src := `Foo.call
  def foo
    print "lol"
   end
end
`
	ranges, err := Locate(src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 suspect range, got %d: %+v", len(ranges), ranges)
	}
	if ranges[0] != (Range{Start: 5, End: 5}) {
		t.Errorf("expected range [5,5], got %+v", ranges[0])
	}
}

// TestLocateThreeValidSiblingBlocks is spec.md Scenario D: three independent
// if/end triples, all individually balanced, should collapse to no suspects.
func TestLocateThreeValidSiblingBlocks(t *testing.T) {
	src := `if a
  1
end
if b
  2
end
if c
  3
end
`
	ranges, err := Locate(src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != nil {
		t.Errorf("expected no suspect ranges, got %+v", ranges)
	}
}

// TestLocateEmptySourceIsValid covers the degenerate case the scenarios
// don't: nothing to parse means nothing invalid.
func TestLocateEmptySourceIsValid(t *testing.T) {
	ranges, err := Locate("", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranges != nil {
		t.Errorf("expected no suspect ranges for empty source, got %+v", ranges)
	}
}

type brokenParser struct{ err error }

func (p brokenParser) Valid(string) (bool, error) { return false, p.err }

// TestLocateWrapsParserFailure ensures a reference parser that errors out
// (rather than answering invalid) surfaces as ErrParserUnavailable, not as a
// silent false positive.
func TestLocateWrapsParserFailure(t *testing.T) {
	wantErr := errors.New("parser subprocess crashed")
	_, err := Locate("def foo\nend\n", Options{Parser: brokenParser{err: wantErr}})
	if !errors.Is(err, ErrParserUnavailable) {
		t.Fatalf("expected ErrParserUnavailable, got %v", err)
	}
}
