package lexpair

import "errors"

// ErrOverflow is returned when a pair counter would exceed maxCount. The
// engine treats it as a programmer error (malformed or adversarial input
// feeding the lexer an unbounded run of identical openers), not a recoverable
// condition.
var ErrOverflow = errors.New("lexpair: pair counter overflow")

// maxCount mirrors spec's "> 2^32" overflow bound. Counters are stored as
// uint64 so the comparison itself never wraps.
const maxCount = 1 << 32

// Diff is a running open/close tally for every Kind, representing the net
// lexical balance contributed by one line or one aggregated block.
type Diff struct {
	open  [numKinds]uint64
	close [numKinds]uint64
}

// Empty returns a zero-valued Diff.
func Empty() Diff {
	return Diff{}
}

// Add records one lexer Event against the diff. A close cancels a pending
// open of the same Kind, so a pair opened and closed on one line nets out.
func (d *Diff) Add(ev Event) error {
	switch ev.Role {
	case Open:
		if d.open[ev.Kind]+1 > maxCount {
			return ErrOverflow
		}
		d.open[ev.Kind]++
	case Close:
		if d.open[ev.Kind] > 0 {
			d.open[ev.Kind]--
			return nil
		}
		if d.close[ev.Kind]+1 > maxCount {
			return ErrOverflow
		}
		d.close[ev.Kind]++
	}
	return nil
}

// Concat appends other's contribution after d's, cancelling d's pending
// opens against other's closes first (see SPEC_FULL.md §4.1 / spec.md §4.1).
// d is mutated in place and also returned for chaining.
func (d *Diff) Concat(other Diff) (*Diff, error) {
	for k := 0; k < int(numKinds); k++ {
		c := min64(d.open[k], other.close[k])
		d.open[k] -= c
		otherCloseRemainder := other.close[k] - c

		if d.open[k]+other.open[k] > maxCount {
			return d, ErrOverflow
		}
		if d.close[k]+otherCloseRemainder > maxCount {
			return d, ErrOverflow
		}

		d.open[k] += other.open[k]
		d.close[k] += otherCloseRemainder
	}
	return d, nil
}

// Balanced reports whether every pair kind has zero pending opens and closes.
func (d Diff) Balanced() bool {
	for k := 0; k < int(numKinds); k++ {
		if d.open[k] != 0 || d.close[k] != 0 {
			return false
		}
	}
	return true
}

// Leaning classifies the direction of d's imbalance.
func (d Diff) Leaning() Leaning {
	hasOpen, hasClose := false, false
	for k := 0; k < int(numKinds); k++ {
		if d.open[k] != 0 {
			hasOpen = true
		}
		if d.close[k] != 0 {
			hasClose = true
		}
	}
	switch {
	case !hasOpen && !hasClose:
		return Equal
	case hasOpen && !hasClose:
		return Left
	case !hasOpen && hasClose:
		return Right
	default:
		return Both
	}
}

// OpenCount returns the pending open count for a single Kind, mostly useful
// in tests that want to assert on one pair family without reaching into
// leaning/balanced summaries.
func (d Diff) OpenCount(k Kind) uint64 { return d.open[k] }

// CloseCount returns the pending close count for a single Kind.
func (d Diff) CloseCount(k Kind) uint64 { return d.close[k] }

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
