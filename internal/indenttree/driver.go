// Package indenttree implements the IndentTree driver: the top-level search
// loop that pops expansion candidates off a Document's priority queue,
// grows them toward whichever neighbour applies, and feeds every block that
// stops growing to the frontier -- terminating either when the queue drains
// or when the frontier reports it already accounts for every syntax error
// (spec.md §4.7 and §4.9, which describe one interleaved loop: §4.7's "attach
// it as a parent of the root sentinel" and §4.9's "frontier << block; break
// if holds_all_syntax_errors?" both fire at the same moment, the instant a
// block stops growing).
package indenttree

import (
	"github.com/jarredhawkins/blocklocate/internal/block"
	"github.com/jarredhawkins/blocklocate/internal/frontier"
	"github.com/jarredhawkins/blocklocate/internal/lexpair"
)

// Run grows doc's leaves into maximal blocks and feeds each one to fr as it
// matures. It returns once fr already holds every syntax error, or once the
// document's queue is empty, whichever comes first. The returned bool
// reports which one: true if Run stopped early because fr.HoldsAllSyntaxErrors
// came back true, false if the queue simply drained. Callers need this to
// tell "the frontier is already complete" apart from "nothing more to find" --
// HoldsAllSyntaxErrors itself can't answer that after the fact, since its
// can_skip_check optimization short-circuits to false once there's no new
// invalid block to justify rechecking.
//
// When a node can expand both ways in the same pop, only one direction is
// captured -- the one its leaning prefers (right leans toward below, anything
// else toward above). The other direction gets its turn the next time the
// resulting composite is popped, since capturing both at once would claim
// this node's lines in two composites simultaneously.
func Run(doc *block.Document, fr *frontier.Frontier) (bool, error) {
	for {
		n := doc.PopMax()
		if n == nil {
			return false, nil
		}

		withIndent := n.NextIndent()
		canAbove := n.ExpandAbove(withIndent)
		canBelow := n.ExpandBelow(withIndent)

		switch {
		case canAbove && canBelow:
			if n.Leaning() == lexpair.Right {
				doc.Capture([]*block.Node{n, n.Below()})
			} else {
				doc.Capture([]*block.Node{n.Above(), n})
			}
		case canAbove:
			doc.Capture([]*block.Node{n.Above(), n})
		case canBelow:
			doc.Capture([]*block.Node{n, n.Below()})
		default:
			doc.Root.AddParent(n)

			if err := fr.Push(n); err != nil {
				return false, err
			}
			holds, err := fr.HoldsAllSyntaxErrors()
			if err != nil {
				return false, err
			}
			if holds {
				return true, nil
			}
		}
	}
}
