package block

import (
	"container/heap"

	"github.com/jarredhawkins/blocklocate/internal/codeline"
)

// Document wraps the linked-list spine of leaf Nodes, a root sentinel that
// accumulates top-level parents as the IndentTree driver grows the tree, and
// a priority queue of expansion candidates (spec.md §4.5).
type Document struct {
	Root  *Node
	head  *Node
	tail  *Node
	queue nodeHeap
	seq   uint64
}

// New builds the initial leaf spine from a sequence of lines.
func New(lines []*codeline.Line) *Document {
	d := &Document{Root: &Node{}}
	heap.Init(&d.queue)

	var prev *Node
	for _, l := range lines {
		leaf := NewLeaf(l)
		if prev != nil {
			prev.below = leaf
			leaf.above = prev
		} else {
			d.head = leaf
		}
		prev = leaf
		d.pushQueue(leaf)
	}
	d.tail = prev
	return d
}

func (d *Document) pushQueue(n *Node) {
	d.seq++
	n.seq = d.seq
	heap.Push(&d.queue, n)
}

// Capture composes parents into one node via FromBlocks, rewires the
// spine's reciprocal above/below links, and enqueues the new node.
func (d *Document) Capture(parents []*Node) *Node {
	composite := FromBlocks(parents)

	if composite.above != nil {
		composite.above.below = composite
	} else {
		d.head = composite
	}
	if composite.below != nil {
		composite.below.above = composite
	} else {
		d.tail = composite
	}

	d.pushQueue(composite)
	return composite
}

// PopMax pops the highest-priority live node, lazily skipping tombstoned
// entries left behind by earlier captures (spec.md §9).
func (d *Document) PopMax() *Node {
	for d.queue.Len() > 0 {
		n := heap.Pop(&d.queue).(*Node)
		if n.deleted {
			continue
		}
		return n
	}
	return nil
}

// QueueEmpty reports whether the queue has no more live candidates. It drains
// tombstoned entries as a side effect, matching PopMax's laziness.
func (d *Document) QueueEmpty() bool {
	for d.queue.Len() > 0 {
		if !d.queue[0].deleted {
			return false
		}
		heap.Pop(&d.queue)
	}
	return true
}

// ToA returns a snapshot of every currently undeleted node still reachable
// from the spine (i.e. the document's current partition of the input).
func (d *Document) ToA() []*Node {
	var out []*Node
	for n := d.head; n != nil; n = n.below {
		if !n.deleted {
			out = append(out, n)
		}
	}
	return out
}

// nodeHeap is a binary max-heap on the (nextIndent, indent, endIndex) tuple,
// tie-broken by insertion order (earlier wins), per spec.md §4.6 and §9.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if ai, bi := a.NextIndent(), b.NextIndent(); ai != bi {
		return ai > bi
	}
	if a.indent != b.indent {
		return a.indent > b.indent
	}
	if a.endIndex != b.endIndex {
		return a.endIndex > b.endIndex
	}
	return a.seq < b.seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
