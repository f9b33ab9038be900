package hclust

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMerges indicates a merge list inconsistent with the leaf count.
	ErrBadMerges = errors.New("hclust: want exactly leaves-1 merges")
	// ErrBadNode indicates a merge referencing an invalid or reused node.
	ErrBadNode = errors.New("hclust: merge references an invalid or already-merged node")
	// ErrHeightOrder indicates decreasing merge heights.
	ErrHeightOrder = errors.New("hclust: merge heights must be non-decreasing")
	// ErrNoLeaves indicates a dendrogram over zero leaves.
	ErrNoLeaves = errors.New("hclust: dendrogram needs at least one leaf")
)

// Merge is one agglomeration event. Left and Right are node ids: leaves
// are 0..G-1, and the m-th merge (0-based) creates node G+m. Size is the
// number of leaves under the new node.
type Merge struct {
	Left, Right int
	Height      float64
	Size        int
}

// Dendrogram is the ordered sequence of merges over a fixed leaf set.
// G leaves yield exactly G−1 merges; node G+m is created by merge m.
type Dendrogram struct {
	leaves int
	merges []Merge
}

// NewDendrogram validates and assembles a dendrogram from a merge list.
// Each node may appear as a child exactly once, children must exist
// before their parent, and heights must be non-decreasing. Merge sizes
// are recomputed from the children, so callers may leave Size zero.
func NewDendrogram(leaves int, merges []Merge) (*Dendrogram, error) {
	if leaves < 1 {
		return nil, ErrNoLeaves
	}
	if len(merges) != leaves-1 {
		return nil, fmt.Errorf("hclust: %d leaves, %d merges: %w", leaves, len(merges), ErrBadMerges)
	}

	sizes := make([]int, 2*leaves-1)
	for i := 0; i < leaves; i++ {
		sizes[i] = 1
	}
	used := make([]bool, 2*leaves-1)
	out := make([]Merge, len(merges))
	prev := 0.0
	for m, mg := range merges {
		parent := leaves + m
		for _, child := range [2]int{mg.Left, mg.Right} {
			if child < 0 || child >= parent || used[child] {
				return nil, fmt.Errorf("hclust: merge %d child %d: %w", m, child, ErrBadNode)
			}
			used[child] = true
		}
		if mg.Height < prev {
			return nil, fmt.Errorf("hclust: merge %d height %v after %v: %w", m, mg.Height, prev, ErrHeightOrder)
		}
		prev = mg.Height
		sizes[parent] = sizes[mg.Left] + sizes[mg.Right]
		out[m] = Merge{Left: mg.Left, Right: mg.Right, Height: mg.Height, Size: sizes[parent]}
	}
	return &Dendrogram{leaves: leaves, merges: out}, nil
}

// Leaves returns the number of leaves (genes).
func (d *Dendrogram) Leaves() int { return d.leaves }

// NumNodes returns the total node count, leaves plus internal nodes.
func (d *Dendrogram) NumNodes() int { return 2*d.leaves - 1 }

// Root returns the id of the final merge node (or the sole leaf).
func (d *Dendrogram) Root() int { return d.NumNodes() - 1 }

// IsLeaf reports whether node is a leaf id.
func (d *Dendrogram) IsLeaf(node int) bool { return node < d.leaves }

// Merges returns a copy of the merge sequence.
func (d *Dendrogram) Merges() []Merge { return append([]Merge(nil), d.merges...) }

// Height returns the merge height of node; leaves sit at height 0.
func (d *Dendrogram) Height(node int) float64 {
	if d.IsLeaf(node) {
		return 0
	}
	return d.merges[node-d.leaves].Height
}

// Size returns the number of leaves under node.
func (d *Dendrogram) Size(node int) int {
	if d.IsLeaf(node) {
		return 1
	}
	return d.merges[node-d.leaves].Size
}

// Children returns the two child node ids of an internal node;
// ok is false for leaves.
func (d *Dendrogram) Children(node int) (left, right int, ok bool) {
	if d.IsLeaf(node) {
		return 0, 0, false
	}
	mg := d.merges[node-d.leaves]
	return mg.Left, mg.Right, true
}

// Members returns the leaf ids under node in ascending order of
// discovery (left subtree first).
func (d *Dendrogram) Members(node int) []int {
	out := make([]int, 0, d.Size(node))
	stack := []int{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if d.IsLeaf(n) {
			out = append(out, n)
			continue
		}
		mg := d.merges[n-d.leaves]
		// Right pushed first so the left subtree is emitted first.
		stack = append(stack, mg.Right, mg.Left)
	}
	return out
}
