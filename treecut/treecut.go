package treecut

import (
	"fmt"
	"sort"

	"github.com/jessica-ewald/JQ-coexpression-network/hclust"
)

// Cut partitions the dendrogram into modules under opts. The dendrogram
// is read-only; identical inputs produce identical assignments.
//
// Parameter errors are rejected before the tree is touched. The
// resulting partition honours the MinClusterSize invariant: every
// non-background module holds at least MinClusterSize leaves.
//
// Complexity: O(G) tree walk plus O(M log M) label ordering.
func Cut(d *hclust.Dendrogram, opts Options) (*Assignment, error) {
	if d == nil {
		return nil, ErrNilDendrogram
	}
	if opts.MinClusterSize < 1 {
		return nil, fmt.Errorf("treecut: MinClusterSize %d: %w", opts.MinClusterSize, ErrBadMinClusterSize)
	}
	if opts.CutHeight < 0 || opts.CutHeight > 1 {
		return nil, fmt.Errorf("treecut: CutHeight %v: %w", opts.CutHeight, ErrBadCutHeight)
	}
	if opts.DeepSplit < 0 || opts.DeepSplit > MaxDeepSplit {
		return nil, fmt.Errorf("treecut: DeepSplit %d: %w", opts.DeepSplit, ErrBadDeepSplit)
	}

	c := &cutter{d: d, opts: opts, scatter: maxScatter[opts.DeepSplit]}
	c.visit(d.Root())
	return c.assignment()
}

// SweepDeepSplit maps every sensitivity level to an independent Cut with
// the remaining options held fixed, returning one assignment per level
// in order. This is the external parameter-exploration loop of the
// detector expressed as a collection, not accumulated mutation.
func SweepDeepSplit(d *hclust.Dendrogram, opts Options, levels []int) ([]*Assignment, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	out := make([]*Assignment, len(levels))
	for i, level := range levels {
		o := opts
		o.DeepSplit = level
		a, err := Cut(d, o)
		if err != nil {
			return nil, fmt.Errorf("treecut: sweep level %d: %w", level, err)
		}
		out[i] = a
	}
	return out, nil
}

// cutter carries the walk state: the finalized module member sets.
type cutter struct {
	d       *hclust.Dendrogram
	opts    Options
	scatter float64
	modules [][]int
}

// visit decides the fate of the branch rooted at node. Leaves and
// too-small branches fall through to the background label, which is the
// default for every leaf not captured by a finalized module.
func (c *cutter) visit(node int) {
	if c.d.IsLeaf(node) {
		return
	}
	left, right, _ := c.d.Children(node)

	// Above the ceiling the branch is too internally dissimilar to be
	// real structure; its sub-branches are judged independently.
	if c.d.Height(node) > c.opts.CutHeight {
		c.visit(left)
		c.visit(right)
		return
	}

	if c.shouldSplit(node, left, right) {
		c.visit(left)
		c.visit(right)
		return
	}

	if c.d.Size(node) >= c.opts.MinClusterSize {
		c.modules = append(c.modules, c.d.Members(node))
	}
}

// shouldSplit reports whether the branch at node separates into its two
// children as candidate modules: both children must clear
// MinClusterSize, and both must be distinct — their own merge heights
// within the scatter fraction of the parent height. A zero-height parent
// never splits (its children are indistinguishable).
func (c *cutter) shouldSplit(node, left, right int) bool {
	if c.d.Size(left) < c.opts.MinClusterSize || c.d.Size(right) < c.opts.MinClusterSize {
		return false
	}
	h := c.d.Height(node)
	if h <= 0 {
		return false
	}
	limit := c.scatter * h
	return c.d.Height(left) <= limit && c.d.Height(right) <= limit
}

// assignment orders the collected modules (size descending, then
// smallest member ascending) and issues the final labels.
func (c *cutter) assignment() (*Assignment, error) {
	for _, mod := range c.modules {
		sort.Ints(mod)
	}
	sort.SliceStable(c.modules, func(a, b int) bool {
		ma, mb := c.modules[a], c.modules[b]
		if len(ma) != len(mb) {
			return len(ma) > len(mb)
		}
		return ma[0] < mb[0]
	})

	labels := make([]int, c.d.Leaves())
	for m, mod := range c.modules {
		for _, leaf := range mod {
			labels[leaf] = m + 1
		}
	}
	return &Assignment{labels: labels, modules: c.modules}, nil
}
