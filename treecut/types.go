package treecut

import "errors"

// Unassigned is the distinguished background label for genes placed in
// no module. It is exempt from the MinClusterSize invariant.
const Unassigned = 0

const (
	// DefaultMinClusterSize is the default smallest admissible module.
	DefaultMinClusterSize = 30
	// DefaultCutHeight is the default merge-height ceiling.
	DefaultCutHeight = 0.99
	// DefaultDeepSplit is the default split sensitivity.
	DefaultDeepSplit = 2
	// MaxDeepSplit bounds the supported sensitivity levels 0..MaxDeepSplit.
	MaxDeepSplit = 3
)

// maxScatter maps DeepSplit to the fraction of the parent merge height a
// child branch may reach while still counting as distinct. The ladder
// widens with sensitivity, so every split legal at level d stays legal
// at level d+1.
var maxScatter = [MaxDeepSplit + 1]float64{0.64, 0.73, 0.82, 0.91}

var (
	// ErrNilDendrogram indicates a nil dendrogram.
	ErrNilDendrogram = errors.New("treecut: dendrogram is nil")
	// ErrBadMinClusterSize indicates MinClusterSize < 1.
	ErrBadMinClusterSize = errors.New("treecut: MinClusterSize must be >= 1")
	// ErrBadCutHeight indicates CutHeight outside [0,1].
	ErrBadCutHeight = errors.New("treecut: CutHeight must lie in [0,1]")
	// ErrBadDeepSplit indicates DeepSplit outside 0..MaxDeepSplit.
	ErrBadDeepSplit = errors.New("treecut: DeepSplit outside the supported set")
	// ErrNoLevels indicates an empty deepSplit sweep.
	ErrNoLevels = errors.New("treecut: sweep needs at least one deepSplit level")
)

// Options parameterizes Cut. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// MinClusterSize is the smallest gene count a module may have.
	MinClusterSize int
	// CutHeight is the merge-height ceiling: branches merging above it
	// are never finalized as modules.
	CutHeight float64
	// DeepSplit is the split sensitivity, 0 (coarse) to 3 (fine).
	DeepSplit int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		MinClusterSize: DefaultMinClusterSize,
		CutHeight:      DefaultCutHeight,
		DeepSplit:      DefaultDeepSplit,
	}
}

// Assignment maps every leaf (gene row) to a module label. Labels run
// 1..NumModules in decreasing module size; Unassigned (0) is the
// background.
type Assignment struct {
	labels  []int
	modules [][]int // modules[m] holds the sorted leaves of label m+1
}

// NumGenes returns the number of leaves covered by the assignment.
func (a *Assignment) NumGenes() int { return len(a.labels) }

// NumModules returns the number of detected modules, excluding the
// background.
func (a *Assignment) NumModules() int { return len(a.modules) }

// Label returns the module label of leaf i (Unassigned for background).
func (a *Assignment) Label(i int) int { return a.labels[i] }

// Labels returns a copy of the per-leaf labels.
func (a *Assignment) Labels() []int { return append([]int(nil), a.labels...) }

// Module returns a copy of the leaves carrying label m (1-based).
func (a *Assignment) Module(m int) []int {
	return append([]int(nil), a.modules[m-1]...)
}

// Modules returns copies of all module member sets, by label order.
func (a *Assignment) Modules() [][]int {
	out := make([][]int, len(a.modules))
	for m := range a.modules {
		out[m] = append([]int(nil), a.modules[m]...)
	}
	return out
}

// Unassigned returns the leaves carrying the background label.
func (a *Assignment) Unassigned() []int {
	var out []int
	for i, l := range a.labels {
		if l == Unassigned {
			out = append(out, i)
		}
	}
	return out
}
