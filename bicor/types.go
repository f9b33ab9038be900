package bicor

import (
	"errors"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Mode selects the pairwise correlation statistic.
type Mode int

const (
	// Biweight is the outlier-robust biweight midcorrelation (default).
	Biweight Mode = iota
	// Pearson forces the classic product-moment correlation for all genes.
	Pearson
)

// String implements fmt.Stringer for log and error messages.
func (m Mode) String() string {
	switch m {
	case Biweight:
		return "bicor"
	case Pearson:
		return "pearson"
	default:
		return "unknown"
	}
}

const (
	// DefaultMADTolerance is the MAD below which the biweight estimator is
	// considered degenerate for a gene and the Pearson fallback applies.
	DefaultMADTolerance = 1e-12

	// biweightScale is the conventional 9×MAD denominator of the Tukey
	// biweight: samples beyond nine MADs from the median get zero weight.
	biweightScale = 9.0
)

var (
	// ErrBadMode indicates a Mode outside the supported set.
	ErrBadMode = errors.New("bicor: unsupported correlation mode")
	// ErrNilMatrix indicates a nil expression matrix.
	ErrNilMatrix = errors.New("bicor: expression matrix is nil")
)

// Options configures Correlate.
type Options struct {
	// Mode selects the estimator; Biweight by default.
	Mode Mode
	// MADTolerance is the per-gene degeneracy threshold for the robust
	// estimator. Non-positive values fall back to DefaultMADTolerance.
	MADTolerance float64
	// Workers bounds the goroutines normalizing gene rows.
	// Non-positive values fall back to GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Mode:         Biweight,
		MADTolerance: DefaultMADTolerance,
		Workers:      runtime.GOMAXPROCS(0),
	}
}

// Pair identifies an unordered gene pair by row indices, I < J.
type Pair struct {
	I, J int
}

// Result is the similarity matrix plus the per-pair degeneracy flags.
type Result struct {
	// Sim is the G×G similarity matrix: symmetric, values in [-1,1],
	// diagonal exactly 1.
	Sim *mat.SymDense
	// Degenerate lists gene pairs whose correlation could not be
	// estimated even by the fallback; their Sim entries are 0 and
	// downstream stages must treat them as maximally dissimilar.
	Degenerate []Pair
	// FallbackGenes counts genes that used the Pearson fallback because
	// their MAD was below tolerance.
	FallbackGenes int
}
