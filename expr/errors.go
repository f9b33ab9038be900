package expr

import "errors"

var (
	// ErrShape indicates an empty or non-rectangular input table.
	ErrShape = errors.New("expr: matrix must be rectangular and non-empty")
	// ErrTooFewSamples indicates fewer than MinSamples columns.
	ErrTooFewSamples = errors.New("expr: too few samples for a stable correlation estimate")
	// ErrDuplicateGene indicates a repeated or empty gene identifier.
	ErrDuplicateGene = errors.New("expr: gene identifiers must be unique and non-empty")
	// ErrNonFinite indicates a NaN or ±Inf expression value.
	ErrNonFinite = errors.New("expr: expression values must be finite")
	// ErrZeroVariance indicates one or more genes with zero variance across samples.
	ErrZeroVariance = errors.New("expr: zero-variance gene rows have undefined correlation")
	// ErrUnknownGene indicates a gene identifier not present in the matrix.
	ErrUnknownGene = errors.New("expr: unknown gene identifier")
	// ErrBadPermutation indicates a permutation that is not a bijection on row indices.
	ErrBadPermutation = errors.New("expr: permutation must visit every gene index exactly once")
)
