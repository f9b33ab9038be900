package adjacency_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
)

// ExampleBuild shows the signed transform: correlation 0.5 maps through
// (0.5+1)/2 = 0.75 before squaring, while an anti-correlation of the
// same magnitude lands near zero.
func ExampleBuild() {
	sim := mat.NewSymDense(3, []float64{
		1, 0.5, -0.5,
		0.5, 1, 0,
		-0.5, 0, 1,
	})

	adj, err := adjacency.Build(sim, 2, adjacency.Signed)
	if err != nil {
		panic(err)
	}
	fmt.Printf("a(0,1)=%.4f a(0,2)=%.4f\n", adj.At(0, 1), adj.At(0, 2))
	// Output: a(0,1)=0.5625 a(0,2)=0.0625
}
