package treecut_test

import (
	"fmt"

	"github.com/jessica-ewald/JQ-coexpression-network/hclust"
	"github.com/jessica-ewald/JQ-coexpression-network/treecut"
)

// ExampleCut prunes a four-leaf dendrogram whose two tight pairs join
// only at the very top: the root is above the cut height, so each pair
// becomes its own module.
func ExampleCut() {
	d, err := hclust.NewDendrogram(4, []hclust.Merge{
		{Left: 0, Right: 1, Height: 0.1},
		{Left: 2, Right: 3, Height: 0.2},
		{Left: 4, Right: 5, Height: 1.0},
	})
	if err != nil {
		panic(err)
	}

	a, err := treecut.Cut(d, treecut.Options{MinClusterSize: 2, CutHeight: 0.99})
	if err != nil {
		panic(err)
	}
	fmt.Println(a.Labels())
	// Output: [1 1 2 2]
}
