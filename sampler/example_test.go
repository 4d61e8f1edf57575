package sampler_test

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/kinetics/sampler"
)

// ExampleNew draws a four-state candidate with the adjacency heuristic.
func ExampleNew() {
	s, err := sampler.New(sampler.KindAdjacent, 4)
	if err != nil {
		fmt.Println(err)
		return
	}
	T, err := s.Sample(rand.New(rand.NewSource(7)))
	if err != nil {
		fmt.Println(err)
		return
	}
	v02, _ := T.At(0, 2)
	v00, _ := T.At(0, 0)
	fmt.Println(T.Rows(), v02, v00)
	// Output:
	// 4 0 0
}
