package steadystate_test

import (
	"fmt"

	"github.com/katalvlaran/kinetics/matrix"
	"github.com/katalvlaran/kinetics/steadystate"
)

func ExampleSolve() {
	T, _ := matrix.NewDenseFrom([][]float64{
		{0.9, 0.1},
		{0.5, 0.5},
	})
	pi, err := steadystate.Solve(T)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f %.4f\n", pi[0], pi[1])
	// Output:
	// 0.8333 0.1667
}
