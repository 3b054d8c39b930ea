package verify_test

import (
	"fmt"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/verify"
)

// ExampleMinMoves finds the optimum without breadth-first search.
func ExampleMinMoves() {
	initial := liquid.NewState(
		liquid.MustTube(liquid.Orange, liquid.Blue, liquid.Orange, liquid.Blue),
		liquid.MustTube(liquid.Blue, liquid.Orange, liquid.Blue, liquid.Orange),
		liquid.EmptyTube(),
		liquid.EmptyTube(),
	)
	moves, found, err := verify.MinMoves(initial, 10)
	fmt.Println(moves, found, err)
	// Output:
	// 7 true <nil>
}
