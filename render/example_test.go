package render_test

import (
	"fmt"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/render"
)

func ExampleGrid() {
	s := liquid.NewState(
		liquid.MustTube(liquid.Orange, liquid.Blue),
		liquid.MustTube(liquid.Blue, liquid.Orange),
		liquid.EmptyTube(),
	)
	out, _ := render.Grid(s)
	fmt.Print(out)
	// Output:
	// .. .. ..
	// .. .. ..
	// bl or ..
	// or bl ..
	//  0  1  2
}
