package solver_test

import "github.com/katalvlaran/tubesort/liquid"

var (
	O = liquid.Orange
	B = liquid.Blue
	R = liquid.Red
)

func act(send, recv int) liquid.Action { return liquid.Action{Send: send, Receive: recv} }

// twoTubes: one orange layer next to three; one pour solves it.
func twoTubes() liquid.State {
	return liquid.NewState(liquid.MustTube(O), liquid.MustTube(O, O, O))
}

// interleaved: two alternating full tubes and two spares; seven pours.
func interleaved() liquid.State {
	return liquid.NewState(
		liquid.MustTube(O, B, O, B),
		liquid.MustTube(B, O, B, O),
		liquid.EmptyTube(),
		liquid.EmptyTube(),
	)
}

// threeColors: three mixed tubes and two spares; ten pours.
func threeColors() liquid.State {
	return liquid.NewState(
		liquid.MustTube(R, B, O, R),
		liquid.MustTube(B, O, R, B),
		liquid.MustTube(O, R, B, O),
		liquid.EmptyTube(),
		liquid.EmptyTube(),
	)
}

// deadlocked: two full mixed tubes, no room to pour.
func deadlocked() liquid.State {
	return liquid.NewState(liquid.MustTube(O, B, O, B), liquid.MustTube(B, O, B, O))
}

// unbalanced: moves exist but no color can ever fill a tube.
func unbalanced() liquid.State {
	return liquid.NewState(liquid.MustTube(O), liquid.MustTube(B), liquid.EmptyTube())
}
