package liquid_test

import (
	"testing"

	"github.com/katalvlaran/tubesort/liquid"
)

func benchState() liquid.State {
	return liquid.NewState(
		liquid.MustTube(liquid.Red, liquid.Blue, liquid.Orange, liquid.Red),
		liquid.MustTube(liquid.Blue, liquid.Orange, liquid.Red, liquid.Blue),
		liquid.MustTube(liquid.Orange, liquid.Red, liquid.Blue, liquid.Orange),
		liquid.MustTube(liquid.Green, liquid.Green),
		liquid.MustTube(liquid.Green, liquid.Green),
		liquid.EmptyTube(),
	)
}

// BenchmarkNeighbors measures move generation on a six-tube state.
func BenchmarkNeighbors(b *testing.B) {
	s := benchState()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = liquid.Neighbors(s)
	}
}

// BenchmarkKey measures explored-set key construction.
func BenchmarkKey(b *testing.B) {
	s := benchState()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Key()
	}
}
