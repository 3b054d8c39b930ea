package liquid

import (
	"fmt"
	"strings"
)

// Tube is a fixed-capacity stack of layers, index 0 = bottom.
// The zero value is the empty tube. Tubes are values: every operation
// returns a new Tube and leaves the receiver untouched.
type Tube struct {
	layers [Capacity]Color
}

// EmptyTube returns a tube with no liquid.
func EmptyTube() Tube { return Tube{} }

// NewTube builds a tube from layers listed bottom to top. Fewer than
// Capacity layers are padded with Empty on top. A gap (liquid above an
// empty layer) returns ErrInvalidTube; the input is never repaired.
func NewTube(layers ...Color) (Tube, error) {
	if len(layers) > Capacity {
		return Tube{}, fmt.Errorf("%w: got %d, capacity %d", ErrTooManyLayers, len(layers), Capacity)
	}
	var t Tube
	seenEmpty := false
	for i, c := range layers {
		if c.IsEmpty() {
			seenEmpty = true
			continue
		}
		if seenEmpty {
			return Tube{}, fmt.Errorf("%w: layer %d is %s", ErrInvalidTube, i, c)
		}
		t.layers[i] = c
	}
	return t, nil
}

// MustTube is like NewTube but panics on invalid input. Meant for fixtures.
func MustTube(layers ...Color) Tube {
	t, err := NewTube(layers...)
	if err != nil {
		panic(err)
	}
	return t
}

// Layers returns a copy of the layers, bottom to top.
func (t Tube) Layers() [Capacity]Color { return t.layers }

// Layer returns the layer at index i (0 = bottom).
func (t Tube) Layer(i int) Color { return t.layers[i] }

// HowEmpty counts the free layers above the liquid.
func (t Tube) HowEmpty() int {
	n := 0
	for i := Capacity - 1; i >= 0 && t.layers[i].IsEmpty(); i-- {
		n++
	}
	return n
}

// Level counts the layers holding liquid.
func (t Tube) Level() int { return Capacity - t.HowEmpty() }

// IsEmpty reports whether the tube holds no liquid.
func (t Tube) IsEmpty() bool { return t.layers[0].IsEmpty() }

// IsFull reports whether the tube has no free capacity.
func (t Tube) IsFull() bool { return !t.layers[Capacity-1].IsEmpty() }

// TopColor returns the length and color of the contiguous same-colored
// block on top of the liquid. An empty tube yields (0, Empty).
func (t Tube) TopColor() (int, Color) {
	i := Capacity - 1
	for i >= 0 && t.layers[i].IsEmpty() {
		i--
	}
	if i < 0 {
		return 0, Empty
	}
	top := t.layers[i]
	n := 0
	for ; i >= 0 && t.layers[i] == top; i-- {
		n++
	}
	return n, top
}

// IsSolved reports whether the tube is empty or full of a single color.
func (t Tube) IsSolved() bool {
	if t.IsEmpty() {
		return true
	}
	n, _ := t.TopColor()
	return n == Capacity
}

// String renders the layers bottom to top, Empty as "-".
func (t Tube) String() string {
	parts := make([]string, Capacity)
	for i, c := range t.layers {
		if c.IsEmpty() {
			parts[i] = "-"
			continue
		}
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// drain removes the top n layers.
func (t Tube) drain(n int) Tube {
	level := t.Level()
	for i := level - n; i < level; i++ {
		t.layers[i] = Empty
	}
	return t
}

// fill stacks n layers of c on top of the liquid; the caller checks capacity.
func (t Tube) fill(c Color, n int) Tube {
	level := t.Level()
	for i := level; i < level+n; i++ {
		t.layers[i] = c
	}
	return t
}
