package liquid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// State is an ordered collection of tubes. Order only matters as the
// addressing scheme for Actions. The zero value is a state with no tubes.
type State struct {
	tubes []Tube
}

// NewState copies tubes into a new State.
func NewState(tubes ...Tube) State {
	return State{tubes: slices.Clone(tubes)}
}

// FromLayerLists builds a State from per-tube color lists, each listed
// bottom to top. Short lists are padded with Empty on top. The first
// invalid tube aborts construction; the error names its index.
func FromLayerLists(lists [][]Color) (State, error) {
	tubes := make([]Tube, len(lists))
	for i, layers := range lists {
		t, err := NewTube(layers...)
		if err != nil {
			return State{}, fmt.Errorf("tube %d: %w", i, err)
		}
		tubes[i] = t
	}
	return State{tubes: tubes}, nil
}

// LayerLists returns the liquid of every tube, bottom to top, without the
// trailing empty layers. FromLayerLists(s.LayerLists()) equals s.
func (s State) LayerLists() [][]Color {
	out := make([][]Color, len(s.tubes))
	for i, t := range s.tubes {
		layers := t.Layers()
		out[i] = append([]Color{}, layers[:t.Level()]...)
	}
	return out
}

// Len returns the number of tubes.
func (s State) Len() int { return len(s.tubes) }

// Tube returns the tube at index i.
func (s State) Tube(i int) Tube { return s.tubes[i] }

// Tubes returns a copy of the tube sequence.
func (s State) Tubes() []Tube { return slices.Clone(s.tubes) }

// IsSolved reports whether every tube is solved. A state with no tubes is
// trivially solved.
func (s State) IsSolved() bool {
	for _, t := range s.tubes {
		if !t.IsSolved() {
			return false
		}
	}
	return true
}

// Equal reports whether both states hold the same tubes in the same order.
func (s State) Equal(other State) bool {
	return slices.Equal(s.tubes, other.tubes)
}

// Key encodes the full ordered tube sequence. Two states share a Key
// exactly when they are Equal.
func (s State) Key() string {
	var b strings.Builder
	b.Grow(len(s.tubes) * (Capacity + 1))
	for _, t := range s.tubes {
		for _, c := range t.layers {
			writeColorKey(&b, c)
		}
		b.WriteByte('|')
	}
	return b.String()
}

// named tags map to single letters; Other keys are length-prefixed.
func writeColorKey(b *strings.Builder, c Color) {
	switch c.tag {
	case tagEmpty:
		b.WriteByte('.')
	case tagOther:
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(len(c.key)))
		b.WriteByte(':')
		b.WriteString(c.key)
	default:
		b.WriteByte('a' + byte(c.tag))
	}
}

// ColorCounts tallies the layers of every non-empty color.
func (s State) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, t := range s.tubes {
		for _, c := range t.layers {
			if !c.IsEmpty() {
				counts[c]++
			}
		}
	}
	return counts
}

// Census returns ErrUnbalanced when some color cannot exactly fill whole
// tubes. Such a puzzle has no solution, but the solver does not rely on
// this check; it is a diagnostic for input collaborators.
func (s State) Census() error {
	var bad []string
	for c, n := range s.ColorCounts() {
		if n%Capacity != 0 {
			bad = append(bad, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	slices.Sort(bad)
	return fmt.Errorf("%w: %s", ErrUnbalanced, strings.Join(bad, ", "))
}

// String renders the tubes separated by spaces.
func (s State) String() string {
	parts := make([]string, len(s.tubes))
	for i, t := range s.tubes {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// replace returns a copy of s with slots i and j set to ti and tj.
func (s State) replace(i int, ti Tube, j int, tj Tube) State {
	tubes := slices.Clone(s.tubes)
	tubes[i] = ti
	tubes[j] = tj
	return State{tubes: tubes}
}
