package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/katalvlaran/tubesort/liquid"
)

// ErrOptionViolation reports an invalid option value.
var ErrOptionViolation = errors.New("render: option violation")

// Options holds rendering parameters.
type Options struct {
	Profile termenv.Profile
	Index   bool

	err error
}

// Option configures rendering.
type Option func(*Options)

// DefaultOptions returns plain-text output with the index row.
func DefaultOptions() Options {
	return Options{Profile: termenv.Ascii, Index: true}
}

// WithProfile selects the termenv color profile.
func WithProfile(p termenv.Profile) Option {
	return func(o *Options) {
		if p < termenv.TrueColor || p > termenv.Ascii {
			o.err = fmt.Errorf("%w: unknown profile %d", ErrOptionViolation, p)
			return
		}
		o.Profile = p
	}
}

// WithIndex toggles the trailing row of tube indexes.
func WithIndex(on bool) Option {
	return func(o *Options) { o.Index = on }
}

var tags = map[liquid.Color]string{
	liquid.Red:       "rd",
	liquid.Orange:    "or",
	liquid.Yellow:    "ye",
	liquid.Lime:      "li",
	liquid.Green:     "gr",
	liquid.Teal:      "te",
	liquid.LightBlue: "lb",
	liquid.Blue:      "bl",
	liquid.Purple:    "pu",
	liquid.Pink:      "pk",
	liquid.Brown:     "br",
}

// Tag returns the two-letter cell label of c: ".." for Empty, lowercase
// letters for known colors and two uppercase characters taken from the key
// of any other color, skipping a leading '#'. Keys shorter than two
// characters are padded with '?'.
func Tag(c liquid.Color) string {
	if c.IsEmpty() {
		return ".."
	}
	if t, ok := tags[c]; ok {
		return t
	}
	key := []rune(strings.ToUpper(strings.TrimPrefix(c.Key(), "#")))
	for len(key) < 2 {
		key = append(key, '?')
	}
	return string(key[:2])
}

// Grid draws s, top layer first.
func Grid(s liquid.State, opts ...Option) (string, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return "", o.err
	}

	var b strings.Builder
	cells := make([]string, s.Len())
	for layer := liquid.Capacity - 1; layer >= 0; layer-- {
		for i := range cells {
			cells[i] = cell(o.Profile, s.Tube(i).Layer(layer))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	if o.Index {
		for i := range cells {
			cells[i] = fmt.Sprintf("%2d", i)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func cell(p termenv.Profile, c liquid.Color) string {
	text := Tag(c)
	hex := c.Hex()
	if hex == "" {
		return text
	}
	fg := "#ffffff"
	if light(hex) {
		fg = "#000000"
	}
	return p.String(text).Background(p.Color(hex)).Foreground(p.Color(fg)).String()
}

// light reports whether a #rrggbb color needs dark text on top of it.
func light(hex string) bool {
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return false
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r+0.587*g+0.114*b > 150
}

// Moves lists actions one per line, numbered from 1.
func Moves(actions []liquid.Action) string {
	var b strings.Builder
	for i, a := range actions {
		fmt.Fprintf(&b, "%d. %d -> %d\n", i+1, a.Send, a.Receive)
	}
	return b.String()
}

// Steps draws initial and the state after every action, each grid headed
// by the move that produced it.
func Steps(initial liquid.State, actions []liquid.Action, opts ...Option) (string, error) {
	var b strings.Builder
	grid, err := Grid(initial, opts...)
	if err != nil {
		return "", err
	}
	b.WriteString("start\n")
	b.WriteString(grid)

	cur := initial
	for i, a := range actions {
		next, err := liquid.Apply(cur, a)
		if err != nil {
			return "", fmt.Errorf("render: step %d: %w", i+1, err)
		}
		if grid, err = Grid(next, opts...); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n%d. %d -> %d\n", i+1, a.Send, a.Receive)
		b.WriteString(grid)
		cur = next
	}
	return b.String(), nil
}
