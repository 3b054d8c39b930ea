package liquid

import "strings"

type tag uint8

const (
	tagEmpty tag = iota
	tagRed
	tagOrange
	tagYellow
	tagLime
	tagGreen
	tagTeal
	tagLightBlue
	tagBlue
	tagPurple
	tagPink
	tagBrown
	tagOther
)

// palette is indexed by tag; Other has no fixed name or hex.
var palette = [...]struct {
	name string
	hex  string
}{
	tagEmpty:     {"empty", ""},
	tagRed:       {"red", "#e53935"},
	tagOrange:    {"orange", "#fb8c00"},
	tagYellow:    {"yellow", "#fdd835"},
	tagLime:      {"lime", "#9ccc65"},
	tagGreen:     {"green", "#2e7d32"},
	tagTeal:      {"teal", "#26a69a"},
	tagLightBlue: {"lightblue", "#4fc3f7"},
	tagBlue:      {"blue", "#1e40af"},
	tagPurple:    {"purple", "#7e57c2"},
	tagPink:      {"pink", "#ec407a"},
	tagBrown:     {"brown", "#795548"},
}

var byName = func() map[string]tag {
	m := make(map[string]tag, len(palette))
	for t := tagEmpty; t < tagOther; t++ {
		m[palette[t].name] = t
	}
	return m
}()

// Color identifies the liquid in one layer. The zero value is Empty.
//
// Named colors compare by tag; Other colors compare by their key as well,
// so two Other values are equal only when their keys are identical.
type Color struct {
	tag tag
	key string
}

// Known colors.
var (
	Empty     = Color{}
	Red       = Color{tag: tagRed}
	Orange    = Color{tag: tagOrange}
	Yellow    = Color{tag: tagYellow}
	Lime      = Color{tag: tagLime}
	Green     = Color{tag: tagGreen}
	Teal      = Color{tag: tagTeal}
	LightBlue = Color{tag: tagLightBlue}
	Blue      = Color{tag: tagBlue}
	Purple    = Color{tag: tagPurple}
	Pink      = Color{tag: tagPink}
	Brown     = Color{tag: tagBrown}
)

// KnownColors returns the named liquids (Empty excluded) in a fixed order.
func KnownColors() []Color {
	out := make([]Color, 0, int(tagOther)-1)
	for t := tagRed; t < tagOther; t++ {
		out = append(out, Color{tag: t})
	}
	return out
}

// ParseColor maps a serialized name to a Color. Known names match
// case-insensitively; "" and "empty" give Empty; anything else becomes an
// Other color keyed by the literal string.
func ParseColor(s string) Color {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Empty
	}
	if t, ok := byName[name]; ok {
		return Color{tag: t}
	}
	return Color{tag: tagOther, key: s}
}

// Other returns a color for a key outside the known set. A key that names
// a known color resolves to that color, so every Color round-trips through
// its text form.
func Other(key string) Color {
	return ParseColor(key)
}

// IsEmpty reports whether c is the empty layer.
func (c Color) IsEmpty() bool { return c.tag == tagEmpty }

// IsOther reports whether c carries an opaque key.
func (c Color) IsOther() bool { return c.tag == tagOther }

// Key returns the opaque key of an Other color, or "" for named colors.
func (c Color) Key() string { return c.key }

// String returns the serialized name: the lowercase name for known colors
// and the key for Other colors.
func (c Color) String() string {
	if c.tag == tagOther {
		return c.key
	}
	return palette[c.tag].name
}

// Hex returns a "#rrggbb" display color. Other colors only have one when
// their key is itself a hex triple.
func (c Color) Hex() string {
	if c.tag != tagOther {
		return palette[c.tag].hex
	}
	if isHexTriple(c.key) {
		return strings.ToLower(c.key)
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	*c = ParseColor(string(text))
	return nil
}

func isHexTriple(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
