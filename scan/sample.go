package scan

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	// decoders for LoadImage
	_ "image/jpeg"
	_ "image/png"

	"github.com/katalvlaran/tubesort/liquid"
)

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// SampleTubeColors reads the four layers of every tube centered at centers.
func SampleTubeColors(level image.Image, centers []image.Point, opts ...Option) (liquid.State, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return liquid.State{}, err
	}
	if len(centers) == 0 {
		return liquid.State{}, ErrNoTubes
	}

	b := level.Bounds()
	tubes := make([]liquid.Tube, len(centers))
	for i, c := range centers {
		var layers [liquid.Capacity]liquid.Color
		for l, off := range o.LayerOffsets {
			p := image.Point{X: c.X, Y: c.Y + off}
			if !p.In(b) {
				return liquid.State{}, fmt.Errorf("%w: tube %d layer %d at %v outside %v", ErrImageTooSmall, i, l, p, b)
			}
			layers[l] = classify(average(level, p, o.SampleRadius), o)
		}
		t, err := liquid.NewTube(layers[:]...)
		if err != nil {
			return liquid.State{}, fmt.Errorf("%w: tube %d: %w", ErrMalformedTube, i, err)
		}
		tubes[i] = t
	}
	s := liquid.NewState(tubes...)
	if err := s.Census(); err != nil {
		o.Logger.Warn("scanned puzzle is unbalanced", "err", err)
	}
	return s, nil
}

// Scan locates tubes in level and samples their colors.
func Scan(level, full, empty image.Image, opts ...Option) (liquid.State, []image.Point, error) {
	centers, err := LocateTubeCenters(level, full, empty, opts...)
	if err != nil {
		return liquid.State{}, nil, err
	}
	s, err := SampleTubeColors(level, centers, opts...)
	if err != nil {
		return liquid.State{}, centers, err
	}
	return s, centers, nil
}

// average returns the mean color of the square patch around p, clipped to
// the image.
func average(img image.Image, p image.Point, radius int) color.RGBA {
	patch := image.Rect(p.X-radius, p.Y-radius, p.X+radius+1, p.Y+radius+1).Intersect(img.Bounds())
	var r, g, b, n uint64
	for y := patch.Min.Y; y < patch.Max.Y; y++ {
		for x := patch.Min.X; x < patch.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			b += uint64(c.B)
			n++
		}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xff}
}

// classify maps a sampled color to a layer.
func classify(c color.RGBA, o Options) liquid.Color {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	if int(hi)-int(lo) <= o.GrayTolerance {
		return liquid.Empty
	}
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	if !o.Palette {
		return liquid.Other(hex)
	}

	best, bestDist := liquid.Empty, math.Inf(1)
	for _, known := range liquid.KnownColors() {
		d := distance(c, known.Hex())
		if d < bestDist {
			best, bestDist = known, d
		}
	}
	if bestDist <= o.PaletteTolerance {
		return best
	}
	return liquid.Other(hex)
}

func distance(c color.RGBA, hex string) float64 {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return math.Inf(1)
	}
	dr, dg, db := float64(c.R)-float64(r), float64(c.G)-float64(g), float64(c.B)-float64(b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
