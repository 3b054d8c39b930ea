package scan

import (
	"fmt"
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"
)

// scoreMap is a dense row-major grid of match scores.
type scoreMap struct {
	w, h int
	v    []float64
}

func (m *scoreMap) at(x, y int) float64 { return m.v[y*m.w+x] }

// LocateTubeCenters returns the full-resolution centers of every tube found
// in level, in reading order.
func LocateTubeCenters(level, full, empty image.Image, opts ...Option) ([]image.Point, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if full.Bounds().Size() != empty.Bounds().Size() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrTemplateMismatch, full.Bounds().Size(), empty.Bounds().Size())
	}

	lb := level.Bounds()
	top := lb.Min.Y + int(float64(lb.Dy())*o.CropTop)
	height := int((1 - o.CropTop - o.CropBottom) * float64(lb.Dy()))
	crop := image.Rect(lb.Min.X, top, lb.Max.X, top+height)

	smallLevel, err := shrink(level, crop, o.Scale)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	smallFull, err := shrink(full, full.Bounds(), o.Scale)
	if err != nil {
		return nil, fmt.Errorf("full template: %w", err)
	}
	smallEmpty, err := shrink(empty, empty.Bounds(), o.Scale)
	if err != nil {
		return nil, fmt.Errorf("empty template: %w", err)
	}
	tw, th := smallFull.Bounds().Dx(), smallFull.Bounds().Dy()
	if tw > smallLevel.Bounds().Dx() || th > smallLevel.Bounds().Dy() {
		return nil, fmt.Errorf("%w: template %dx%d exceeds level %v", ErrImageTooSmall, tw, th, smallLevel.Bounds().Size())
	}

	fullScores := matchTemplate(smallLevel, smallFull)
	emptyScores := matchTemplate(smallLevel, smallEmpty)
	combined := quantize(fullScores, emptyScores)

	minima := localMinima(combined, o.Threshold)
	o.Logger.Debug("template minima", "candidates", len(minima), "threshold", o.Threshold)
	minima = lonelyMinima(combined, minima, o.Radius)
	if len(minima) == 0 {
		return nil, ErrNoTubes
	}

	sx := float64(crop.Dx()) / float64(smallLevel.Bounds().Dx())
	sy := float64(crop.Dy()) / float64(smallLevel.Bounds().Dy())
	centers := make([]image.Point, len(minima))
	for i, m := range minima {
		centers[i] = image.Point{
			X: crop.Min.X + int(math.Round((float64(m.X)+float64(tw)/2)*sx)),
			Y: crop.Min.Y + int(math.Round((float64(m.Y)+float64(th)/2)*sy)),
		}
	}
	sortReadingOrder(centers, full.Bounds().Dy()/2)
	o.Logger.Debug("tubes located", "count", len(centers))
	return centers, nil
}

// shrink converts r of src to gray and scales it down by factor.
func shrink(src image.Image, r image.Rectangle, factor int) (*image.Gray, error) {
	w, h := r.Dx()/factor, r.Dy()/factor
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %v at scale 1/%d", ErrImageTooSmall, r.Size(), factor)
	}
	gray := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(gray, gray.Bounds(), src, r.Min, draw.Src)
	if factor == 1 {
		return gray, nil
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return dst, nil
}

// matchTemplate scores every placement of tmpl inside img with the sum of
// squared errors normalized by the root of both energies. 0 is a perfect
// match.
func matchTemplate(img, tmpl *image.Gray) *scoreMap {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	tw, th := tmpl.Bounds().Dx(), tmpl.Bounds().Dy()
	m := &scoreMap{w: iw - tw + 1, h: ih - th + 1}
	m.v = make([]float64, m.w*m.h)

	var tEnergy float64
	for _, p := range tmpl.Pix {
		tEnergy += float64(p) * float64(p)
	}

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			var sse, iEnergy float64
			for dy := 0; dy < th; dy++ {
				row := img.Pix[(y+dy)*img.Stride+x:]
				trow := tmpl.Pix[dy*tmpl.Stride:]
				for dx := 0; dx < tw; dx++ {
					iv, tv := float64(row[dx]), float64(trow[dx])
					d := iv - tv
					sse += d * d
					iEnergy += iv * iv
				}
			}
			denom := math.Sqrt(tEnergy * iEnergy)
			switch {
			case sse == 0:
				m.v[y*m.w+x] = 0
			case denom == 0:
				m.v[y*m.w+x] = 1
			default:
				m.v[y*m.w+x] = sse / denom
			}
		}
	}
	return m
}

// quantize multiplies two score maps and maps the product onto 0..255,
// saturating.
func quantize(a, b *scoreMap) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, a.w, a.h))
	for i := range a.v {
		v := a.v[i] * b.v[i] * 255
		switch {
		case v <= 0:
			out.Pix[i] = 0
		case v >= 255:
			out.Pix[i] = 255
		default:
			out.Pix[i] = uint8(v)
		}
	}
	return out
}

// localMinima returns interior pixels strictly lower than their four
// neighbours and below threshold.
func localMinima(img *image.Gray, threshold uint8) []image.Point {
	b := img.Bounds()
	var out []image.Point
	for x := 1; x < b.Dx()-1; x++ {
		for y := 1; y < b.Dy()-1; y++ {
			v := img.GrayAt(x, y).Y
			if v >= threshold {
				continue
			}
			if v < img.GrayAt(x-1, y).Y && v < img.GrayAt(x+1, y).Y &&
				v < img.GrayAt(x, y-1).Y && v < img.GrayAt(x, y+1).Y {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// lonelyMinima keeps the minima with no strictly lower minimum closer than
// radius. Equal neighbours survive together.
func lonelyMinima(img *image.Gray, minima []image.Point, radius float64) []image.Point {
	var out []image.Point
	for _, m := range minima {
		keep := true
		mv := img.GrayAt(m.X, m.Y).Y
		for _, n := range minima {
			dx, dy := float64(m.X-n.X), float64(m.Y-n.Y)
			if math.Hypot(dx, dy) < radius && mv > img.GrayAt(n.X, n.Y).Y {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out
}

// sortReadingOrder orders points top to bottom in rows, then left to
// right. Points within rowSlack pixels vertically share a row.
func sortReadingOrder(pts []image.Point, rowSlack int) {
	slices.SortFunc(pts, func(a, b image.Point) int { return a.Y - b.Y })
	rowStart := 0
	for i := 1; i <= len(pts); i++ {
		if i == len(pts) || pts[i].Y-pts[rowStart].Y > rowSlack {
			slices.SortFunc(pts[rowStart:i], func(a, b image.Point) int {
				if a.X != b.X {
					return a.X - b.X
				}
				return a.Y - b.Y
			})
			rowStart = i
		}
	}
}
