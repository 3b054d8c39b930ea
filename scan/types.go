package scan

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tubesort/liquid"
)

var (
	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("scan: option violation")
	// ErrImageTooSmall indicates an image too small to scan at the chosen scale.
	ErrImageTooSmall = errors.New("scan: image too small")
	// ErrTemplateMismatch indicates full and empty templates of different sizes.
	ErrTemplateMismatch = errors.New("scan: templates differ in size")
	// ErrNoTubes indicates that no tube was found.
	ErrNoTubes = errors.New("scan: no tubes found")
	// ErrMalformedTube indicates sampled layers that do not form a valid tube.
	ErrMalformedTube = errors.New("scan: malformed tube")
)

// Options configures scanning.
type Options struct {
	// CropTop and CropBottom are the fractions of the level height ignored
	// at the top and bottom.
	CropTop, CropBottom float64

	// Scale is the shrink factor applied before matching.
	Scale int

	// Threshold is the highest quantized score accepted as a tube (exclusive).
	Threshold uint8

	// Radius is the suppression distance between minima, in match pixels.
	Radius float64

	// LayerOffsets are vertical offsets from a tube center, in full
	// resolution pixels, of the four sampled layers, bottom first.
	// Positive offsets point down.
	LayerOffsets [liquid.Capacity]int

	// SampleRadius is the half-size of the square patch averaged per layer.
	SampleRadius int

	// GrayTolerance is the largest channel spread still read as Empty.
	GrayTolerance int

	// Palette maps sampled colors to the nearest known color within
	// PaletteTolerance (Euclidean RGB distance). Otherwise colors become
	// liquid.Other("#rrggbb").
	Palette          bool
	PaletteTolerance float64

	Logger *slog.Logger

	err error
}

// Option configures scanning via functional arguments.
type Option func(*Options)

// DefaultOptions returns the settings tuned for phone screenshots.
func DefaultOptions() Options {
	return Options{
		CropTop:          0.25,
		CropBottom:       0.15,
		Scale:            10,
		Threshold:        100,
		Radius:           20,
		LayerOffsets:     [liquid.Capacity]int{60, 20, -20, -60},
		SampleRadius:     2,
		GrayTolerance:    24,
		PaletteTolerance: 60,
		Logger:           slog.New(slog.DiscardHandler),
	}
}

// WithCrop sets the ignored top and bottom fractions.
func WithCrop(top, bottom float64) Option {
	return func(o *Options) {
		if top < 0 || bottom < 0 || top+bottom >= 1 {
			o.err = fmt.Errorf("%w: crop %.2f/%.2f", ErrOptionViolation, top, bottom)
			return
		}
		o.CropTop, o.CropBottom = top, bottom
	}
}

// WithScale sets the shrink factor; 1 disables shrinking.
func WithScale(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: scale %d", ErrOptionViolation, n)
			return
		}
		o.Scale = n
	}
}

// WithThreshold sets the match acceptance threshold.
func WithThreshold(t uint8) Option {
	return func(o *Options) { o.Threshold = t }
}

// WithRadius sets the minimum suppression radius.
func WithRadius(r float64) Option {
	return func(o *Options) {
		if r < 0 {
			o.err = fmt.Errorf("%w: radius %.1f", ErrOptionViolation, r)
			return
		}
		o.Radius = r
	}
}

// WithLayerOffsets sets the sampled rows, bottom layer first.
func WithLayerOffsets(offsets [liquid.Capacity]int) Option {
	return func(o *Options) { o.LayerOffsets = offsets }
}

// WithGrayTolerance sets the channel spread read as Empty.
func WithGrayTolerance(n int) Option {
	return func(o *Options) {
		if n < 0 || n > 255 {
			o.err = fmt.Errorf("%w: gray tolerance %d", ErrOptionViolation, n)
			return
		}
		o.GrayTolerance = n
	}
}

// WithPalette snaps sampled colors to known colors within tolerance.
func WithPalette(tolerance float64) Option {
	return func(o *Options) {
		if tolerance < 0 {
			o.err = fmt.Errorf("%w: palette tolerance %.1f", ErrOptionViolation, tolerance)
			return
		}
		o.Palette = true
		o.PaletteTolerance = tolerance
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
