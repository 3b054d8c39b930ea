// Package scan turns a screenshot of a level into a liquid.State.
//
// What:
//
//	LocateTubeCenters finds tubes by template matching a full-tube and an
//	empty-tube picture against a downscaled grayscale copy of the level.
//	SampleTubeColors then reads one pixel patch per layer below and above
//	each center and maps it to a color.
//
// How (LocateTubeCenters):
//
//  1. Crop the top CropTop and bottom CropBottom fractions of the level
//     (status bars and buttons).
//  2. Convert level and templates to gray and shrink them by Scale with
//     golang.org/x/image/draw's BiLinear kernel.
//  3. Score every template position with normalized sum of squared
//     errors, once per template, and multiply the two score maps. A tube
//     matches one template well, so its product is low.
//  4. Quantize the product to 0..255 and keep strict 4-neighbour minima
//     below Threshold.
//  5. Drop any minimum that has a strictly lower minimum within Radius
//     match pixels.
//  6. Map the survivors back to full-resolution template centers and sort
//     them in reading order, row by row.
//
// Complexity:
//
//	O(W*H*w*h) on the shrunk images, where W*H is the level and w*h the
//	template. Shrinking by 10 keeps this to a few million operations for
//	phone screenshots.
//
// Errors:
//
//	ErrOptionViolation   bad option value
//	ErrImageTooSmall     level or template collapses below one pixel, or
//	                     the template is larger than the level
//	ErrTemplateMismatch  full and empty templates differ in size
//	ErrNoTubes           no minima survived
//	ErrMalformedTube     sampled colors form a tube with a gap
package scan
