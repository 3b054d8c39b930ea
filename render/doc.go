// Package render draws puzzle states and move lists for terminals.
//
// Grid prints one row per layer, top layer first, so the picture reads like
// the tubes standing upright. Each cell is a two-letter tag; when the
// termenv profile supports color the cell background carries the liquid's
// display color. With the Ascii profile the output is plain text, which is
// what tests and pipes get.
//
//	or .. bl
//	or bl bl
//	 0  1  2
//
// Options:
//
//	WithProfile(p)  termenv color profile (default termenv.Ascii)
//	WithIndex(b)    append the tube index row (default true)
package render
