// Package puzzlefile reads and writes puzzles and solutions as YAML or JSON.
//
// A puzzle document lists each tube's colors bottom to top by name:
//
//	name: level 8
//	tubes:
//	  - [orange, blue, orange, blue]
//	  - [blue, orange, blue, orange]
//	  - []
//	  - []
//
// Unknown names are kept as opaque liquid.Other colors. The format is
// chosen from the file extension: ".json" is JSON, anything else YAML.
package puzzlefile
