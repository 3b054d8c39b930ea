// Package tubesort finds the shortest solution of liquid sort puzzles:
// tubes of four stacked colored layers that must be poured until every
// tube holds a single color or nothing.
//
// 🚀 What is tubesort?
//
//	A small toolkit that brings together:
//		• Puzzle model: colors, tubes, the pour rule and neighbor generation
//		• Breadth-first search that returns a minimum-length pour sequence
//		• Independent checks: replay, exhaustive bounded search, minimum moves
//		• YAML/JSON puzzle files and terminal rendering
//		• Screenshot scanning by template matching
//		• Solution caching in memory, Badger or Redis, with Prometheus metrics
//
// ✨ Why tubesort?
//
//   - Values, not pointers: tubes and states are immutable and comparable
//   - Hooks everywhere: OnEnqueue, OnDequeue, OnVisit for tracing searches
//   - Optimal by construction, and verified by a second algorithm in tests
//
// Under the hood, everything is organized under these subpackages:
//
//	liquid/      Color, Tube, Transfer, State, Action, Neighbors
//	solver/      breadth-first Solve with limits, hooks and tracing
//	verify/      Replay, Check, SolvableWithin, MinMoves
//	puzzlefile/  puzzle and solution documents
//	render/      terminal grids and move lists
//	scan/        screenshot → State
//	cache/       memoized solving over pluggable stores
//	metrics/     Prometheus instruments
//	cmd/tubesort  the command line
//
// Quick ASCII example (top layer first):
//
//	or .. ..
//	or bl ..
//	or bl ..
//	bl or bl
//	 0  1  2
//
// sorts in three pours: 1 -> 2, 0 -> 1, 0 -> 2.
//
//	go install github.com/katalvlaran/tubesort/cmd/tubesort@latest
package tubesort
