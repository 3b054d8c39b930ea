// Package liquid provides the state model of the liquid-sorting puzzle:
// colors, fixed-capacity tubes, the pour (transfer) rule, whole-puzzle
// states and the single-pour neighbor generator.
//
// What
//
//   - Color: a closed set of named liquids plus an Other variant that carries
//     an opaque key (for example "#a1b2c3") for colors outside the known set.
//   - Tube: exactly Capacity layers, index 0 = bottom. Liquid is always a
//     contiguous block from the bottom; NewTube rejects any gap.
//   - Transfer: moves the whole top run of one tube onto another, or fails
//     and hands back the untouched inputs. There are no partial pours.
//   - State: an ordered list of tubes addressed by index, with an injective
//     Key used for explored-set membership.
//   - Neighbors / Apply: every legal single pour from a state, or one
//     specific pour addressed by an Action.
//
// Values
//
//	Tube and Color are comparable values; State copies on construction and
//	on access, so states handed out by Neighbors never alias each other.
//	Nothing in this package mutates its inputs.
//
// Determinism
//
//	Neighbors enumerates send index ascending, then receive index ascending.
//	Search strategies built on it inherit that order for tie-breaking.
//
// Errors
//
//   - ErrInvalidTube      a non-empty layer above an empty one.
//   - ErrTooManyLayers    more than Capacity layers supplied.
//   - ErrActionIndex      an Action addressing a missing tube or itself.
//   - ErrIllegalTransfer  Apply on a pour the rules forbid.
//   - ErrUnbalanced       Census found a color count not divisible by Capacity.
//
// An illegal pour is not an error for Transfer and Neighbors; it is simply
// a false ok flag or a missing move.
package liquid
