package liquid

import (
	"errors"
	"fmt"
)

// Capacity is the number of layers every tube holds.
const Capacity = 4

// Sentinel errors for the state model.
var (
	// ErrInvalidTube is returned when liquid would float above an empty layer.
	ErrInvalidTube = errors.New("liquid: invalid tube: non-empty layer above an empty one")

	// ErrTooManyLayers is returned when more than Capacity layers are supplied.
	ErrTooManyLayers = errors.New("liquid: too many layers for one tube")

	// ErrActionIndex is returned when an Action addresses a missing tube
	// or pours a tube into itself.
	ErrActionIndex = errors.New("liquid: action index out of range")

	// ErrIllegalTransfer is returned by Apply when the pour is not allowed.
	ErrIllegalTransfer = errors.New("liquid: illegal transfer")

	// ErrUnbalanced is returned by Census when a color cannot fill whole tubes.
	ErrUnbalanced = errors.New("liquid: unbalanced color counts")
)

// Action addresses one pour by tube index. It carries no tube contents:
// applying the same Action to different states gives different results.
type Action struct {
	Send    int `json:"from" yaml:"from"`
	Receive int `json:"to" yaml:"to"`
}

// String renders the action as "send->receive".
func (a Action) String() string {
	return fmt.Sprintf("%d->%d", a.Send, a.Receive)
}

// Move pairs an Action with the state it produces.
type Move struct {
	Action Action
	State  State
}
