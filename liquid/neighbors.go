package liquid

import "fmt"

// Neighbors returns every state reachable from s with one legal pour,
// each paired with the Action that produced it. Pairs are tried with the
// send index outer and the receive index inner, both ascending; a tube is
// never poured into itself. The result may be empty.
func Neighbors(s State) []Move {
	var moves []Move
	for si, send := range s.tubes {
		for ri, recv := range s.tubes {
			if si == ri {
				continue
			}
			newSend, newRecv, ok := Transfer(send, recv)
			if !ok {
				continue
			}
			moves = append(moves, Move{
				Action: Action{Send: si, Receive: ri},
				State:  s.replace(si, newSend, ri, newRecv),
			})
		}
	}
	return moves
}

// Apply performs a single pour. It returns ErrActionIndex for an action
// that addresses a missing tube or pours a tube into itself, and
// ErrIllegalTransfer when the rules forbid the pour.
func Apply(s State, a Action) (State, error) {
	n := len(s.tubes)
	if a.Send < 0 || a.Send >= n || a.Receive < 0 || a.Receive >= n || a.Send == a.Receive {
		return s, fmt.Errorf("%w: %s with %d tubes", ErrActionIndex, a, n)
	}
	newSend, newRecv, ok := Transfer(s.tubes[a.Send], s.tubes[a.Receive])
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrIllegalTransfer, a)
	}
	return s.replace(a.Send, newSend, a.Receive, newRecv), nil
}
