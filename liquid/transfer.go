package liquid

// Transfer pours the top block of send onto recv.
//
// The whole top run of send moves or nothing does: the pour fails when send
// is empty, when recv's top color differs, or when recv lacks room for the
// entire run. On failure the original tubes are returned unchanged with
// ok == false. Transfer is pure; calling it twice gives the same answer.
func Transfer(send, recv Tube) (newSend, newRecv Tube, ok bool) {
	if send.IsEmpty() {
		return send, recv, false
	}
	n, color := send.TopColor()
	_, top := recv.TopColor()
	if !recv.IsEmpty() && top != color {
		return send, recv, false
	}
	if recv.HowEmpty() < n {
		return send, recv, false
	}
	return send.drain(n), recv.fill(color, n), true
}
