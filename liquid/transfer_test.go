package liquid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tubesort/liquid"
)

// TestTransfer_Rules walks the pour rules one by one.
func TestTransfer_Rules(t *testing.T) {
	cases := []struct {
		name     string
		send     liquid.Tube
		recv     liquid.Tube
		ok       bool
		wantSend liquid.Tube
		wantRecv liquid.Tube
	}{
		{
			name: "EmptyToEmpty",
			send: liquid.EmptyTube(), recv: liquid.EmptyTube(),
			ok: false, wantSend: liquid.EmptyTube(), wantRecv: liquid.EmptyTube(),
		},
		{
			name: "EmptyToHalf",
			send: liquid.EmptyTube(), recv: liquid.MustTube(O, O),
			ok: false, wantSend: liquid.EmptyTube(), wantRecv: liquid.MustTube(O, O),
		},
		{
			name: "HalfToEmpty",
			send: liquid.MustTube(O, O), recv: liquid.EmptyTube(),
			ok: true, wantSend: liquid.EmptyTube(), wantRecv: liquid.MustTube(O, O),
		},
		{
			name: "ColorMismatch",
			send: liquid.MustTube(O, O), recv: liquid.MustTube(B, B),
			ok: false, wantSend: liquid.MustTube(O, O), wantRecv: liquid.MustTube(B, B),
		},
		{
			name: "OnlyTopRunMoves",
			send: liquid.MustTube(B, O, O), recv: liquid.MustTube(O),
			ok: true, wantSend: liquid.MustTube(B), wantRecv: liquid.MustTube(O, O, O),
		},
		{
			name: "NoPartialPour",
			send: liquid.MustTube(B, O, O), recv: liquid.MustTube(O, O, O),
			ok: false, wantSend: liquid.MustTube(B, O, O), wantRecv: liquid.MustTube(O, O, O),
		},
		{
			name: "FullReceiver",
			send: liquid.MustTube(O), recv: liquid.MustTube(B, B, B, O),
			ok: false, wantSend: liquid.MustTube(O), wantRecv: liquid.MustTube(B, B, B, O),
		},
		{
			name: "CompletesTube",
			send: liquid.MustTube(O), recv: liquid.MustTube(O, O, O),
			ok: true, wantSend: liquid.EmptyTube(), wantRecv: liquid.MustTube(O, O, O, O),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotSend, gotRecv, ok := liquid.Transfer(tc.send, tc.recv)
			require.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.wantSend, gotSend, "send")
			assert.Equal(t, tc.wantRecv, gotRecv, "recv")
		})
	}
}

// TestTransfer_CrossColorScenario: A=[O,O], B=[B,B], C empty.
func TestTransfer_CrossColorScenario(t *testing.T) {
	a := liquid.MustTube(O, O)
	b := liquid.MustTube(B, B)
	c := liquid.EmptyTube()

	_, _, ok := liquid.Transfer(a, b)
	assert.False(t, ok, "A->B must fail on color mismatch")
	_, _, ok = liquid.Transfer(a, c)
	assert.True(t, ok, "A->C")
	_, _, ok = liquid.Transfer(b, c)
	assert.True(t, ok, "B->C")
}

// TestTransfer_PureAndIdempotent checks, over every pair of valid tubes of
// two colors, that failures return the inputs, repeated calls agree and the
// amount of liquid is conserved.
func TestTransfer_PureAndIdempotent(t *testing.T) {
	tubes := allTubes(O, B)
	for _, send := range tubes {
		for _, recv := range tubes {
			s1, r1, ok1 := liquid.Transfer(send, recv)
			s2, r2, ok2 := liquid.Transfer(send, recv)
			if ok1 != ok2 || s1 != s2 || r1 != r2 {
				t.Fatalf("Transfer(%v,%v) not deterministic", send, recv)
			}
			if !ok1 {
				if s1 != send || r1 != recv {
					t.Fatalf("failed Transfer(%v,%v) changed tubes to %v,%v", send, recv, s1, r1)
				}
				continue
			}
			if s1.Level()+r1.Level() != send.Level()+recv.Level() {
				t.Fatalf("Transfer(%v,%v) lost liquid: %v,%v", send, recv, s1, r1)
			}
			if s1.Level() >= send.Level() {
				t.Fatalf("successful Transfer(%v,%v) did not pour", send, recv)
			}
		}
	}
}
