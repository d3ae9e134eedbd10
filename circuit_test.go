package nandsim_test

import (
	"testing"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

func TestCircuit_idempotentTick(t *testing.T) {
	// out = a XOR b, gates in reverse order to force several sweeps
	gates := []nandsim.Gate{
		{A: 5, B: 6, Y: 7},
		{A: 3, B: 4, Y: 6},
		{A: 2, B: 4, Y: 5},
		{A: 2, B: 3, Y: 4},
	}
	nl, err := nandsim.NewNetlist("xor", gates, map[string][]nandsim.Node{
		"a": {2}, "b": {3}, "out": {7},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := nandsim.NewCircuit(nl, 0)
	s := c.State()
	for v := uint64(0); v < 4; v++ {
		if err = s.Set([]nandsim.Node{2, 3}, v); err != nil {
			t.Fatal(err)
		}
		if err = c.Tick(); err != nil {
			t.Fatal(err)
		}
		if out, _ := s.Bit(7); out != (v == 1 || v == 2) {
			t.Fatalf("%02b: bad xor output %v", v, out)
		}
		if err = c.Tick(); err != nil {
			t.Fatal(err)
		}
		if u := s.Updates(); u != 0 {
			t.Fatalf("second tick made %d updates", u)
		}
	}
	if c.Ticks() != 8 {
		t.Fatalf("expected 8 ticks, got %d", c.Ticks())
	}
	if c.Size() != 4 {
		t.Fatalf("expected 4 gates, got %d", c.Size())
	}
}

func TestCircuit_divergence(t *testing.T) {
	// ring oscillator
	nl, err := nandsim.NewNetlist("osc", []nandsim.Gate{{A: 2, B: 2, Y: 2}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := nandsim.NewCircuit(nl, 16)
	err = c.Tick()
	e, ok := errors.Cause(err).(*nandsim.DivergenceError)
	if !ok {
		t.Fatalf("expected DivergenceError, got %v", err)
	}
	if e.Sweeps != 16 || e.Updates != 1 {
		t.Fatalf("bad error: %v", e)
	}
	trace(t, err)
}

func TestCircuit_latch(t *testing.T) {
	// SR latch from cross coupled NANDs: q = 4, qn = 5, active low inputs
	nl, err := nandsim.NewNetlist("sr", []nandsim.Gate{
		{A: 2, B: 5, Y: 4},
		{A: 3, B: 4, Y: 5},
	}, map[string][]nandsim.Node{"sn": {2}, "rn": {3}, "q": {4}})
	if err != nil {
		t.Fatal(err)
	}
	c := nandsim.NewCircuit(nl, 0)
	s := c.State()
	step := func(sn, rn, q bool) {
		t.Helper()
		s.SetBit(2, sn)
		s.SetBit(3, rn)
		if err := c.Tick(); err != nil {
			t.Fatal(err)
		}
		if v, _ := s.Bit(4); v != q {
			t.Fatalf("sn=%v rn=%v: expected q=%v", sn, rn, q)
		}
	}
	step(false, true, true)
	step(true, true, true)
	step(true, false, false)
	step(true, true, false)
}
