// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/nandsim"
)

// MaxExhaustive is the largest total input width for which ComparePart tries
// every input combination. Wider parts are tested with random inputs.
//
const MaxExhaustive = 12

// Ref is a reference implementation of a combinational part. It receives the
// value of each input signal and returns the value of each output signal.
//
type Ref func(in []uint64) []uint64

type bus struct {
	name string
	bits []nandsim.Node
}

func (b *bus) mask() uint64 {
	if len(b.bits) >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(len(b.bits)) - 1
}

func lookup(t *testing.T, nl *nandsim.Netlist, names []string) []bus {
	t.Helper()
	out := make([]bus, len(names))
	for i, n := range names {
		bits, err := nl.Signal(n)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = bus{n, bits}
	}
	return out
}

// ComparePart drives the named inputs of a combinational netlist and compares
// the named outputs against the reference function.
//
func ComparePart(t *testing.T, nl *nandsim.Netlist, inputs, outputs []string, ref Ref) {
	t.Helper()

	ins, outs := lookup(t, nl, inputs), lookup(t, nl, outputs)
	total := 0
	for _, b := range ins {
		total += len(b.bits)
	}

	c := nandsim.NewCircuit(nl, 0)
	s := c.State()
	vals := make([]uint64, len(ins))

	errString := func(o int, ex, got uint64) string {
		var b strings.Builder
		for i, in := range ins {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%d", in.name, vals[i])
		}
		return fmt.Sprintf("%s: expected %s => %s=%d, got %d", nl.Module, b.String(), outs[o].name, ex, got)
	}

	check := func() {
		t.Helper()
		for i, b := range ins {
			if err := s.Set(b.bits, vals[i]); err != nil {
				t.Fatal(err)
			}
		}
		if err := c.Tick(); err != nil {
			t.Fatal(err)
		}
		want := ref(append([]uint64(nil), vals...))
		for o, b := range outs {
			got, err := s.Get(b.bits)
			if err != nil {
				t.Fatal(err)
			}
			if ex := want[o] & b.mask(); got != ex {
				t.Fatal(errString(o, ex, got))
			}
		}
	}

	start := time.Now()
	n := 0
	if total <= MaxExhaustive {
		for v := uint64(0); v < 1<<uint(total); v++ {
			x := v
			for i, b := range ins {
				vals[i] = x & b.mask()
				x >>= uint(len(b.bits))
			}
			check()
			n++
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		// all 0, all 1, then random
		check()
		for i, b := range ins {
			vals[i] = b.mask()
		}
		check()
		n += 2
		for ; n < 1<<MaxExhaustive; n++ {
			for i, b := range ins {
				vals[i] = rnd.Uint64() & b.mask()
			}
			check()
		}
	}
	elapsed := time.Since(start)
	t.Logf("%s: %d gates. %d vectors, %d sweeps in %v", nl.Module, c.Size(), n, c.Sweeps(), elapsed)
}
