// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib builds NAND-only netlists from logic parts: gates,
// multiplexers, adders and clocked storage.
//
// Every part is a method on Chip that takes input nodes and returns freshly
// allocated output nodes. Parts that close a feedback loop, like flip-flops,
// also come in a ...To form that drives pre-allocated nodes.
//
package hwlib

import (
	"github.com/db47h/nandsim"
)

// Not returns a NOT gate.
//
//	Function: out = !in
//
func (c *Chip) Not(in nandsim.Node) nandsim.Node {
	return c.Nand(in, in)
}

// And returns a AND gate.
//
//	Function: out = a && b
//
func (c *Chip) And(a, b nandsim.Node) nandsim.Node {
	return c.Not(c.Nand(a, b))
}

// Or returns a OR gate.
//
//	Function: out = a || b
//
func (c *Chip) Or(a, b nandsim.Node) nandsim.Node {
	return c.Nand(c.Not(a), c.Not(b))
}

// Nor returns a NOR gate.
//
//	Function: out = !(a || b)
//
func (c *Chip) Nor(a, b nandsim.Node) nandsim.Node {
	return c.Not(c.Or(a, b))
}

// Xor returns a XOR gate.
//
//	Function: out = (a && !b) || (!a && b)
//
func (c *Chip) Xor(a, b nandsim.Node) nandsim.Node {
	t := c.Nand(a, b)
	return c.Nand(c.Nand(a, t), c.Nand(b, t))
}

// Xnor returns a XNOR gate.
//
//	Function: out = a && b || !a && !b
//
func (c *Chip) Xnor(a, b nandsim.Node) nandsim.Node {
	return c.Not(c.Xor(a, b))
}

// NotN returns a bitwise NOT of in.
//
func (c *Chip) NotN(in []nandsim.Node) []nandsim.Node {
	out := make([]nandsim.Node, len(in))
	for i, n := range in {
		out[i] = c.Not(n)
	}
	return out
}

// XorN returns a bitwise XOR of a and b. It panics if the buses have
// different widths.
//
func (c *Chip) XorN(a, b []nandsim.Node) []nandsim.Node {
	checkWidth(a, b)
	out := make([]nandsim.Node, len(a))
	for i := range a {
		out[i] = c.Xor(a[i], b[i])
	}
	return out
}

// AndN returns the AND of all bits of in.
//
func (c *Chip) AndN(in []nandsim.Node) nandsim.Node {
	if len(in) == 0 {
		return nandsim.True
	}
	out := in[0]
	for _, n := range in[1:] {
		out = c.And(out, n)
	}
	return out
}

// OrN returns the OR of all bits of in.
//
func (c *Chip) OrN(in []nandsim.Node) nandsim.Node {
	if len(in) == 0 {
		return nandsim.False
	}
	out := in[0]
	for _, n := range in[1:] {
		out = c.Or(out, n)
	}
	return out
}

// Equal returns a node set when the value of in equals v.
//
func (c *Chip) Equal(in []nandsim.Node, v uint64) nandsim.Node {
	bits := make([]nandsim.Node, len(in))
	for i, n := range in {
		if v&(1<<uint(i)) != 0 {
			bits[i] = n
		} else {
			bits[i] = c.Not(n)
		}
	}
	return c.AndN(bits)
}

// Const returns a bus wired to the constant nodes so that it reads as v.
// No gate is added.
//
func Const(bits int, v uint64) []nandsim.Node {
	out := make([]nandsim.Node, bits)
	for i := range out {
		if v&(1<<uint(i)) != 0 {
			out[i] = nandsim.True
		} else {
			out[i] = nandsim.False
		}
	}
	return out
}

// Repeat returns a bus of width bits where every bit is n.
//
func Repeat(n nandsim.Node, bits int) []nandsim.Node {
	out := make([]nandsim.Node, bits)
	for i := range out {
		out[i] = n
	}
	return out
}

// Extend zero-extends in to the given width.
//
func Extend(in []nandsim.Node, bits int) []nandsim.Node {
	if len(in) >= bits {
		return in[:bits]
	}
	return append(append([]nandsim.Node(nil), in...), Const(bits-len(in), 0)...)
}

func checkWidth(a, b []nandsim.Node) {
	if len(a) != len(b) {
		panic("bus width mismatch")
	}
}
