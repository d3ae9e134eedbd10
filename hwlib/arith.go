// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/nandsim"
)

// HalfAdder returns a half adder.
//
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func (c *Chip) HalfAdder(a, b nandsim.Node) (s, carry nandsim.Node) {
	t := c.Nand(a, b)
	s = c.Nand(c.Nand(a, t), c.Nand(b, t))
	return s, c.Not(t)
}

// FullAdder returns a 3 bit adder built from 9 NAND gates.
//
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func (c *Chip) FullAdder(a, b, cin nandsim.Node) (s, cout nandsim.Node) {
	t1 := c.Nand(a, b)
	s1 := c.Nand(c.Nand(a, t1), c.Nand(b, t1))
	t4 := c.Nand(s1, cin)
	s = c.Nand(c.Nand(s1, t4), c.Nand(cin, t4))
	return s, c.Nand(t1, t4)
}

// AdderN returns a ripple carry adder. It panics if a and b have different
// widths.
//
//	Function: out = lsb(a + b + cin)
//	          cout = carry out of the msb
//
func (c *Chip) AdderN(a, b []nandsim.Node, cin nandsim.Node) (out []nandsim.Node, cout nandsim.Node) {
	checkWidth(a, b)
	out = make([]nandsim.Node, len(a))
	cout = cin
	for i := range a {
		out[i], cout = c.FullAdder(a[i], b[i], cout)
	}
	return out, cout
}

// Inc returns in + v, truncated to the width of in.
//
func (c *Chip) Inc(in []nandsim.Node, v uint64) []nandsim.Node {
	out, _ := c.AdderN(in, Const(len(in), v), nandsim.False)
	return out
}
