// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/nandsim"
)

// Mux returns a multiplexer.
//
//	Function: if sel == 0 { out = a } else { out = b }
//
func (c *Chip) Mux(a, b, sel nandsim.Node) nandsim.Node {
	return c.mux(a, b, sel, c.Not(sel))
}

func (c *Chip) mux(a, b, sel, nsel nandsim.Node) nandsim.Node {
	return c.Nand(c.Nand(a, nsel), c.Nand(b, sel))
}

// MuxN returns a n-bits Mux. It panics if a and b have different widths.
//
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func (c *Chip) MuxN(a, b []nandsim.Node, sel nandsim.Node) []nandsim.Node {
	checkWidth(a, b)
	nsel := c.Not(sel)
	out := make([]nandsim.Node, len(a))
	for i := range a {
		out[i] = c.mux(a[i], b[i], sel, nsel)
	}
	return out
}

// Mux4N returns a 4 way n-bits multiplexer. sel must be 2 bits wide.
//
//	Function: out = [a, b, c, d][sel]
//
func (c *Chip) Mux4N(a, b, cc, d []nandsim.Node, sel []nandsim.Node) []nandsim.Node {
	if len(sel) != 2 {
		panic("Mux4N: sel must be 2 bits wide")
	}
	return c.MuxN(c.MuxN(a, b, sel[0]), c.MuxN(cc, d, sel[0]), sel[1])
}

// DMux returns a demultiplexer.
//
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func (c *Chip) DMux(in, sel nandsim.Node) (a, b nandsim.Node) {
	return c.And(in, c.Not(sel)), c.And(in, sel)
}
