// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/nandsim"
)

// Clock distributes the clock and reset lines to storage parts.
//
type Clock struct {
	Clk  nandsim.Node // clock input
	ClkN nandsim.Node // inverted clock
	ClrN nandsim.Node // inverted reset, low while reset is asserted
}

// Clock returns the clock tree for the given clock and active high reset
// inputs.
//
// Clock must be called before any other gate is added: the simulator
// evaluates gates in order, and master latches must close in the very first
// sweep after a rising clock edge, before any slave output can reach their
// inputs. Clock panics if the chip already has gates.
//
func (c *Chip) Clock(clk, reset nandsim.Node) *Clock {
	if len(c.gates) != 0 {
		panic("Clock must be the first part of a chip")
	}
	return &Clock{
		Clk:  clk,
		ClkN: c.Not(clk),
		ClrN: c.Not(reset),
	}
}

// LatchTo adds a D latch with asynchronous clear driving q.
//
//	Function: if clrN == 0 { q = 0 } else if en { q = d }
//
func (c *Chip) LatchTo(q, d, en, clrN nandsim.Node) {
	qn := c.Pin()
	sn := c.Nand(c.And(d, en), clrN)
	rn := c.And(c.Nand(c.Not(d), en), clrN)
	c.NandTo(sn, qn, q)
	c.NandTo(rn, q, qn)
}

// DFFTo adds a master/slave data flip flop driving q. The output changes on
// the rising edge of the clock.
//
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func (c *Chip) DFFTo(q, d nandsim.Node, k *Clock) {
	m := c.Pin()
	c.LatchTo(m, d, k.ClkN, k.ClrN)
	c.LatchTo(q, m, k.Clk, k.ClrN)
}

// DFF returns the output of a new flip flop.
//
func (c *Chip) DFF(d nandsim.Node, k *Clock) nandsim.Node {
	q := c.Pin()
	c.DFFTo(q, d, k)
	return q
}

// RegisterTo adds a register with load enable driving q.
//
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func (c *Chip) RegisterTo(q, d []nandsim.Node, load nandsim.Node, k *Clock) {
	checkWidth(q, d)
	in := c.MuxN(q, d, load)
	for i := range q {
		c.DFFTo(q[i], in[i], k)
	}
}

// Register returns the output of a new register.
//
func (c *Chip) Register(d []nandsim.Node, load nandsim.Node, k *Clock) []nandsim.Node {
	q := c.Bus(len(d))
	c.RegisterTo(q, d, load, k)
	return q
}
