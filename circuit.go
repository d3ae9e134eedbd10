// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"github.com/pkg/errors"
)

// DefaultMaxSweeps is the default bound on the number of sweeps Tick will
// run before giving up on a circuit that does not settle.
//
const DefaultMaxSweeps = 4096

// Circuit is a runnable circuit simulation.
//
type Circuit struct {
	gates     []Gate
	s         *State
	maxSweeps int
	ticks     uint64
	sweeps    uint64
}

// NewCircuit returns a new circuit for the given netlist with all nodes low.
//
// maxSweeps bounds the number of full gate sweeps in a single Tick. If less
// or equal to 0, DefaultMaxSweeps is used.
//
func NewCircuit(nl *Netlist, maxSweeps int) *Circuit {
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}
	return &Circuit{
		gates:     nl.Gates,
		s:         NewState(nl.Size()),
		maxSweeps: maxSweeps,
	}
}

// State returns the circuit state.
//
func (c *Circuit) State() *State { return c.s }

// Tick settles the circuit after a change of its inputs: every gate is
// evaluated in order, and sweeps are repeated until one of them does not
// update any node.
//
// Tick returns a *DivergenceError if the circuit is still changing after
// the maximum number of sweeps.
//
func (c *Circuit) Tick() error {
	s := c.s
	c.ticks++
	for sweep := 1; ; sweep++ {
		s.updates = 0
		for _, g := range c.gates {
			s.Nand(g.A, g.B, g.Y)
		}
		c.sweeps++
		if s.updates == 0 {
			return nil
		}
		if sweep >= c.maxSweeps {
			return errors.WithStack(&DivergenceError{sweep, s.updates})
		}
	}
}

// Ticks returns the number of calls to Tick.
//
func (c *Circuit) Ticks() uint64 { return c.ticks }

// Sweeps returns the total number of gate sweeps run by Tick.
//
func (c *Circuit) Sweeps() uint64 { return c.sweeps }

// Size returns the gate count in the circuit.
//
func (c *Circuit) Size() int { return len(c.gates) }
