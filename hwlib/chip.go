// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"io"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// Chip builds a flat NAND netlist. Gates are emitted in construction order,
// which is also the order in which the simulator evaluates them.
//
// Chip methods never fail. Misuse, like naming two signals the same, panics.
//
type Chip struct {
	name    string
	gates   []nandsim.Gate
	signals map[string][]nandsim.Node
	next    nandsim.Node
}

// NewChip returns an empty chip. The name becomes the netlist module name.
//
func NewChip(name string) *Chip {
	return &Chip{
		name:    name,
		signals: make(map[string][]nandsim.Node),
		next:    nandsim.True + 1,
	}
}

// Name returns the chip name.
//
func (c *Chip) Name() string { return c.name }

// Pin allocates a new unconnected node.
//
func (c *Chip) Pin() nandsim.Node {
	n := c.next
	c.next++
	return n
}

// Bus allocates bits new nodes.
//
func (c *Chip) Bus(bits int) []nandsim.Node {
	b := make([]nandsim.Node, bits)
	for i := range b {
		b[i] = c.Pin()
	}
	return b
}

// NandTo adds a NAND gate driving the existing node y.
//
func (c *Chip) NandTo(a, b, y nandsim.Node) {
	c.gates = append(c.gates, nandsim.Gate{A: a, B: b, Y: y})
}

// Nand adds a NAND gate and returns its output.
//
//	Function: out = !(a && b)
//
func (c *Chip) Nand(a, b nandsim.Node) nandsim.Node {
	y := c.Pin()
	c.NandTo(a, b, y)
	return y
}

// Gates returns the number of gates added so far.
//
func (c *Chip) Gates() int { return len(c.gates) }

// Netlist returns a netlist for the chip. The chip can still be extended
// afterwards, this does not affect the returned netlist.
//
func (c *Chip) Netlist() (*nandsim.Netlist, error) {
	gates := make([]nandsim.Gate, len(c.gates))
	copy(gates, c.gates)
	signals := make(map[string][]nandsim.Node, len(c.signals))
	for k, v := range c.signals {
		signals[k] = append([]nandsim.Node(nil), v...)
	}
	nl, err := nandsim.NewNetlist(c.name, gates, signals)
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s", c.name)
	}
	return nl, nil
}

// WriteJSON writes the chip netlist in yosys JSON format.
//
func (c *Chip) WriteJSON(w io.Writer) error {
	nl, err := c.Netlist()
	if err != nil {
		return err
	}
	return nl.WriteJSON(w)
}
