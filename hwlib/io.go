// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

func (c *Chip) define(name string, nodes []nandsim.Node) {
	if _, ok := c.signals[name]; ok {
		panic(errors.Errorf("chip %s: signal %q redefined", c.name, name))
	}
	if len(nodes) == 0 {
		panic(errors.Errorf("chip %s: signal %q has no bits", c.name, name))
	}
	c.signals[name] = append([]nandsim.Node(nil), nodes...)
}

// Input allocates a bits wide input bus and names it. Input nodes are not
// driven by any gate: the simulation sets them.
//
func (c *Chip) Input(name string, bits int) []nandsim.Node {
	b := c.Bus(bits)
	c.define(name, b)
	return b
}

// InputPin allocates a single bit input.
//
func (c *Chip) InputPin(name string) nandsim.Node {
	return c.Input(name, 1)[0]
}

// Output names the given nodes. Any node can be named, including the
// constant nodes and other signals.
//
func (c *Chip) Output(name string, nodes ...nandsim.Node) {
	c.define(name, nodes)
}
