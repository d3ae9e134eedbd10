// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// A Node identifies one wire in a circuit. Nodes are plain indices into the
// circuit state.
//
type Node int

// Constant nodes. Netlists refer to them with the "0" and "1" tie-offs.
//
const (
	False Node = iota
	True
	cstCount
)

// A Gate is a two input NAND gate: Y = !(A && B).
//
type Gate struct {
	A, B, Y Node
}

// Netlist is a flat list of NAND gates together with named signals.
//
type Netlist struct {
	Module  string
	Gates   []Gate
	Signals map[string][]Node
	size    int
}

// NewNetlist checks the given gates and signals and wraps them into a Netlist.
// Gates are evaluated in the given order.
//
// It fails if a gate drives one of the constant nodes, if a node is driven by
// more than one gate, or if a signal has no bits.
//
func NewNetlist(module string, gates []Gate, signals map[string][]Node) (*Netlist, error) {
	size := int(cstCount)
	grow := func(n Node) error {
		if n < 0 {
			return &FormatError{module, "negative node id " + strconv.Itoa(int(n))}
		}
		if int(n) >= size {
			size = int(n) + 1
		}
		return nil
	}

	drivers := make(map[Node]int, len(gates))
	for i, g := range gates {
		for _, n := range [...]Node{g.A, g.B, g.Y} {
			if err := grow(n); err != nil {
				return nil, err
			}
		}
		if g.Y < cstCount {
			return nil, &FormatError{module, "gate " + strconv.Itoa(i) + " output connected to constant " + strconv.Itoa(int(g.Y))}
		}
		if prev, ok := drivers[g.Y]; ok {
			return nil, &FormatError{module, "node " + strconv.Itoa(int(g.Y)) + " driven by gates " + strconv.Itoa(prev) + " and " + strconv.Itoa(i)}
		}
		drivers[g.Y] = i
	}
	for name, bits := range signals {
		if len(bits) == 0 {
			return nil, &FormatError{module, "signal " + strconv.Quote(name) + " has no bits"}
		}
		for _, n := range bits {
			if err := grow(n); err != nil {
				return nil, err
			}
		}
	}
	if signals == nil {
		signals = make(map[string][]Node)
	}
	return &Netlist{
		Module:  module,
		Gates:   gates,
		Signals: signals,
		size:    size,
	}, nil
}

// Size returns the number of nodes needed to simulate the netlist.
//
func (n *Netlist) Size() int { return n.size }

// Names returns the sorted signal names.
//
func (n *Netlist) Names() []string {
	names := make([]string, 0, len(n.Signals))
	for k := range n.Signals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Signal returns the nodes of the named signal, bit 0 first.
//
func (n *Netlist) Signal(name string) ([]Node, error) {
	bits, ok := n.Signals[name]
	if !ok {
		return nil, errors.WithStack(&FormatError{n.Module, "missing signal " + strconv.Quote(name)})
	}
	return bits, nil
}

// Bus returns the nodes of the named signal and checks that it is exactly
// width bits wide.
//
func (n *Netlist) Bus(name string, width int) ([]Node, error) {
	bits, err := n.Signal(name)
	if err != nil {
		return nil, err
	}
	if len(bits) != width {
		return nil, errors.WithStack(&WidthError{name, width, len(bits)})
	}
	return bits, nil
}

// Bit returns the node of a single bit signal.
//
func (n *Netlist) Bit(name string) (Node, error) {
	bits, err := n.Bus(name, 1)
	if err != nil {
		return 0, err
	}
	return bits[0], nil
}
