// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"math/rand"
)

// Node values. A node byte is always one of these so that NAND can be
// computed as ^(a & b) and the logic value read from the top bit.
//
const (
	low  byte = 0x00
	high byte = 0xFF
)

// State holds the value of every node in a circuit.
//
type State struct {
	data    []byte
	updates uint64 // node writes by Nand since the last reset
	total   uint64 // lifetime node writes by Nand
}

// NewState returns a State of the given size with all nodes low, except for
// the True constant.
//
func NewState(size int) *State {
	if size < int(cstCount) {
		size = int(cstCount)
	}
	s := &State{data: make([]byte, size)}
	s.data[True] = high
	return s
}

// Len returns the number of nodes.
//
func (s *State) Len() int { return len(s.data) }

// Updates returns the number of node changes caused by Nand since the last
// call to ResetUpdates.
//
func (s *State) Updates() uint64 { return s.updates }

// ResetUpdates clears the update counter.
//
func (s *State) ResetUpdates() { s.updates = 0 }

// TotalUpdates returns the number of node changes caused by Nand over the
// lifetime of s.
//
func (s *State) TotalUpdates() uint64 { return s.total }

func (s *State) check(n Node) error {
	if n < 0 || int(n) >= len(s.data) {
		return &IndexError{n, len(s.data)}
	}
	return nil
}

// Get returns the value of the given nodes as an unsigned integer. The first
// node is the least significant bit.
//
func (s *State) Get(nodes []Node) (uint64, error) {
	var v uint64
	for i, n := range nodes {
		if err := s.check(n); err != nil {
			return 0, err
		}
		b := s.data[n]
		if b != low && b != high {
			return 0, &StateError{n, b}
		}
		v |= uint64(b>>7) << uint(i)
	}
	return v, nil
}

// Set sets the given nodes to the bits of v, first node first.
// Set panics if nodes is empty or has more than 64 entries.
//
func (s *State) Set(nodes []Node, v uint64) error {
	if len(nodes) == 0 || len(nodes) > 64 {
		panic("invalid bus width")
	}
	for _, n := range nodes {
		if err := s.check(n); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		s.data[n] = high & -byte(v&1)
		v >>= 1
	}
	return nil
}

// SetByte sets 8 nodes to the bits of v. It panics if len(nodes) != 8.
//
func (s *State) SetByte(nodes []Node, v byte) error {
	if len(nodes) != 8 {
		panic("SetByte: expected 8 nodes")
	}
	return s.Set(nodes, uint64(v))
}

// Bit returns the value of node n.
//
func (s *State) Bit(n Node) (bool, error) {
	if err := s.check(n); err != nil {
		return false, err
	}
	b := s.data[n]
	if b != low && b != high {
		return false, &StateError{n, b}
	}
	return b == high, nil
}

// SetBit sets the value of node n.
//
func (s *State) SetBit(n Node, v bool) error {
	if err := s.check(n); err != nil {
		return err
	}
	if v {
		s.data[n] = high
	} else {
		s.data[n] = low
	}
	return nil
}

// Flip inverts node n.
//
func (s *State) Flip(n Node) error {
	if err := s.check(n); err != nil {
		return err
	}
	s.data[n] = ^s.data[n]
	return nil
}

// Nand sets y to !(a && b) and counts an update if y changed.
// Node indices are not checked beyond Go's bounds checks: they come from a
// validated Netlist.
//
func (s *State) Nand(a, b, y Node) {
	d := s.data
	v := ^(d[a] & d[b])
	if d[y] != v {
		d[y] = v
		s.updates++
		s.total++
	}
}

// Scramble sets every node except the constants to a random value.
//
func (s *State) Scramble(r *rand.Rand) {
	for i := int(cstCount); i < len(s.data); i++ {
		s.data[i] = high & -byte(r.Intn(2))
	}
}
