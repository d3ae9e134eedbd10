// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"fmt"
)

// FormatError is returned when a netlist description is malformed: missing
// module, cells or netnames, unsupported cell types or invalid connections.
//
type FormatError struct {
	Module string
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Module == "" {
		return "netlist: " + e.Msg
	}
	return "netlist " + e.Module + ": " + e.Msg
}

// WidthError is returned when a signal does not have the number of bits
// required by its user.
//
type WidthError struct {
	Signal string
	Want   int
	Got    int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("signal %q: expected %d bits, got %d", e.Signal, e.Want, e.Got)
}

// IndexError is returned when a node index is out of range for a State.
//
type IndexError struct {
	Node Node
	Size int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("node %d out of range [0, %d)", e.Node, e.Size)
}

// StateError reports a node holding a byte that is neither of the two
// sentinel values. It always indicates a bug.
//
type StateError struct {
	Node  Node
	Value byte
}

func (e *StateError) Error() string {
	return fmt.Sprintf("node %d holds non boolean value %#02x", e.Node, e.Value)
}

// DivergenceError is returned by Tick when the network did not reach a fixed
// point within the configured number of sweeps.
//
type DivergenceError struct {
	Sweeps  int
	Updates uint64 // node updates during the last sweep
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("circuit did not settle after %d sweeps (%d updates in last sweep)", e.Sweeps, e.Updates)
}

// CheckpointError reports a difference between the expected execution trace
// and the values sampled from the circuit.
//
type CheckpointError struct {
	Index    int    // checkpoint index in the expected trace
	PC       uint64 // program counter at the checkpoint
	Register int    // register index, -1 for the program counter itself
	Want     uint64
	Got      uint64
	// Short is set when the run ended before reaching all checkpoints. In
	// that case Index is the number of checkpoints reached and Want the
	// length of the expected trace.
	Short bool
}

func (e *CheckpointError) Error() string {
	switch {
	case e.Short:
		return fmt.Sprintf("trace incomplete: reached %d of %d checkpoints", e.Index, e.Want)
	case e.Register < 0:
		return fmt.Sprintf("checkpoint %d: program counter mismatch: expected %d, got %d", e.Index, e.Want, e.Got)
	}
	return fmt.Sprintf("checkpoint %d: register mismatch at PC %d: R%d expected %d, got %d", e.Index, e.PC, e.Register, e.Want, e.Got)
}

// MemoryError reports a memory byte that differs from the expected snapshot.
//
type MemoryError struct {
	Addr uint16
	Want byte
	Got  byte
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory mismatch at %#04x: expected %#02x, got %#02x", e.Addr, e.Want, e.Got)
}
