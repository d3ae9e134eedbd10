// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package nandsim simulates synchronous digital circuits described as flat
netlists of two-input NAND gates, and runs programs on circuits that
implement a CPU.

A Netlist is loaded from yosys JSON output with Load or LoadFile, or built in
Go with the hwlib package. Nodes 0 and 1 are the constant false and true
rails. Node values are stored as bytes, 0x00 or 0xFF, in a State.

A Circuit evaluates its gates in declaration order, in place, repeating full
sweeps until no node changes. A sweep count above the configured bound is
reported as a *DivergenceError. One such settlement is a tick.

A Machine drives a CPU circuit: it resets it, toggles its clock, serves
memory reads and writes on its bus signals, records a checkpoint at every
instruction boundary, and verifies checkpoints and final memory against
expected values. The signals it requires are listed in Pins.

Errors are returned wrapped with github.com/pkg/errors. Use errors.Cause to
get at the concrete error type:

	res, err := nandsim.Run(nl, mem, cfg)
	if e, ok := errors.Cause(err).(*nandsim.CheckpointError); ok {
		// ...
	}

*/
package nandsim
