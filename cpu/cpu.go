// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cpu builds a small 16 bits CPU as a NAND netlist.
//
// The CPU has four 16 bits registers r0-r3 and a 16 bits program counter.
// Every instruction takes two clock cycles: a fetch cycle, with the state
// signal at 0, where the instruction word at PC is latched, then an execute
// cycle, with the state signal at 1. Memory is little endian and accessed
// through the addr, inp_val, out_val and write_enable signals.
//
// After reset, the CPU idles for one clock cycle before the first fetch.
//
package cpu

import (
	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/hwlib"
)

// Module is the netlist module name of the CPU.
//
const Module = "cpu"

// NumRegisters is the number of general purpose registers.
//
const NumRegisters = 4

const width = 16

// Build returns the CPU chip.
//
func Build() *hwlib.Chip {
	c := hwlib.NewChip(Module)
	clk := c.InputPin("clock")
	reset := c.InputPin("reset")
	k := c.Clock(clk, reset)
	inp := c.Input("inp_val", width)

	started, halted, exec := c.Pin(), c.Pin(), c.Pin()
	run := c.And(started, c.Not(halted))
	fetch := c.Not(exec)
	x := c.And(exec, run)

	regs := make([][]nandsim.Node, NumRegisters)
	for i := range regs {
		regs[i] = c.Bus(width)
	}
	pc := c.Bus(width)

	ir := c.Register(inp, c.And(run, fetch), k)

	// decode
	op, rd, rs := ir[0:4], ir[4:6], ir[6:8]
	imm := hwlib.Extend(ir[8:16], width)
	isAdd := c.Equal(op, OpAdd)
	isSub := c.Equal(op, OpSub)
	isAddI := c.Equal(op, OpAddI)
	isLoadI := c.Equal(op, OpLoadI)
	isStore := c.Equal(op, OpStore)
	isLoad := c.Equal(op, OpLoad)
	isBnz := c.Equal(op, OpBnz)
	isHalt := c.Equal(op, OpHalt)
	isFlag := c.Equal(op, OpFlag)

	a := c.Mux4N(regs[0], regs[1], regs[2], regs[3], rd)
	b := c.Mux4N(regs[0], regs[1], regs[2], regs[3], rs)

	// ALU
	op2 := c.MuxN(b, imm, isAddI)
	sum, _ := c.AdderN(a, c.XorN(op2, hwlib.Repeat(isSub, width)), isSub)
	res := c.MuxN(c.MuxN(sum, inp, isLoad), imm, isLoadI)

	we := c.And(x, c.OrN([]nandsim.Node{isAdd, isSub, isAddI, isLoadI, isLoad}))
	for i, r := range regs {
		c.RegisterTo(r, res, c.And(we, c.Equal(rd, uint64(i))), k)
	}

	// memory
	store := c.And(x, isStore)
	load := c.And(x, isLoad)
	addr := c.MuxN(c.MuxN(pc, b, load), a, store)

	taken := c.And(isBnz, c.OrN(a))
	c.RegisterTo(pc, c.MuxN(c.Inc(pc, 2), imm, taken), x, k)

	c.DFFTo(started, nandsim.True, k)
	c.DFFTo(exec, c.And(run, fetch), k)
	c.DFFTo(halted, c.Or(halted, c.And(x, isHalt)), k)

	c.Output("state", exec, nandsim.False)
	c.Output("program_counter", pc...)
	c.Output("addr", addr...)
	c.Output("out_val", b...)
	c.Output("write_enable", store)
	c.Output("halted", halted)
	c.Output("flag", c.AndN([]nandsim.Node{x, isFlag, clk}))
	c.Output("ir", ir...)
	for i, r := range regs {
		c.Output(nandsim.BusName("registers", i), r...)
	}
	return c
}

// New returns the CPU netlist.
//
func New() (*nandsim.Netlist, error) {
	return Build().Netlist()
}
