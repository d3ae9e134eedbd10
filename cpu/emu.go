// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cpu

import (
	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// Emulator is an instruction level model of the CPU. It produces the traces
// that the gate level simulation is checked against.
//
type Emulator struct {
	Mem    *nandsim.Memory
	PC     uint16
	R      [NumRegisters]uint16
	Halted bool
	Flags  int
}

// NewEmulator returns an emulator in its reset state, running from mem.
//
func NewEmulator(mem *nandsim.Memory) *Emulator {
	return &Emulator{Mem: mem}
}

// Step executes one instruction. It does nothing once the CPU has halted.
//
func (e *Emulator) Step() {
	if e.Halted {
		return
	}
	op, rd, rs, imm := Decode(e.Mem.Word(e.PC))
	next := e.PC + 2
	switch op {
	case OpAdd:
		e.R[rd] += e.R[rs]
	case OpSub:
		e.R[rd] -= e.R[rs]
	case OpAddI:
		e.R[rd] += uint16(imm)
	case OpLoadI:
		e.R[rd] = uint16(imm)
	case OpStore:
		e.Mem.SetWord(e.R[rd], e.R[rs])
	case OpLoad:
		e.R[rd] = e.Mem.Word(e.R[rs])
	case OpBnz:
		if e.R[rd] != 0 {
			next = uint16(imm)
		}
	case OpHalt:
		e.Halted = true
	case OpFlag:
		e.Flags++
	}
	e.PC = next
}

// Checkpoint returns the current architectural state.
//
func (e *Emulator) Checkpoint() nandsim.Checkpoint {
	cp := nandsim.Checkpoint{PC: uint64(e.PC), Registers: make([]uint64, NumRegisters)}
	for i, r := range e.R {
		cp.Registers[i] = uint64(r)
	}
	return cp
}

// Trace runs the program in mem until it halts and returns one checkpoint
// per instruction executed, HLT excluded. It fails if the program does not
// halt within max instructions. mem is modified.
//
func Trace(mem *nandsim.Memory, max int) ([]nandsim.Checkpoint, error) {
	e := NewEmulator(mem)
	var trace []nandsim.Checkpoint
	for i := 0; i < max; i++ {
		e.Step()
		if e.Halted {
			return trace, nil
		}
		trace = append(trace, e.Checkpoint())
	}
	return nil, errors.Errorf("program did not halt after %d instructions", max)
}

// Cycles returns the number of simulation cycles needed to run n
// instructions and halt: one warm-up clock cycle, then two clock cycles per
// instruction, HLT included.
//
func Cycles(n int) int {
	return 2 + 4*(n+1)
}
