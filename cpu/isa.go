// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cpu

// Opcodes. Any other value executes as a NOP.
//
const (
	OpNop   = 0x0
	OpAdd   = 0x1 // rd = rd + rs
	OpSub   = 0x2 // rd = rd - rs
	OpAddI  = 0x4 // rd = rd + imm
	OpLoadI = 0x8 // rd = imm
	OpStore = 0x9 // mem[rd] = rs
	OpLoad  = 0xB // rd = mem[rs]
	OpBnz   = 0xC // if rd != 0 { pc = imm }
	OpHalt  = 0xD
	OpFlag  = 0xE
)

// Instruction word layout.
//
//	bits 0-3   opcode
//	bits 4-5   rd
//	bits 6-7   rs
//	bits 8-15  imm (zero extended)
//
func encode(op, rd, rs int, imm uint8) uint16 {
	return uint16(op&0xF) | uint16(rd&3)<<4 | uint16(rs&3)<<6 | uint16(imm)<<8
}

// Decode splits an instruction word into its fields.
//
func Decode(w uint16) (op, rd, rs int, imm uint8) {
	return int(w & 0xF), int(w>>4) & 3, int(w>>6) & 3, uint8(w >> 8)
}

// Nop encodes a NOP.
func Nop() uint16 { return encode(OpNop, 0, 0, 0) }

// Add encodes rd = rd + rs.
func Add(rd, rs int) uint16 { return encode(OpAdd, rd, rs, 0) }

// Sub encodes rd = rd - rs.
func Sub(rd, rs int) uint16 { return encode(OpSub, rd, rs, 0) }

// AddI encodes rd = rd + imm.
func AddI(rd int, imm uint8) uint16 { return encode(OpAddI, rd, 0, imm) }

// LoadI encodes rd = imm.
func LoadI(rd int, imm uint8) uint16 { return encode(OpLoadI, rd, 0, imm) }

// Store encodes a 16 bits store of rs at the address held in ra.
func Store(ra, rs int) uint16 { return encode(OpStore, ra, rs, 0) }

// Load encodes a 16 bits load into rd from the address held in ra.
func Load(rd, ra int) uint16 { return encode(OpLoad, rd, ra, 0) }

// Bnz encodes a jump to target if r != 0. Targets are limited to the first
// 256 bytes of memory.
func Bnz(r int, target uint8) uint16 { return encode(OpBnz, r, 0, target) }

// Halt encodes HLT.
func Halt() uint16 { return encode(OpHalt, 0, 0, 0) }

// Flag encodes FLAG. The flag output is asserted for one clock half-period.
func Flag() uint16 { return encode(OpFlag, 0, 0, 0) }
